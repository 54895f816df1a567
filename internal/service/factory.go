package service

import (
	"context"

	"github.com/assurly/assurly/internal/audit"
	"github.com/assurly/assurly/internal/cache"
	"github.com/assurly/assurly/internal/config"
	"github.com/assurly/assurly/internal/domain/claim"
	"github.com/assurly/assurly/internal/domain/document"
	"github.com/assurly/assurly/internal/domain/policy"
	"github.com/assurly/assurly/internal/domain/product"
	"github.com/assurly/assurly/internal/domain/quote"
	"github.com/assurly/assurly/internal/domain/sequence"
	"github.com/assurly/assurly/internal/domain/vehicle"
	"github.com/assurly/assurly/internal/logger"
	"github.com/assurly/assurly/internal/notification"
	"github.com/assurly/assurly/internal/pdf"
	"github.com/assurly/assurly/internal/s3"
	"github.com/assurly/assurly/internal/types"
)

// ServiceParams bundles every dependency a service can need. Each
// service picks what it uses; wiring happens once in the composition
// root and in the test suite.
type ServiceParams struct {
	Logger       *logger.Logger
	Config       *config.Configuration
	PDFGenerator pdf.Generator
	BlobStore    s3.Service
	Cache        cache.Cache
	Notifier     notification.Publisher
	Auditor      audit.Publisher

	// Repositories
	SequenceRepo sequence.Repository
	VehicleRepo  vehicle.Repository
	ProductRepo  product.Repository
	QuoteRepo    quote.Repository
	PolicyRepo   policy.Repository
	DocumentRepo document.Repository
	ClaimRepo    claim.Repository
}

// NewServiceParams assembles the shared dependency bundle in the
// composition root
func NewServiceParams(
	logger *logger.Logger,
	cfg *config.Configuration,
	pdfGenerator pdf.Generator,
	blobStore s3.Service,
	cache cache.Cache,
	notifier notification.Publisher,
	auditor audit.Publisher,
	sequenceRepo sequence.Repository,
	vehicleRepo vehicle.Repository,
	productRepo product.Repository,
	quoteRepo quote.Repository,
	policyRepo policy.Repository,
	documentRepo document.Repository,
	claimRepo claim.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       cfg,
		PDFGenerator: pdfGenerator,
		BlobStore:    blobStore,
		Cache:        cache,
		Notifier:     notifier,
		Auditor:      auditor,
		SequenceRepo: sequenceRepo,
		VehicleRepo:  vehicleRepo,
		ProductRepo:  productRepo,
		QuoteRepo:    quoteRepo,
		PolicyRepo:   policyRepo,
		DocumentRepo: documentRepo,
		ClaimRepo:    claimRepo,
	}
}

// notify publishes a notification and logs failures. Notification
// delivery must never abort the lifecycle operation that produced it.
func (p ServiceParams) notify(ctx context.Context, n *types.Notification) {
	if p.Notifier == nil {
		return
	}
	if err := p.Notifier.Publish(ctx, n); err != nil {
		p.Logger.Errorw("failed to publish notification",
			"error", err,
			"notification_type", n.Type,
			"recipient_id", n.RecipientID)
	}
}

// record hands an entry to the audit sink and logs failures without
// propagating them.
func (p ServiceParams) record(ctx context.Context, entry *audit.Entry) {
	if p.Auditor == nil {
		return
	}
	if err := p.Auditor.Record(ctx, entry); err != nil {
		p.Logger.Errorw("failed to record audit entry",
			"error", err,
			"action", entry.Action,
			"entity_id", entry.EntityID)
	}
}
