package service

import (
	"context"
	"time"

	"github.com/assurly/assurly/internal/audit"
	"github.com/assurly/assurly/internal/domain/quote"
	"github.com/assurly/assurly/internal/dto"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/types"
)

// quoteValidityDays is how long a quote stays convertible
const quoteValidityDays = 30

// QuoteService prices and manages quotes. A quote freezes the tariff
// at creation time; later product edits never change it.
type QuoteService interface {
	CreateQuote(ctx context.Context, req *dto.CreateQuoteRequest) (*dto.QuoteResponse, error)
	GetQuote(ctx context.Context, id string) (*dto.QuoteResponse, error)
	ListQuotes(ctx context.Context, ownerID string) ([]*dto.QuoteResponse, error)

	// ExpireQuote moves a PENDING quote to EXPIRED. Expiring an
	// already-EXPIRED quote is a no-op; a CONVERTED quote cannot be
	// expired.
	ExpireQuote(ctx context.Context, id string) (*dto.QuoteResponse, error)
}

type quoteService struct {
	ServiceParams
	pricing PricingService
}

func NewQuoteService(params ServiceParams) QuoteService {
	return &quoteService{
		ServiceParams: params,
		pricing:       NewPricingService(params),
	}
}

func (s *quoteService) CreateQuote(ctx context.Context, req *dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	v, err := s.VehicleRepo.Get(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	p, err := s.ProductRepo.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	addOns := p.AddOnsByCode(req.SelectedAddOns)
	breakdown, err := s.pricing.Calculate(v, p.Tariff, addOns)
	if err != nil {
		return nil, err
	}

	snapshot := quote.TariffSnapshot{
		BaseRate:         p.Tariff.BaseRate,
		VehicleValueRate: p.Tariff.VehicleValueRate,
	}
	for _, a := range addOns {
		snapshot.AddOns = append(snapshot.AddOns, quote.AddOnSnapshot{
			Code:  a.Code,
			Name:  a.Name,
			Price: a.Price,
		})
	}

	now := time.Now().UTC()
	q := &quote.Quote{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_QUOTE),
		OwnerID:         req.OwnerID,
		VehicleID:       req.VehicleID,
		ProductID:       req.ProductID,
		SelectedAddOns:  req.SelectedAddOns,
		PricingSnapshot: snapshot,
		Breakdown:       *breakdown,
		Status:          types.QuoteStatusPending,
		ExpiresAt:       now.AddDate(0, 0, quoteValidityDays),
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}

	if err := s.QuoteRepo.Create(ctx, q); err != nil {
		return nil, err
	}

	s.Logger.Infow("quote created",
		"quote_id", q.ID,
		"owner_id", q.OwnerID,
		"premium", q.Breakdown.Total,
		"expires_at", q.ExpiresAt)

	s.record(ctx, audit.NewEntry(ctx, "quote.created", "quote", q.ID, nil, q))

	return &dto.QuoteResponse{Quote: q}, nil
}

func (s *quoteService) GetQuote(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	q, err := s.QuoteRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.QuoteResponse{Quote: q}, nil
}

func (s *quoteService) ListQuotes(ctx context.Context, ownerID string) ([]*dto.QuoteResponse, error) {
	quotes, err := s.QuoteRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.QuoteResponse, len(quotes))
	for i, q := range quotes {
		resp[i] = &dto.QuoteResponse{Quote: q}
	}
	return resp, nil
}

func (s *quoteService) ExpireQuote(ctx context.Context, id string) (*dto.QuoteResponse, error) {
	q, err := s.QuoteRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch q.Status {
	case types.QuoteStatusExpired:
		return &dto.QuoteResponse{Quote: q}, nil
	case types.QuoteStatusConverted:
		return nil, ierr.NewErrorf("quote %s is already converted", id).
			WithHint("A converted quote cannot be expired").
			Mark(ierr.ErrInvalidOperation)
	}

	before := *q
	q.Status = types.QuoteStatusExpired
	q.Touch(ctx)

	if err := s.QuoteRepo.Update(ctx, q, types.QuoteStatusPending); err != nil {
		return nil, err
	}

	s.record(ctx, audit.NewEntry(ctx, "quote.expired", "quote", q.ID, before, q))

	return &dto.QuoteResponse{Quote: q}, nil
}
