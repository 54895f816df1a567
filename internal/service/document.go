package service

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/assurly/assurly/internal/domain/document"
	"github.com/assurly/assurly/internal/domain/policy"
	"github.com/assurly/assurly/internal/dto"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/pdf"
	"github.com/assurly/assurly/internal/s3"
	"github.com/assurly/assurly/internal/types"
)

// DocumentService is the issuance pipeline: it pulls numbers from the
// sequence registry, bytes from the renderer, stores the blob and
// persists the metadata record.
//
// Issuance of the three-kind set is deliberately not transactional. A
// renderer or storage failure for one kind leaves the numbers already
// consumed for earlier kinds in place and the partial set persisted;
// the caller detects an incomplete set (fewer than three active
// documents) and recovers with RegenerateDocuments.
type DocumentService interface {
	// IssueDocuments produces the ordered set of ATTESTATION, CONTRACT
	// and RECEIPT documents for a policy.
	IssueDocuments(ctx context.Context, policyID string) ([]*document.Document, error)

	// RegenerateDocuments supersedes every active document of the
	// policy and issues a fresh set. Superseded records are kept.
	RegenerateDocuments(ctx context.Context, policyID string) ([]*document.Document, error)

	// IssueSupplementaryDocument produces a single AMENDMENT or
	// CANCELLATION document outside the three-kind set.
	IssueSupplementaryDocument(ctx context.Context, policyID string, kind types.DocumentKind, note string) (*document.Document, error)

	GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error)
	ListDocuments(ctx context.Context, policyID string) ([]*dto.DocumentResponse, error)
}

type documentService struct {
	ServiceParams
}

func NewDocumentService(params ServiceParams) DocumentService {
	return &documentService{ServiceParams: params}
}

func (s *documentService) IssueDocuments(ctx context.Context, policyID string) ([]*document.Document, error) {
	p, err := s.PolicyRepo.Get(ctx, policyID)
	if err != nil {
		return nil, err
	}

	data, err := s.buildDocumentData(ctx, p)
	if err != nil {
		return nil, err
	}

	var issued []*document.Document
	for _, kind := range types.IssuedDocumentKinds() {
		doc, err := s.issueOne(ctx, p, data, kind)
		if err != nil {
			// Partial sets are accepted; the consumed number stays a
			// hole in the sequence.
			s.Logger.Errorw("document issuance failed for kind, continuing",
				"policy_id", p.ID,
				"kind", kind,
				"error", err)
			continue
		}
		issued = append(issued, doc)
	}

	if err := s.syncPolicyDocumentRefs(ctx, p); err != nil {
		s.Logger.Errorw("failed to update policy document refs",
			"policy_id", p.ID,
			"error", err)
	}

	if len(issued) < len(types.IssuedDocumentKinds()) {
		s.Logger.Warnw("policy has an incomplete document set",
			"policy_id", p.ID,
			"issued", len(issued))
	} else {
		s.notify(ctx, types.NewNotification(
			p.OwnerID,
			types.NotificationDocumentsGenerated,
			"Your policy documents are ready",
			fmt.Sprintf("All documents for policy %s have been generated.", p.ID),
		).WithRelatedEntity("policy", p.ID))
	}

	return issued, nil
}

func (s *documentService) RegenerateDocuments(ctx context.Context, policyID string) ([]*document.Document, error) {
	superseded, err := s.DocumentRepo.DeactivateByPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("superseded active documents",
		"policy_id", policyID,
		"count", superseded)

	return s.IssueDocuments(ctx, policyID)
}

func (s *documentService) IssueSupplementaryDocument(ctx context.Context, policyID string, kind types.DocumentKind, note string) (*document.Document, error) {
	if kind != types.DocumentKindAmendment && kind != types.DocumentKindCancellation {
		return nil, ierr.NewErrorf("kind %s is not a supplementary document kind", kind).
			Mark(ierr.ErrValidation)
	}

	p, err := s.PolicyRepo.Get(ctx, policyID)
	if err != nil {
		return nil, err
	}

	data, err := s.buildDocumentData(ctx, p)
	if err != nil {
		return nil, err
	}
	data.CancellationNote = note

	return s.issueOne(ctx, p, data, kind)
}

func (s *documentService) GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	d, err := s.DocumentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.DocumentResponse{Document: d}
	if s.BlobStore != nil {
		url, err := s.BlobStore.GetPresignedUrl(ctx, d.BlobLocation)
		if err != nil {
			s.Logger.Errorw("failed to presign document url",
				"document_id", d.ID,
				"error", err)
		} else {
			resp.DownloadURL = url
		}
	}
	return resp, nil
}

func (s *documentService) ListDocuments(ctx context.Context, policyID string) ([]*dto.DocumentResponse, error) {
	docs, err := s.DocumentRepo.ListByPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}

	return lo.Map(docs, func(d *document.Document, _ int) *dto.DocumentResponse {
		return &dto.DocumentResponse{Document: d}
	}), nil
}

// issueOne runs the number -> render -> blob -> metadata chain for a
// single kind. The registry claim is the first step so a later failure
// leaves a numbering hole, never a duplicate.
func (s *documentService) issueOne(ctx context.Context, p *policy.Policy, base *pdf.DocumentData, kind types.DocumentKind) (*document.Document, error) {
	now := time.Now().UTC()
	year := now.Year()

	seq, err := s.SequenceRepo.Next(ctx, types.SequenceKey(kind, year))
	if err != nil {
		return nil, err
	}
	number := types.FormatDocumentNumber(kind, year, seq)

	data := *base
	data.Number = number
	data.Kind = kind
	data.GeneratedAt = now

	blob, err := s.PDFGenerator.RenderDocumentPdf(ctx, &data)
	if err != nil {
		return nil, err
	}

	location, err := s.storeBlob(ctx, p.ID, number, blob)
	if err != nil {
		return nil, err
	}

	doc := &document.Document{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT),
		Number:       number,
		Kind:         kind,
		PolicyID:     p.ID,
		BlobLocation: location,
		ByteSize:     int64(len(blob)),
		IsActive:     true,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}

	if err := s.DocumentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.Logger.Infow("document issued",
		"document_id", doc.ID,
		"number", doc.Number,
		"kind", kind,
		"policy_id", p.ID)

	return doc, nil
}

func (s *documentService) storeBlob(ctx context.Context, policyID, number string, blob []byte) (string, error) {
	if s.BlobStore == nil {
		// no blob store configured, keep a local reference
		return fmt.Sprintf("local://%s/%s.pdf", s.Config.Document.OutputDir, number), nil
	}

	return s.BlobStore.Upload(ctx, &s3.Object{
		Category:    s3.CategoryPolicyDocument,
		Key:         fmt.Sprintf("%s/%s.pdf", policyID, number),
		ContentType: "application/pdf",
		Data:        blob,
	})
}

// syncPolicyDocumentRefs points the policy at its current active set
func (s *documentService) syncPolicyDocumentRefs(ctx context.Context, p *policy.Policy) error {
	active, err := s.DocumentRepo.ListActiveByPolicy(ctx, p.ID)
	if err != nil {
		return err
	}

	p.DocumentIDs = lo.Map(active, func(d *document.Document, _ int) string {
		return d.ID
	})
	p.Touch(ctx)

	return s.PolicyRepo.Update(ctx, p, p.Status)
}

// buildDocumentData snapshots everything the templates need
func (s *documentService) buildDocumentData(ctx context.Context, p *policy.Policy) (*pdf.DocumentData, error) {
	v, err := s.VehicleRepo.Get(ctx, p.VehicleID)
	if err != nil {
		return nil, err
	}

	prod, err := s.ProductRepo.Get(ctx, p.ProductID)
	if err != nil {
		return nil, err
	}

	q, err := s.QuoteRepo.Get(ctx, p.QuoteID)
	if err != nil {
		return nil, err
	}

	data := &pdf.DocumentData{
		PolicyID:        p.ID,
		HolderID:        p.OwnerID,
		ProductName:     prod.Name,
		Premium:         p.Premium,
		PaymentStatus:   p.PaymentStatus,
		PolicyStartDate: p.StartDate,
		PolicyEndDate:   p.EndDate,
		Vehicle: pdf.VehicleData{
			Make:           v.Make,
			Model:          v.Model,
			Year:           v.Year,
			RegistrationNo: v.RegistrationNo,
			MarketValue:    v.MarketValue,
		},
		Breakdown: pdf.BreakdownData{
			Base:        q.Breakdown.Base,
			ValuePart:   q.Breakdown.ValuePart,
			AddOnsTotal: q.Breakdown.AddOnsTotal,
			Total:       q.Breakdown.Total,
		},
	}

	for _, a := range q.PricingSnapshot.AddOns {
		data.AddOns = append(data.AddOns, pdf.AddOnData{
			Name:  a.Name,
			Price: a.Price,
		})
	}

	return data, nil
}
