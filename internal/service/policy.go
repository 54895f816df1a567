package service

import (
	"context"
	"fmt"
	"time"

	"github.com/assurly/assurly/internal/audit"
	"github.com/assurly/assurly/internal/domain/policy"
	"github.com/assurly/assurly/internal/dto"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/types"
)

// PolicyService owns the policy state machine: issue, renew, cancel.
// Expiry is applied by the sweep, not by a user command.
type PolicyService interface {
	// IssuePolicy converts a PENDING, unexpired quote into a policy.
	// Payment runs first; documents are issued only when the premium
	// was actually paid.
	IssuePolicy(ctx context.Context, req *dto.IssuePolicyRequest) (*dto.PolicyResponse, error)

	// RenewPolicy advances the coverage window by one year from
	// max(endDate, now) and resets the payment to PENDING.
	RenewPolicy(ctx context.Context, policyID string) (*dto.PolicyResponse, error)

	// CancelPolicy terminally cancels a policy. Cancelling twice fails.
	CancelPolicy(ctx context.Context, req *dto.CancelPolicyRequest) (*dto.PolicyResponse, error)

	GetPolicy(ctx context.Context, id string) (*dto.PolicyResponse, error)
	ListPolicies(ctx context.Context, ownerID string) ([]*dto.PolicyResponse, error)
}

type policyService struct {
	ServiceParams
	payment   PaymentService
	documents DocumentService
}

func NewPolicyService(params ServiceParams) PolicyService {
	return &policyService{
		ServiceParams: params,
		payment:       NewPaymentService(params),
		documents:     NewDocumentService(params),
	}
}

func (s *policyService) IssuePolicy(ctx context.Context, req *dto.IssuePolicyRequest) (*dto.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	q, err := s.QuoteRepo.Get(ctx, req.QuoteID)
	if err != nil {
		return nil, err
	}

	if _, err := s.PolicyRepo.GetByQuoteID(ctx, q.ID); err == nil {
		return nil, ierr.NewErrorf("quote %s already has a policy", q.ID).
			WithHint("A quote can be converted into a policy at most once").
			Mark(ierr.ErrDuplicatePolicy)
	} else if !ierr.IsNotFound(err) {
		return nil, err
	}

	now := time.Now().UTC()
	if !q.CanConvert(now) {
		if q.Status == types.QuoteStatusPending {
			// past its window but never explicitly expired; mark it on
			// the way out
			q.Status = types.QuoteStatusExpired
			q.Touch(ctx)
			if err := s.QuoteRepo.Update(ctx, q, types.QuoteStatusPending); err != nil {
				s.Logger.Errorw("failed to lazily expire quote",
					"quote_id", q.ID,
					"error", err)
			}
		}
		return nil, ierr.NewErrorf("quote %s is not convertible", q.ID).
			WithHint("Only a pending, unexpired quote can be converted").
			WithReportableDetails(map[string]any{
				"status":     q.Status,
				"expires_at": q.ExpiresAt,
			}).
			Mark(ierr.ErrQuoteNotConvertible)
	}

	paymentResult := s.payment.ProcessPayment(ctx, q.ID, q.Breakdown.Total)

	startDate := now
	if req.StartDate != nil {
		startDate = req.StartDate.UTC()
	}

	p := &policy.Policy{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_POLICY),
		OwnerID:       q.OwnerID,
		VehicleID:     q.VehicleID,
		ProductID:     q.ProductID,
		QuoteID:       q.ID,
		Premium:       q.Breakdown.Total,
		Status:        types.PolicyStatusActive,
		PaymentStatus: paymentResult.Status,
		StartDate:     startDate,
		EndDate:       startDate.AddDate(1, 0, 0),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}

	if err := s.PolicyRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	q.Status = types.QuoteStatusConverted
	q.Touch(ctx)
	if err := s.QuoteRepo.Update(ctx, q, types.QuoteStatusPending); err != nil {
		s.Logger.Errorw("failed to mark quote converted",
			"quote_id", q.ID,
			"policy_id", p.ID,
			"error", err)
	}

	resp := &dto.PolicyResponse{Policy: p}

	if p.PaymentStatus == types.PaymentStatusPaid {
		docs, err := s.documents.IssueDocuments(ctx, p.ID)
		if err != nil {
			// the policy stands; documents are recoverable via
			// regeneration
			s.Logger.Errorw("document issuance failed after policy creation",
				"policy_id", p.ID,
				"error", err)
		}
		resp.Documents = docs
	} else {
		s.Logger.Warnw("policy issued without documents, payment not settled",
			"policy_id", p.ID,
			"payment_status", p.PaymentStatus)
	}

	s.notify(ctx, types.NewNotification(
		p.OwnerID,
		types.NotificationPolicyIssued,
		"Your policy has been issued",
		fmt.Sprintf("Policy %s is active from %s.", p.ID, p.StartDate.Format("2006-01-02")),
	).WithRelatedEntity("policy", p.ID))

	s.record(ctx, audit.NewEntry(ctx, "policy.issued", "policy", p.ID, nil, p))

	s.Logger.Infow("policy issued",
		"policy_id", p.ID,
		"quote_id", q.ID,
		"premium", p.Premium,
		"payment_status", p.PaymentStatus)

	return resp, nil
}

func (s *policyService) RenewPolicy(ctx context.Context, policyID string) (*dto.PolicyResponse, error) {
	p, err := s.PolicyRepo.Get(ctx, policyID)
	if err != nil {
		return nil, err
	}

	if p.Status.IsTerminal() {
		return nil, ierr.NewErrorf("policy %s is cancelled", p.ID).
			WithHint("A cancelled policy cannot be renewed").
			Mark(ierr.ErrAlreadyTerminal)
	}

	if !p.CanRenew() {
		return nil, ierr.NewErrorf("policy %s cannot be renewed from status %s", p.ID, p.Status).
			Mark(ierr.ErrInvalidOperation)
	}

	before := *p
	now := time.Now().UTC()
	expected := p.Status

	p.StartDate, p.EndDate = p.NextRenewalWindow(now)
	p.Status = types.PolicyStatusActive
	p.PaymentStatus = types.PaymentStatusPending
	p.Touch(ctx)

	if err := s.PolicyRepo.Update(ctx, p, expected); err != nil {
		return nil, err
	}

	if _, err := s.documents.IssueSupplementaryDocument(ctx, p.ID, types.DocumentKindAmendment, ""); err != nil {
		s.Logger.Errorw("failed to issue renewal amendment document",
			"policy_id", p.ID,
			"error", err)
	}

	s.notify(ctx, types.NewNotification(
		p.OwnerID,
		types.NotificationPolicyRenewed,
		"Your policy has been renewed",
		fmt.Sprintf("Policy %s now runs until %s.", p.ID, p.EndDate.Format("2006-01-02")),
	).WithRelatedEntity("policy", p.ID))

	s.record(ctx, audit.NewEntry(ctx, "policy.renewed", "policy", p.ID, before, p))

	s.Logger.Infow("policy renewed",
		"policy_id", p.ID,
		"start_date", p.StartDate,
		"end_date", p.EndDate)

	return &dto.PolicyResponse{Policy: p}, nil
}

func (s *policyService) CancelPolicy(ctx context.Context, req *dto.CancelPolicyRequest) (*dto.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PolicyRepo.Get(ctx, req.PolicyID)
	if err != nil {
		return nil, err
	}

	if p.Status.IsTerminal() {
		return nil, ierr.NewErrorf("policy %s is already cancelled", p.ID).
			Mark(ierr.ErrAlreadyTerminal)
	}

	before := *p
	expected := p.Status
	p.Status = types.PolicyStatusCancelled
	p.Touch(ctx)

	if err := s.PolicyRepo.Update(ctx, p, expected); err != nil {
		return nil, err
	}

	if _, err := s.documents.IssueSupplementaryDocument(ctx, p.ID, types.DocumentKindCancellation, req.Note); err != nil {
		s.Logger.Errorw("failed to issue cancellation document",
			"policy_id", p.ID,
			"error", err)
	}

	s.notify(ctx, types.NewNotification(
		p.OwnerID,
		types.NotificationPolicyCancelled,
		"Your policy has been cancelled",
		fmt.Sprintf("Policy %s is no longer active.", p.ID),
	).WithRelatedEntity("policy", p.ID))

	s.record(ctx, audit.NewEntry(ctx, "policy.cancelled", "policy", p.ID, before, p))

	s.Logger.Infow("policy cancelled", "policy_id", p.ID)

	return &dto.PolicyResponse{Policy: p}, nil
}

func (s *policyService) GetPolicy(ctx context.Context, id string) (*dto.PolicyResponse, error) {
	p, err := s.PolicyRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &dto.PolicyResponse{Policy: p}
	docs, err := s.DocumentRepo.ListActiveByPolicy(ctx, p.ID)
	if err != nil {
		s.Logger.Errorw("failed to list policy documents",
			"policy_id", p.ID,
			"error", err)
	} else {
		resp.Documents = docs
	}
	return resp, nil
}

func (s *policyService) ListPolicies(ctx context.Context, ownerID string) ([]*dto.PolicyResponse, error) {
	policies, err := s.PolicyRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.PolicyResponse, len(policies))
	for i, p := range policies {
		resp[i] = &dto.PolicyResponse{Policy: p}
	}
	return resp, nil
}
