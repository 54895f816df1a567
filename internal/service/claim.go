package service

import (
	"context"
	"fmt"
	"time"

	"github.com/assurly/assurly/internal/audit"
	"github.com/assurly/assurly/internal/domain/claim"
	"github.com/assurly/assurly/internal/dto"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/s3"
	"github.com/assurly/assurly/internal/types"
)

// ClaimService runs the claim workflow. Status changes go through a
// fixed transition graph; every mutation appends one history entry and
// is applied with a check-then-set guard so the validated status is
// the one the write lands on.
type ClaimService interface {
	CreateClaim(ctx context.Context, req *dto.CreateClaimRequest) (*dto.ClaimResponse, error)

	// TransitionClaim applies one edge of the workflow graph. A
	// same-status request is an idempotent no-op.
	TransitionClaim(ctx context.Context, req *dto.TransitionClaimRequest) (*dto.ClaimResponse, error)

	// AssignExpert force-sets EXPERT_ASSIGNED from any eligible status.
	// This is a workflow side effect, not an ordinary transition.
	AssignExpert(ctx context.Context, req *dto.AssignExpertRequest) (*dto.ClaimResponse, error)

	AddClaimMessage(ctx context.Context, req *dto.AddClaimMessageRequest) (*dto.ClaimResponse, error)
	AddClaimAttachment(ctx context.Context, req *dto.AddClaimAttachmentRequest) (*dto.ClaimResponse, error)

	GetClaim(ctx context.Context, id string) (*dto.ClaimResponse, error)
	ListClaimsByPolicy(ctx context.Context, policyID string) ([]*dto.ClaimResponse, error)
	ListClaimsByOwner(ctx context.Context, ownerID string) ([]*dto.ClaimResponse, error)
}

type claimService struct {
	ServiceParams
}

func NewClaimService(params ServiceParams) ClaimService {
	return &claimService{ServiceParams: params}
}

func (s *claimService) CreateClaim(ctx context.Context, req *dto.CreateClaimRequest) (*dto.ClaimResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PolicyRepo.Get(ctx, req.PolicyID)
	if err != nil {
		return nil, err
	}

	c := req.ToClaim(ctx)
	c.OwnerID = p.OwnerID
	c.VehicleID = p.VehicleID
	c.AppendHistory(types.ClaimStatusReceived, types.GetActorID(ctx), "claim received")

	if err := s.ClaimRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.notify(ctx, types.NewNotification(
		c.OwnerID,
		types.NotificationClaimReceived,
		"Your claim has been received",
		fmt.Sprintf("Claim %s has been registered and will be reviewed.", c.Reference),
	).WithRelatedEntity("claim", c.ID))

	s.record(ctx, audit.NewEntry(ctx, "claim.created", "claim", c.ID, nil, c))

	s.Logger.Infow("claim created",
		"claim_id", c.ID,
		"reference", c.Reference,
		"policy_id", c.PolicyID)

	return s.toResponse(c), nil
}

func (s *claimService) TransitionClaim(ctx context.Context, req *dto.TransitionClaimRequest) (*dto.ClaimResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if !req.Status.Validate() {
		return nil, ierr.NewErrorf("unknown claim status %s", req.Status).
			Mark(ierr.ErrValidation)
	}

	c, err := s.ClaimRepo.Get(ctx, req.ClaimID)
	if err != nil {
		return nil, err
	}

	// idempotent retry safety
	if c.Status == req.Status {
		return s.toResponse(c), nil
	}

	if c.Status.IsTerminal() {
		return nil, ierr.NewErrorf("claim %s is in terminal status %s", c.ID, c.Status).
			WithHint("Settled and rejected claims cannot change status").
			Mark(ierr.ErrTerminalState)
	}

	if !claim.CanTransition(c.Status, req.Status) {
		return nil, ierr.NewErrorf("transition %s -> %s is not allowed", c.Status, req.Status).
			WithReportableDetails(map[string]any{
				"allowed": claim.AllowedTargets(c.Status),
			}).
			Mark(ierr.ErrIllegalTransition)
	}

	before := *c
	expected := c.Status
	c.Status = req.Status
	c.AppendHistory(req.Status, types.GetActorID(ctx), req.Note)
	c.Touch(ctx)

	if err := s.ClaimRepo.Update(ctx, c, expected); err != nil {
		return nil, err
	}

	s.notify(ctx, types.NewNotification(
		c.OwnerID,
		types.NotificationClaimStatusChanged,
		"Your claim status has changed",
		fmt.Sprintf("Claim %s moved to %s.", c.Reference, c.Status),
	).WithRelatedEntity("claim", c.ID))

	s.record(ctx, audit.NewEntry(ctx, "claim.transitioned", "claim", c.ID, before, c))

	s.Logger.Infow("claim transitioned",
		"claim_id", c.ID,
		"from", expected,
		"to", c.Status)

	return s.toResponse(c), nil
}

func (s *claimService) AssignExpert(ctx context.Context, req *dto.AssignExpertRequest) (*dto.ClaimResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.ClaimRepo.Get(ctx, req.ClaimID)
	if err != nil {
		return nil, err
	}

	if c.Status.IsTerminal() {
		return nil, ierr.NewErrorf("claim %s is in terminal status %s", c.ID, c.Status).
			Mark(ierr.ErrTerminalState)
	}

	if !claim.CanAssignExpert(c.Status) {
		return nil, ierr.NewErrorf("cannot assign an expert while claim is %s", c.Status).
			Mark(ierr.ErrInvalidOperation)
	}

	before := *c
	expected := c.Status
	c.ExpertID = &req.ExpertID
	c.Status = types.ClaimStatusExpertAssigned
	c.AppendHistory(types.ClaimStatusExpertAssigned, types.GetActorID(ctx),
		fmt.Sprintf("expert %s assigned", req.ExpertID))
	c.Touch(ctx)

	if err := s.ClaimRepo.Update(ctx, c, expected); err != nil {
		return nil, err
	}

	s.notify(ctx, types.NewNotification(
		c.OwnerID,
		types.NotificationClaimStatusChanged,
		"An expert has been assigned to your claim",
		fmt.Sprintf("Claim %s is now with an expert.", c.Reference),
	).WithRelatedEntity("claim", c.ID))

	s.record(ctx, audit.NewEntry(ctx, "claim.expert_assigned", "claim", c.ID, before, c))

	return s.toResponse(c), nil
}

func (s *claimService) AddClaimMessage(ctx context.Context, req *dto.AddClaimMessageRequest) (*dto.ClaimResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.ClaimRepo.Get(ctx, req.ClaimID)
	if err != nil {
		return nil, err
	}

	c.Messages = append(c.Messages, claim.Message{
		ID:       types.GenerateUUID(),
		AuthorID: types.GetActorID(ctx),
		Body:     req.Body,
		At:       time.Now().UTC(),
	})
	c.Touch(ctx)

	if err := s.ClaimRepo.Update(ctx, c, c.Status); err != nil {
		return nil, err
	}

	return s.toResponse(c), nil
}

func (s *claimService) AddClaimAttachment(ctx context.Context, req *dto.AddClaimAttachmentRequest) (*dto.ClaimResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.ClaimRepo.Get(ctx, req.ClaimID)
	if err != nil {
		return nil, err
	}

	if c.Status.IsTerminal() {
		return nil, ierr.NewErrorf("claim %s is in terminal status %s", c.ID, c.Status).
			WithHint("Attachments cannot be added to a settled or rejected claim").
			Mark(ierr.ErrTerminalState)
	}

	attachmentID := types.GenerateUUID()
	location := fmt.Sprintf("local://attachments/%s/%s", c.ID, req.FileName)
	if s.BlobStore != nil {
		var err error
		location, err = s.BlobStore.Upload(ctx, &s3.Object{
			Category:    s3.CategoryClaimAttachment,
			Key:         fmt.Sprintf("%s/%s_%s", c.ID, attachmentID, req.FileName),
			ContentType: req.ContentType,
			Data:        req.Data,
		})
		if err != nil {
			return nil, err
		}
	}

	c.Attachments = append(c.Attachments, claim.Attachment{
		ID:           attachmentID,
		FileName:     req.FileName,
		BlobLocation: location,
		ByteSize:     int64(len(req.Data)),
		UploadedBy:   types.GetActorID(ctx),
		At:           time.Now().UTC(),
	})
	c.Touch(ctx)

	if err := s.ClaimRepo.Update(ctx, c, c.Status); err != nil {
		return nil, err
	}

	s.Logger.Infow("claim attachment added",
		"claim_id", c.ID,
		"file_name", req.FileName,
		"byte_size", len(req.Data))

	return s.toResponse(c), nil
}

func (s *claimService) GetClaim(ctx context.Context, id string) (*dto.ClaimResponse, error) {
	c, err := s.ClaimRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(c), nil
}

func (s *claimService) ListClaimsByPolicy(ctx context.Context, policyID string) ([]*dto.ClaimResponse, error) {
	claims, err := s.ClaimRepo.ListByPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(claims), nil
}

func (s *claimService) ListClaimsByOwner(ctx context.Context, ownerID string) ([]*dto.ClaimResponse, error) {
	claims, err := s.ClaimRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(claims), nil
}

func (s *claimService) toResponse(c *claim.Claim) *dto.ClaimResponse {
	return &dto.ClaimResponse{
		Claim:              c,
		AllowedTransitions: claim.AllowedTargets(c.Status),
	}
}

func (s *claimService) toResponses(claims []*claim.Claim) []*dto.ClaimResponse {
	resp := make([]*dto.ClaimResponse, len(claims))
	for i, c := range claims {
		resp[i] = s.toResponse(c)
	}
	return resp
}
