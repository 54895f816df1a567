package dto

import (
	"context"
	"time"

	"github.com/assurly/assurly/internal/domain/claim"
	"github.com/assurly/assurly/internal/types"
	"github.com/assurly/assurly/internal/validator"
)

type IncidentRequest struct {
	Date        time.Time `json:"date" validate:"required"`
	Location    string    `json:"location" validate:"required"`
	Type        string    `json:"type" validate:"required"`
	Description string    `json:"description" validate:"required"`
}

type CreateClaimRequest struct {
	PolicyID string          `json:"policy_id" validate:"required"`
	Incident IncidentRequest `json:"incident" validate:"required"`
}

func (r *CreateClaimRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateClaimRequest) ToClaim(ctx context.Context) *claim.Claim {
	return &claim.Claim{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLAIM),
		Reference: types.GenerateShortIDWithPrefix("CLM"),
		PolicyID:  r.PolicyID,
		Status:    types.ClaimStatusReceived,
		Incident: claim.Incident{
			Date:        r.Incident.Date,
			Location:    r.Incident.Location,
			Type:        r.Incident.Type,
			Description: r.Incident.Description,
		},
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

type TransitionClaimRequest struct {
	ClaimID string            `json:"claim_id" validate:"required"`
	Status  types.ClaimStatus `json:"status" validate:"required"`
	Note    string            `json:"note"`
}

func (r *TransitionClaimRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type AssignExpertRequest struct {
	ClaimID  string `json:"claim_id" validate:"required"`
	ExpertID string `json:"expert_id" validate:"required"`
}

func (r *AssignExpertRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type AddClaimMessageRequest struct {
	ClaimID string `json:"claim_id" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

func (r *AddClaimMessageRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type AddClaimAttachmentRequest struct {
	ClaimID     string `json:"claim_id" validate:"required"`
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data" validate:"required"`
}

func (r *AddClaimAttachmentRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ClaimResponse struct {
	*claim.Claim
	// AllowedTransitions lists the statuses reachable from the current
	// one, for workflow UIs.
	AllowedTransitions []types.ClaimStatus `json:"allowed_transitions,omitempty"`
}
