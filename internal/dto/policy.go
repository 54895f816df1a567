package dto

import (
	"time"

	"github.com/assurly/assurly/internal/domain/document"
	"github.com/assurly/assurly/internal/domain/policy"
	"github.com/assurly/assurly/internal/validator"
)

type IssuePolicyRequest struct {
	QuoteID string `json:"quote_id" validate:"required"`
	// StartDate defaults to the issuance instant when omitted
	StartDate *time.Time `json:"start_date,omitempty"`
}

func (r *IssuePolicyRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type CancelPolicyRequest struct {
	PolicyID string `json:"policy_id" validate:"required"`
	Note     string `json:"note"`
}

func (r *CancelPolicyRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type PolicyResponse struct {
	*policy.Policy
	// Documents is the active document set, populated on issuance and
	// on detail reads.
	Documents []*document.Document `json:"documents,omitempty"`
}
