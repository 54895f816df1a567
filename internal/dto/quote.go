package dto

import (
	"github.com/assurly/assurly/internal/domain/quote"
	"github.com/assurly/assurly/internal/validator"
)

type CreateQuoteRequest struct {
	OwnerID        string   `json:"owner_id" validate:"required"`
	VehicleID      string   `json:"vehicle_id" validate:"required"`
	ProductID      string   `json:"product_id" validate:"required"`
	SelectedAddOns []string `json:"selected_add_ons"`
}

func (r *CreateQuoteRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type QuoteResponse struct {
	*quote.Quote
}
