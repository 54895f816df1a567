package quote

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/assurly/assurly/internal/types"
)

// PricingBreakdown is the itemized premium for a quote. Every
// component is rounded to 2 decimals independently, and the total is
// rounded again after summation. Immutable once attached to a quote.
type PricingBreakdown struct {
	Base        decimal.Decimal `db:"base" json:"base"`
	ValuePart   decimal.Decimal `db:"value_part" json:"value_part"`
	AddOnsTotal decimal.Decimal `db:"add_ons_total" json:"add_ons_total"`
	Total       decimal.Decimal `db:"total" json:"total"`
}

// AddOnSnapshot freezes one selected add-on at quote time
type AddOnSnapshot struct {
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// TariffSnapshot freezes the tariff parameters at quote time so later
// tariff edits never retroactively change an outstanding quote.
type TariffSnapshot struct {
	BaseRate         decimal.Decimal `json:"base_rate"`
	VehicleValueRate decimal.Decimal `json:"vehicle_value_rate"`
	AddOns           []AddOnSnapshot `json:"add_ons,omitempty"`
}

// Quote is a priced, time-limited offer for a policy
type Quote struct {
	ID              string            `db:"id" json:"id"`
	OwnerID         string            `db:"owner_id" json:"owner_id"`
	VehicleID       string            `db:"vehicle_id" json:"vehicle_id"`
	ProductID       string            `db:"product_id" json:"product_id"`
	SelectedAddOns  []string          `json:"selected_add_ons,omitempty"`
	PricingSnapshot TariffSnapshot    `json:"pricing_snapshot"`
	Breakdown       PricingBreakdown  `json:"breakdown"`
	Status          types.QuoteStatus `db:"status" json:"status"`
	ExpiresAt       time.Time         `db:"expires_at" json:"expires_at"`

	types.BaseModel
}

// CanConvert reports whether the quote can still be turned into a
// policy at the given instant.
func (q *Quote) CanConvert(now time.Time) bool {
	return q.Status == types.QuoteStatusPending && !now.After(q.ExpiresAt)
}
