package policy

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/assurly/assurly/internal/types"
)

// Policy is an issued insurance contract. At most one policy ever
// references a given quote.
type Policy struct {
	ID            string              `db:"id" json:"id"`
	OwnerID       string              `db:"owner_id" json:"owner_id"`
	VehicleID     string              `db:"vehicle_id" json:"vehicle_id"`
	ProductID     string              `db:"product_id" json:"product_id"`
	QuoteID       string              `db:"quote_id" json:"quote_id"`
	Premium       decimal.Decimal     `db:"premium" json:"premium"`
	Status        types.PolicyStatus  `db:"status" json:"status"`
	PaymentStatus types.PaymentStatus `db:"payment_status" json:"payment_status"`
	StartDate     time.Time           `db:"start_date" json:"start_date"`
	EndDate       time.Time           `db:"end_date" json:"end_date"`
	// DocumentIDs references the currently active document set
	DocumentIDs []string `json:"document_ids,omitempty"`

	types.BaseModel
}

// CanRenew reports whether renewal is allowed from the current status
func (p *Policy) CanRenew() bool {
	return p.Status == types.PolicyStatusActive || p.Status == types.PolicyStatusExpired
}

// NextRenewalWindow returns the renewed start and end dates: one year
// starting from whichever is later, the current end date or now.
func (p *Policy) NextRenewalWindow(now time.Time) (time.Time, time.Time) {
	start := p.EndDate
	if now.After(start) {
		start = now
	}
	return start, start.AddDate(1, 0, 0)
}
