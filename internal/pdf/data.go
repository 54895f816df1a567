package pdf

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/assurly/assurly/internal/types"
)

// VehicleData is the vehicle block rendered on legal documents
type VehicleData struct {
	Make           string          `json:"make"`
	Model          string          `json:"model"`
	Year           int             `json:"year"`
	RegistrationNo string          `json:"registration_no"`
	MarketValue    decimal.Decimal `json:"market_value"`
}

// BreakdownData is the premium breakdown rendered on receipts
type BreakdownData struct {
	Base        decimal.Decimal `json:"base"`
	ValuePart   decimal.Decimal `json:"value_part"`
	AddOnsTotal decimal.Decimal `json:"add_ons_total"`
	Total       decimal.Decimal `json:"total"`
}

// AddOnData is one selected add-on line
type AddOnData struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// DocumentData is the data bag handed to the renderer for one
// document. It snapshots everything the template needs so a
// regeneration years later still renders the state at issuance.
type DocumentData struct {
	Number      string             `json:"number"`
	Kind        types.DocumentKind `json:"kind"`
	GeneratedAt time.Time          `json:"generated_at"`

	PolicyID         string              `json:"policy_id"`
	HolderID         string              `json:"holder_id"`
	ProductName      string              `json:"product_name"`
	Premium          decimal.Decimal     `json:"premium"`
	PaymentStatus    types.PaymentStatus `json:"payment_status"`
	PolicyStartDate  time.Time           `json:"policy_start_date"`
	PolicyEndDate    time.Time           `json:"policy_end_date"`
	CancellationNote string              `json:"cancellation_note,omitempty"`

	Vehicle   VehicleData   `json:"vehicle"`
	Breakdown BreakdownData `json:"breakdown"`
	AddOns    []AddOnData   `json:"add_ons,omitempty"`
}
