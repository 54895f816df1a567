package vehicle

import (
	"github.com/shopspring/decimal"

	"github.com/assurly/assurly/internal/types"
)

// Vehicle is an insured (or insurable) vehicle owned by a customer
type Vehicle struct {
	ID             string          `db:"id" json:"id"`
	OwnerID        string          `db:"owner_id" json:"owner_id"`
	Make           string          `db:"make" json:"make"`
	Model          string          `db:"model" json:"model"`
	Year           int             `db:"year" json:"year"`
	RegistrationNo string          `db:"registration_no" json:"registration_no"`
	MarketValue    decimal.Decimal `db:"market_value" json:"market_value"`

	types.BaseModel
}
