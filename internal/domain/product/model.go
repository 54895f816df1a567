package product

import (
	"github.com/shopspring/decimal"

	"github.com/assurly/assurly/internal/types"
)

// Tariff holds the pricing parameters of a product.
//
// BaseRate carries a legacy dual meaning: a value of 100 or less is a
// percentage of the vehicle's market value, a value above 100 is a
// flat amount. VehicleValueRate is always a percentage.
type Tariff struct {
	BaseRate         decimal.Decimal `db:"base_rate" json:"base_rate"`
	VehicleValueRate decimal.Decimal `db:"vehicle_value_rate" json:"vehicle_value_rate"`
}

// AddOn is an optional coverage extension with a flat price
type AddOn struct {
	Code  string          `db:"code" json:"code"`
	Name  string          `db:"name" json:"name"`
	Price decimal.Decimal `db:"price" json:"price"`
}

// Product is an insurance product offered to customers
type Product struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Tariff      Tariff  `json:"tariff"`
	AddOns      []AddOn `json:"add_ons"`

	types.BaseModel
}

// AddOnsByCode returns the subset of the product's add-ons whose codes
// appear in codes. Unknown codes are ignored.
func (p *Product) AddOnsByCode(codes []string) []AddOn {
	if len(codes) == 0 {
		return nil
	}

	wanted := make(map[string]bool, len(codes))
	for _, c := range codes {
		wanted[c] = true
	}

	var result []AddOn
	for _, a := range p.AddOns {
		if wanted[a.Code] {
			result = append(result, a)
		}
	}
	return result
}
