package service

import (
	"github.com/shopspring/decimal"

	"github.com/assurly/assurly/internal/domain/product"
	"github.com/assurly/assurly/internal/domain/quote"
	"github.com/assurly/assurly/internal/domain/vehicle"
	ierr "github.com/assurly/assurly/internal/errors"
)

// PricingService computes premium breakdowns. Calculate is pure:
// deterministic, no side effects, so the same inputs always reproduce
// the same quote.
type PricingService interface {
	Calculate(v *vehicle.Vehicle, tariff product.Tariff, addOns []product.AddOn) (*quote.PricingBreakdown, error)
}

type pricingService struct {
	ServiceParams
}

func NewPricingService(params ServiceParams) PricingService {
	return &pricingService{ServiceParams: params}
}

var percentDivisor = decimal.NewFromInt(100)

// baseRateFlatThreshold is the legacy convention boundary: a base rate
// of 100 or less is a percentage of the vehicle's market value, above
// 100 it is a flat amount. Preserved verbatim; see the tariff docs.
var baseRateFlatThreshold = decimal.NewFromInt(100)

func (s *pricingService) Calculate(v *vehicle.Vehicle, tariff product.Tariff, addOns []product.AddOn) (*quote.PricingBreakdown, error) {
	if v == nil || !v.MarketValue.IsPositive() {
		return nil, ierr.NewError("vehicle market value must be positive").
			WithHint("Set a positive market value on the vehicle before quoting").
			Mark(ierr.ErrValidation)
	}

	if !tariff.BaseRate.IsPositive() {
		return nil, ierr.NewError("tariff base rate is missing").
			WithHint("The product tariff must define a positive base rate").
			Mark(ierr.ErrValidation)
	}

	if tariff.VehicleValueRate.IsNegative() {
		return nil, ierr.NewError("tariff vehicle value rate is negative").
			Mark(ierr.ErrValidation)
	}

	base := tariff.BaseRate
	if tariff.BaseRate.LessThanOrEqual(baseRateFlatThreshold) {
		base = v.MarketValue.Mul(tariff.BaseRate).Div(percentDivisor)
	}
	base = base.Round(2)

	valuePart := v.MarketValue.Mul(tariff.VehicleValueRate).Div(percentDivisor).Round(2)

	addOnsTotal := decimal.Zero
	for _, a := range addOns {
		addOnsTotal = addOnsTotal.Add(a.Price)
	}
	addOnsTotal = addOnsTotal.Round(2)

	total := base.Add(valuePart).Add(addOnsTotal).Round(2)

	return &quote.PricingBreakdown{
		Base:        base,
		ValuePart:   valuePart,
		AddOnsTotal: addOnsTotal,
		Total:       total,
	}, nil
}
