package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/assurly/assurly/internal/domain/product"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/testutil"
)

type PricingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PricingService
}

func TestPricingService(t *testing.T) {
	suite.Run(t, new(PricingServiceSuite))
}

func (s *PricingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPricingService(testParams(&s.BaseServiceTestSuite))
}

func (s *PricingServiceSuite) TestBaseRateAsPercentage() {
	// a base rate of 100 or less is a percentage of the market value
	v := newTestVehicle(s.GetContext(), "10000")
	tariff := product.Tariff{
		BaseRate:         decimal.RequireFromString("50"),
		VehicleValueRate: decimal.RequireFromString("2.5"),
	}

	breakdown, err := s.service.Calculate(v, tariff, nil)
	s.NoError(err)
	s.True(breakdown.Base.Equal(decimal.RequireFromString("5000")), "base was %s", breakdown.Base)
	s.True(breakdown.ValuePart.Equal(decimal.RequireFromString("250")), "value part was %s", breakdown.ValuePart)
	s.True(breakdown.AddOnsTotal.IsZero())
	s.True(breakdown.Total.Equal(decimal.RequireFromString("5250")), "total was %s", breakdown.Total)
}

func (s *PricingServiceSuite) TestBaseRateAsFlatAmount() {
	// a base rate above 100 is a flat amount
	v := newTestVehicle(s.GetContext(), "10000")
	tariff := product.Tariff{
		BaseRate:         decimal.RequireFromString("300"),
		VehicleValueRate: decimal.RequireFromString("1.5"),
	}

	breakdown, err := s.service.Calculate(v, tariff, nil)
	s.NoError(err)
	s.True(breakdown.Base.Equal(decimal.RequireFromString("300")), "base was %s", breakdown.Base)
	s.True(breakdown.ValuePart.Equal(decimal.RequireFromString("150")), "value part was %s", breakdown.ValuePart)
	s.True(breakdown.Total.Equal(decimal.RequireFromString("450")), "total was %s", breakdown.Total)
}

func (s *PricingServiceSuite) TestBaseRateThresholdBoundary() {
	// exactly 100 is still a percentage
	v := newTestVehicle(s.GetContext(), "10000")
	tariff := product.Tariff{
		BaseRate:         decimal.RequireFromString("100"),
		VehicleValueRate: decimal.Zero,
	}

	breakdown, err := s.service.Calculate(v, tariff, nil)
	s.NoError(err)
	s.True(breakdown.Base.Equal(decimal.RequireFromString("10000")))

	tariff.BaseRate = decimal.RequireFromString("100.01")
	breakdown, err = s.service.Calculate(v, tariff, nil)
	s.NoError(err)
	s.True(breakdown.Base.Equal(decimal.RequireFromString("100.01")))
}

func (s *PricingServiceSuite) TestAddOnsAreSummed() {
	v := newTestVehicle(s.GetContext(), "10000")
	tariff := product.Tariff{
		BaseRate:         decimal.RequireFromString("300"),
		VehicleValueRate: decimal.Zero,
	}
	addOns := []product.AddOn{
		{Code: "glass", Price: decimal.RequireFromString("45.50")},
		{Code: "assist", Price: decimal.RequireFromString("30")},
	}

	breakdown, err := s.service.Calculate(v, tariff, addOns)
	s.NoError(err)
	s.True(breakdown.AddOnsTotal.Equal(decimal.RequireFromString("75.50")))
	s.True(breakdown.Total.Equal(decimal.RequireFromString("375.50")))
}

func (s *PricingServiceSuite) TestComponentsAreRoundedToTwoDecimals() {
	v := newTestVehicle(s.GetContext(), "10001")
	tariff := product.Tariff{
		// 10001 * 33.333 / 100 = 3333.63333
		BaseRate:         decimal.RequireFromString("33.333"),
		VehicleValueRate: decimal.RequireFromString("1.111"),
	}

	breakdown, err := s.service.Calculate(v, tariff, nil)
	s.NoError(err)
	s.True(breakdown.Base.Equal(decimal.RequireFromString("3333.63")), "base was %s", breakdown.Base)
	s.True(breakdown.ValuePart.Equal(decimal.RequireFromString("111.11")), "value part was %s", breakdown.ValuePart)
	s.True(breakdown.Total.Equal(breakdown.Base.Add(breakdown.ValuePart).Add(breakdown.AddOnsTotal).Round(2)))
}

func (s *PricingServiceSuite) TestDeterministic() {
	v := newTestVehicle(s.GetContext(), "18500.75")
	tariff := product.Tariff{
		BaseRate:         decimal.RequireFromString("4.2"),
		VehicleValueRate: decimal.RequireFromString("0.85"),
	}
	addOns := []product.AddOn{{Code: "glass", Price: decimal.RequireFromString("45.50")}}

	first, err := s.service.Calculate(v, tariff, addOns)
	s.NoError(err)

	for i := 0; i < 10; i++ {
		again, err := s.service.Calculate(v, tariff, addOns)
		s.NoError(err)
		s.True(first.Total.Equal(again.Total))
		s.True(first.Base.Equal(again.Base))
		s.True(first.ValuePart.Equal(again.ValuePart))
	}
}

func (s *PricingServiceSuite) TestRejectsNonPositiveMarketValue() {
	v := newTestVehicle(s.GetContext(), "0")
	tariff := product.Tariff{
		BaseRate:         decimal.RequireFromString("50"),
		VehicleValueRate: decimal.RequireFromString("2.5"),
	}

	_, err := s.service.Calculate(v, tariff, nil)
	s.Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.service.Calculate(nil, tariff, nil)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PricingServiceSuite) TestRejectsMissingBaseRate() {
	v := newTestVehicle(s.GetContext(), "10000")
	tariff := product.Tariff{VehicleValueRate: decimal.RequireFromString("2.5")}

	_, err := s.service.Calculate(v, tariff, nil)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
