package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/assurly/assurly/internal/dto"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/testutil"
	"github.com/assurly/assurly/internal/types"
)

type QuoteServiceSuite struct {
	testutil.BaseServiceTestSuite
	service QuoteService
}

func TestQuoteService(t *testing.T) {
	suite.Run(t, new(QuoteServiceSuite))
}

func (s *QuoteServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewQuoteService(testParams(&s.BaseServiceTestSuite))
}

func (s *QuoteServiceSuite) TestCreateQuote() {
	ctx := s.GetContext()
	v := newTestVehicle(ctx, "10000")
	p := newTestProduct(ctx, "50", "2.5")
	s.NoError(s.GetStores().VehicleRepo.Create(ctx, v))
	s.NoError(s.GetStores().ProductRepo.Create(ctx, p))

	resp, err := s.service.CreateQuote(ctx, &dto.CreateQuoteRequest{
		OwnerID:        v.OwnerID,
		VehicleID:      v.ID,
		ProductID:      p.ID,
		SelectedAddOns: []string{"glass"},
	})
	s.NoError(err)
	s.Equal(types.QuoteStatusPending, resp.Status)

	// 5000 + 250 + 45.50
	s.True(resp.Breakdown.Total.Equal(decimal.RequireFromString("5295.50")),
		"total was %s", resp.Breakdown.Total)

	// the snapshot freezes the tariff at quote time
	s.True(resp.PricingSnapshot.BaseRate.Equal(p.Tariff.BaseRate))
	s.Len(resp.PricingSnapshot.AddOns, 1)
	s.Equal("glass", resp.PricingSnapshot.AddOns[0].Code)

	expectedExpiry := time.Now().UTC().AddDate(0, 0, quoteValidityDays)
	s.WithinDuration(expectedExpiry, resp.ExpiresAt, time.Minute)
}

func (s *QuoteServiceSuite) TestCreateQuoteUnknownAddOnsIgnored() {
	ctx := s.GetContext()
	v := newTestVehicle(ctx, "10000")
	p := newTestProduct(ctx, "300", "0")
	s.NoError(s.GetStores().VehicleRepo.Create(ctx, v))
	s.NoError(s.GetStores().ProductRepo.Create(ctx, p))

	resp, err := s.service.CreateQuote(ctx, &dto.CreateQuoteRequest{
		OwnerID:        v.OwnerID,
		VehicleID:      v.ID,
		ProductID:      p.ID,
		SelectedAddOns: []string{"does-not-exist"},
	})
	s.NoError(err)
	s.True(resp.Breakdown.AddOnsTotal.IsZero())
	s.Empty(resp.PricingSnapshot.AddOns)
}

func (s *QuoteServiceSuite) TestCreateQuoteMissingVehicle() {
	ctx := s.GetContext()
	p := newTestProduct(ctx, "50", "2.5")
	s.NoError(s.GetStores().ProductRepo.Create(ctx, p))

	_, err := s.service.CreateQuote(ctx, &dto.CreateQuoteRequest{
		OwnerID:   "user_test",
		VehicleID: "veh_missing",
		ProductID: p.ID,
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *QuoteServiceSuite) TestExpireQuote() {
	ctx := s.GetContext()
	v := newTestVehicle(ctx, "10000")
	p := newTestProduct(ctx, "50", "2.5")
	q := newTestQuote(ctx, v, p, "5250")
	s.NoError(s.GetStores().QuoteRepo.Create(ctx, q))

	resp, err := s.service.ExpireQuote(ctx, q.ID)
	s.NoError(err)
	s.Equal(types.QuoteStatusExpired, resp.Status)

	// expiring again is a no-op
	resp, err = s.service.ExpireQuote(ctx, q.ID)
	s.NoError(err)
	s.Equal(types.QuoteStatusExpired, resp.Status)
}

func (s *QuoteServiceSuite) TestExpireConvertedQuoteFails() {
	ctx := s.GetContext()
	v := newTestVehicle(ctx, "10000")
	p := newTestProduct(ctx, "50", "2.5")
	q := newTestQuote(ctx, v, p, "5250")
	q.Status = types.QuoteStatusConverted
	s.NoError(s.GetStores().QuoteRepo.Create(ctx, q))

	_, err := s.service.ExpireQuote(ctx, q.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}
