package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/assurly/assurly/internal/domain/policy"
	"github.com/assurly/assurly/internal/domain/product"
	"github.com/assurly/assurly/internal/domain/quote"
	"github.com/assurly/assurly/internal/domain/vehicle"
	"github.com/assurly/assurly/internal/testutil"
	"github.com/assurly/assurly/internal/types"
)

// testParams wires ServiceParams from the shared test suite
func testParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		PDFGenerator: s.GetPDFGenerator(),
		BlobStore:    s.GetBlobStore(),
		Notifier:     s.GetNotifier(),
		Auditor:      s.GetAuditor(),
		SequenceRepo: stores.SequenceRepo,
		VehicleRepo:  stores.VehicleRepo,
		ProductRepo:  stores.ProductRepo,
		QuoteRepo:    stores.QuoteRepo,
		PolicyRepo:   stores.PolicyRepo,
		DocumentRepo: stores.DocumentRepo,
		ClaimRepo:    stores.ClaimRepo,
	}
}

func newTestVehicle(ctx context.Context, marketValue string) *vehicle.Vehicle {
	return &vehicle.Vehicle{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_VEHICLE),
		OwnerID:        "user_test",
		Make:           "Renault",
		Model:          "Clio",
		Year:           2021,
		RegistrationNo: "AB-123-CD",
		MarketValue:    decimal.RequireFromString(marketValue),
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

func newTestProduct(ctx context.Context, baseRate, vehicleValueRate string) *product.Product {
	return &product.Product{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRODUCT),
		Name:        "Tous Risques",
		Description: "Full coverage",
		Tariff: product.Tariff{
			BaseRate:         decimal.RequireFromString(baseRate),
			VehicleValueRate: decimal.RequireFromString(vehicleValueRate),
		},
		AddOns: []product.AddOn{
			{Code: "glass", Name: "Glass breakage", Price: decimal.RequireFromString("45.50")},
			{Code: "assist", Name: "Roadside assistance", Price: decimal.RequireFromString("30")},
		},
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

func newTestQuote(ctx context.Context, v *vehicle.Vehicle, p *product.Product, total string) *quote.Quote {
	totalDec := decimal.RequireFromString(total)
	return &quote.Quote{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_QUOTE),
		OwnerID:   v.OwnerID,
		VehicleID: v.ID,
		ProductID: p.ID,
		PricingSnapshot: quote.TariffSnapshot{
			BaseRate:         p.Tariff.BaseRate,
			VehicleValueRate: p.Tariff.VehicleValueRate,
		},
		Breakdown: quote.PricingBreakdown{
			Base:        totalDec,
			ValuePart:   decimal.Zero,
			AddOnsTotal: decimal.Zero,
			Total:       totalDec,
		},
		Status:    types.QuoteStatusPending,
		ExpiresAt: time.Now().UTC().AddDate(0, 0, quoteValidityDays),
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

func newTestPolicy(ctx context.Context, q *quote.Quote, status types.PolicyStatus, endDate time.Time) *policy.Policy {
	return &policy.Policy{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_POLICY),
		OwnerID:       q.OwnerID,
		VehicleID:     q.VehicleID,
		ProductID:     q.ProductID,
		QuoteID:       q.ID,
		Premium:       q.Breakdown.Total,
		Status:        status,
		PaymentStatus: types.PaymentStatusPaid,
		StartDate:     endDate.AddDate(-1, 0, 0),
		EndDate:       endDate,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}
