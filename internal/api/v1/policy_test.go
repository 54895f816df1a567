package v1

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/assurly/assurly/internal/domain/policy"
	"github.com/assurly/assurly/internal/domain/product"
	"github.com/assurly/assurly/internal/domain/quote"
	"github.com/assurly/assurly/internal/domain/vehicle"
	"github.com/assurly/assurly/internal/rest/middleware"
	"github.com/assurly/assurly/internal/service"
	"github.com/assurly/assurly/internal/testutil"
	"github.com/assurly/assurly/internal/types"
)

type PolicyHandlerSuite struct {
	testutil.BaseServiceTestSuite
	router *gin.Engine
}

func TestPolicyHandler(t *testing.T) {
	suite.Run(t, new(PolicyHandlerSuite))
}

func (s *PolicyHandlerSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	params := service.ServiceParams{
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
	handler := NewPolicyHandler(service.NewPolicyService(params), s.GetLogger())

	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())
	s.router.POST("/v1/policies/:id/cancel", handler.CancelPolicy)
}

func (s *PolicyHandlerSuite) seedActivePolicy() *policy.Policy {
	ctx := s.GetContext()

	v := &vehicle.Vehicle{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_VEHICLE),
		OwnerID:        "user_test",
		Make:           "Peugeot",
		Model:          "208",
		Year:           2022,
		RegistrationNo: "EF-456-GH",
		MarketValue:    decimal.NewFromInt(12000),
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	prod := &product.Product{
		ID:   types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRODUCT),
		Name: "Au Tiers",
		Tariff: product.Tariff{
			BaseRate:         decimal.NewFromInt(50),
			VehicleValueRate: decimal.RequireFromString("2.5"),
		},
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	total := decimal.NewFromInt(350)
	q := &quote.Quote{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_QUOTE),
		OwnerID:   v.OwnerID,
		VehicleID: v.ID,
		ProductID: prod.ID,
		PricingSnapshot: quote.TariffSnapshot{
			BaseRate:         prod.Tariff.BaseRate,
			VehicleValueRate: prod.Tariff.VehicleValueRate,
		},
		Breakdown: quote.PricingBreakdown{Base: total, Total: total},
		Status:    types.QuoteStatusConverted,
		ExpiresAt: time.Now().UTC().AddDate(0, 0, 14),
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
	now := time.Now().UTC()
	p := &policy.Policy{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_POLICY),
		OwnerID:       q.OwnerID,
		VehicleID:     q.VehicleID,
		ProductID:     q.ProductID,
		QuoteID:       q.ID,
		Premium:       total,
		Status:        types.PolicyStatusActive,
		PaymentStatus: types.PaymentStatusPaid,
		StartDate:     now.AddDate(0, -1, 0),
		EndDate:       now.AddDate(0, 11, 0),
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}

	s.NoError(s.GetStores().VehicleRepo.Create(ctx, v))
	s.NoError(s.GetStores().ProductRepo.Create(ctx, prod))
	s.NoError(s.GetStores().QuoteRepo.Create(ctx, q))
	s.NoError(s.GetStores().PolicyRepo.Create(ctx, p))
	return p
}

func (s *PolicyHandlerSuite) TestCancelPolicyWithEmptyBody() {
	p := s.seedActivePolicy()

	req := httptest.NewRequest(http.MethodPost, "/v1/policies/"+p.ID+"/cancel", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	stored, err := s.GetStores().PolicyRepo.Get(s.GetContext(), p.ID)
	s.NoError(err)
	s.Equal(types.PolicyStatusCancelled, stored.Status)
}

func (s *PolicyHandlerSuite) TestCancelPolicyWithNote() {
	p := s.seedActivePolicy()

	body := strings.NewReader(`{"note":"sold the car"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/policies/"+p.ID+"/cancel", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
}

func (s *PolicyHandlerSuite) TestCancelPolicyWithMalformedBody() {
	p := s.seedActivePolicy()

	req := httptest.NewRequest(http.MethodPost, "/v1/policies/"+p.ID+"/cancel", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
}
