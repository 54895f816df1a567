package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/assurly/assurly/internal/config"
	"github.com/assurly/assurly/internal/domain/claim"
	"github.com/assurly/assurly/internal/domain/document"
	"github.com/assurly/assurly/internal/domain/policy"
	"github.com/assurly/assurly/internal/domain/product"
	"github.com/assurly/assurly/internal/domain/quote"
	"github.com/assurly/assurly/internal/domain/sequence"
	"github.com/assurly/assurly/internal/domain/vehicle"
	"github.com/assurly/assurly/internal/logger"
	"github.com/assurly/assurly/internal/types"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	SequenceRepo sequence.Repository
	VehicleRepo  vehicle.Repository
	ProductRepo  product.Repository
	QuoteRepo    quote.Repository
	PolicyRepo   policy.Repository
	DocumentRepo document.Repository
	ClaimRepo    claim.Repository
}

// BaseServiceTestSuite provides common functionality for all service
// test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	stores       Stores
	notifier     *InMemoryNotificationSink
	auditor      *InMemoryAuditSink
	pdfGenerator *MockPDFGenerator
	blobStore    *InMemoryBlobStore
	logger       *logger.Logger
	config       *config.Configuration
	now          time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	cfg := &config.Configuration{
		Logging: config.LoggingConfig{
			Level: types.LogLevelInfo,
		},
		Notification: config.NotificationConfig{
			Topic: "notifications",
		},
		Audit: config.AuditConfig{
			Topic: "audit",
		},
		Payment: config.PaymentConfig{
			SuccessRate: 1,
		},
		Sweep: config.SweepConfig{
			PreExpiryNoticeDays: 30,
			StaleClaimDays:      30,
		},
	}
	s.config = cfg

	var err error
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = context.Background()
	s.ctx = types.SetRequestID(s.ctx, types.GenerateUUID())
	s.ctx = types.SetActorID(s.ctx, "user_test")
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		SequenceRepo: NewInMemorySequenceStore(),
		VehicleRepo:  NewInMemoryVehicleStore(),
		ProductRepo:  NewInMemoryProductStore(),
		QuoteRepo:    NewInMemoryQuoteStore(),
		PolicyRepo:   NewInMemoryPolicyStore(),
		DocumentRepo: NewInMemoryDocumentStore(),
		ClaimRepo:    NewInMemoryClaimStore(),
	}

	s.notifier = NewInMemoryNotificationSink()
	s.auditor = NewInMemoryAuditSink()
	s.pdfGenerator = NewMockPDFGenerator()
	s.blobStore = NewInMemoryBlobStore()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.SequenceRepo.(*InMemorySequenceStore).Clear()
	s.stores.VehicleRepo.(*InMemoryVehicleStore).Clear()
	s.stores.ProductRepo.(*InMemoryProductStore).Clear()
	s.stores.QuoteRepo.(*InMemoryQuoteStore).Clear()
	s.stores.PolicyRepo.(*InMemoryPolicyStore).Clear()
	s.stores.DocumentRepo.(*InMemoryDocumentStore).Clear()
	s.stores.ClaimRepo.(*InMemoryClaimStore).Clear()
	s.notifier.Clear()
	s.auditor.Clear()
	s.pdfGenerator.Clear()
	s.blobStore.Clear()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetNotifier returns the capturing notification sink
func (s *BaseServiceTestSuite) GetNotifier() *InMemoryNotificationSink {
	return s.notifier
}

// GetAuditor returns the capturing audit sink
func (s *BaseServiceTestSuite) GetAuditor() *InMemoryAuditSink {
	return s.auditor
}

// GetPDFGenerator returns the mock document renderer
func (s *BaseServiceTestSuite) GetPDFGenerator() *MockPDFGenerator {
	return s.pdfGenerator
}

// GetBlobStore returns the in-memory blob store
func (s *BaseServiceTestSuite) GetBlobStore() *InMemoryBlobStore {
	return s.blobStore
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
