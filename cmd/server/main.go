package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/assurly/assurly/internal/api"
	"github.com/assurly/assurly/internal/api/cron"
	v1 "github.com/assurly/assurly/internal/api/v1"
	"github.com/assurly/assurly/internal/audit"
	"github.com/assurly/assurly/internal/cache"
	"github.com/assurly/assurly/internal/config"
	"github.com/assurly/assurly/internal/logger"
	"github.com/assurly/assurly/internal/notification"
	"github.com/assurly/assurly/internal/pdf"
	"github.com/assurly/assurly/internal/postgres"
	"github.com/assurly/assurly/internal/pubsub"
	pubsubMemory "github.com/assurly/assurly/internal/pubsub/memory"
	"github.com/assurly/assurly/internal/repository"
	"github.com/assurly/assurly/internal/s3"
	"github.com/assurly/assurly/internal/service"
	"github.com/assurly/assurly/internal/typst"
	"github.com/assurly/assurly/internal/validator"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC

	// Load .env if present; real deployments rely on the environment
	_ = godotenv.Load()
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewClient,

			// Blob storage
			s3.NewService,

			// Document rendering
			typst.NewCompiler,
			pdf.NewGenerator,

			// PubSub and sinks
			providePubSub,
			notification.NewPublisher,
			audit.NewPublisher,

			// Repositories
			repository.NewSequenceRepository,
			repository.NewVehicleRepository,
			repository.NewProductRepository,
			repository.NewQuoteRepository,
			repository.NewPolicyRepository,
			repository.NewDocumentRepository,
			repository.NewClaimRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewVehicleService,
			service.NewProductService,
			service.NewPricingService,
			service.NewQuoteService,
			service.NewPaymentService,
			service.NewDocumentService,
			service.NewPolicyService,
			service.NewClaimService,
			service.NewSweepService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app := fx.New(opts...)
	app.Run()
}

func providePubSub(log *logger.Logger) pubsub.PubSub {
	return pubsubMemory.NewPubSub(log)
}

func provideHandlers(
	log *logger.Logger,
	vehicleService service.VehicleService,
	productService service.ProductService,
	quoteService service.QuoteService,
	policyService service.PolicyService,
	claimService service.ClaimService,
	documentService service.DocumentService,
	sweepService service.SweepService,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(log),
		Vehicle:  v1.NewVehicleHandler(vehicleService, log),
		Product:  v1.NewProductHandler(productService, log),
		Quote:    v1.NewQuoteHandler(quoteService, log),
		Policy:   v1.NewPolicyHandler(policyService, log),
		Claim:    v1.NewClaimHandler(claimService, log),
		Document: v1.NewDocumentHandler(documentService, log),

		CronSweep: cron.NewSweepHandler(log, sweepService),
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	notifier notification.Publisher,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			return notifier.Close()
		},
	})
}
