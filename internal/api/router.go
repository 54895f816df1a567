package api

import (
	"github.com/gin-gonic/gin"

	"github.com/assurly/assurly/internal/api/cron"
	v1 "github.com/assurly/assurly/internal/api/v1"
	"github.com/assurly/assurly/internal/rest/middleware"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Vehicle  *v1.VehicleHandler
	Product  *v1.ProductHandler
	Quote    *v1.QuoteHandler
	Policy   *v1.PolicyHandler
	Claim    *v1.ClaimHandler
	Document *v1.DocumentHandler

	CronSweep *cron.SweepHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(
		middleware.CORSMiddleware,
		middleware.RequestIDMiddleware,
		middleware.ActorMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	// scheduler-only surface, kept outside /v1
	cronGroup := router.Group("/cron")
	{
		cronGroup.POST("/sweep", handlers.CronSweep.RunDailySweep)
	}

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	vehicles := router.Group("/vehicles")
	{
		vehicles.POST("", handlers.Vehicle.CreateVehicle)
		vehicles.GET("", handlers.Vehicle.ListVehicles)
		vehicles.GET("/:id", handlers.Vehicle.GetVehicle)
	}

	products := router.Group("/products")
	{
		products.POST("", handlers.Product.CreateProduct)
		products.GET("", handlers.Product.ListProducts)
		products.GET("/:id", handlers.Product.GetProduct)
	}

	quotes := router.Group("/quotes")
	{
		quotes.POST("", handlers.Quote.CreateQuote)
		quotes.GET("", handlers.Quote.ListQuotes)
		quotes.GET("/:id", handlers.Quote.GetQuote)
		quotes.POST("/:id/expire", handlers.Quote.ExpireQuote)
	}

	policies := router.Group("/policies")
	{
		policies.POST("", handlers.Policy.IssuePolicy)
		policies.GET("", handlers.Policy.ListPolicies)
		policies.GET("/:id", handlers.Policy.GetPolicy)
		policies.POST("/:id/renew", handlers.Policy.RenewPolicy)
		policies.POST("/:id/cancel", handlers.Policy.CancelPolicy)

		policies.GET("/:id/documents", handlers.Document.ListDocuments)
		policies.POST("/:id/documents/regenerate", handlers.Document.RegenerateDocuments)
		policies.POST("/:id/documents/supplementary", handlers.Document.IssueSupplementaryDocument)
	}

	claims := router.Group("/claims")
	{
		claims.POST("", handlers.Claim.CreateClaim)
		claims.GET("", handlers.Claim.ListClaims)
		claims.GET("/:id", handlers.Claim.GetClaim)
		claims.POST("/:id/transition", handlers.Claim.TransitionClaim)
		claims.POST("/:id/expert", handlers.Claim.AssignExpert)
		claims.POST("/:id/messages", handlers.Claim.AddMessage)
		claims.POST("/:id/attachments", handlers.Claim.AddAttachment)
	}

	documents := router.Group("/documents")
	{
		documents.GET("/:id", handlers.Document.GetDocument)
	}
}
