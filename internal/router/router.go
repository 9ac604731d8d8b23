// Package router assembles the gin engine and its route table.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"herdbook/internal/handlers"
	"herdbook/internal/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Animal     *handlers.AnimalHandler
	Production *handlers.ProductionHandler
	Feeding    *handlers.FeedingHandler
	Breeding   *handlers.BreedingHandler
	Ledger     *handlers.LedgerHandler
	Internal   *handlers.InternalHandler
	Health     *handlers.HealthHandler
}

// Options carries the middleware settings for New.
type Options struct {
	Tokens         *middleware.TokenIssuer
	InternalAPIKey string
}

// New builds the gin engine with the shared middleware chain and all routes.
func New(h Handlers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())
	router.Use(cors())
	router.NoRoute(middleware.NoRoute)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/api/health", h.Health.Health)

	v1 := router.Group("/api/v1")
	v1.GET("/health", h.Health.Health)

	auth := v1.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	internal := v1.Group("/internal")
	internal.Use(middleware.APIKeyMiddleware(opts.InternalAPIKey))
	internal.POST("/reconcile", h.Internal.ReconcileAll)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(opts.Tokens))

	protected.GET("/profile", h.Auth.GetProfile)

	animals := protected.Group("/animals")
	animals.POST("", h.Animal.CreateAnimal)
	animals.GET("", h.Animal.ListAnimals)
	animals.GET("/:id", h.Animal.GetAnimal)
	animals.PUT("/:id", h.Animal.UpdateAnimal)
	animals.DELETE("/:id", h.Animal.DeleteAnimal)

	production := protected.Group("/production-records")
	production.POST("", h.Production.CreateProductionRecord)
	production.GET("", h.Production.ListProductionRecords)
	production.GET("/:id", h.Production.GetProductionRecord)
	production.PUT("/:id", h.Production.UpdateProductionRecord)
	production.DELETE("/:id", h.Production.DeleteProductionRecord)

	feeding := protected.Group("/feeding-records")
	feeding.POST("", h.Feeding.CreateFeedingRecord)
	feeding.GET("", h.Feeding.ListFeedingRecords)
	feeding.GET("/:id", h.Feeding.GetFeedingRecord)
	feeding.PUT("/:id", h.Feeding.UpdateFeedingRecord)
	feeding.DELETE("/:id", h.Feeding.DeleteFeedingRecord)

	breeding := protected.Group("/breeding-records")
	breeding.POST("", h.Breeding.CreateBreedingRecord)
	breeding.GET("", h.Breeding.ListBreedingRecords)
	breeding.GET("/:id", h.Breeding.GetBreedingRecord)
	breeding.PUT("/:id", h.Breeding.UpdateBreedingRecord)
	breeding.DELETE("/:id", h.Breeding.DeleteBreedingRecord)

	ledger := protected.Group("/ledger")
	ledger.POST("", h.Ledger.CreateLedgerEntry)
	ledger.GET("", h.Ledger.ListLedgerEntries)
	ledger.GET("/summary", h.Ledger.GetLedgerSummary)
	ledger.GET("/export", h.Ledger.ExportLedger)
	ledger.POST("/reconcile", h.Ledger.ReconcileLedger)
	ledger.GET("/:id", h.Ledger.GetLedgerEntry)
	ledger.PUT("/:id", h.Ledger.UpdateLedgerEntry)
	ledger.DELETE("/:id", h.Ledger.DeleteLedgerEntry)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
