package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cubemart/backend/internal/infrastructure/auth"
	"github.com/cubemart/backend/internal/infrastructure/config"
	"github.com/cubemart/backend/internal/infrastructure/logger"
	"github.com/cubemart/backend/internal/interfaces/http/handler"
	"github.com/cubemart/backend/internal/interfaces/http/middleware"
)

// maxRequestBodySize bounds JSON request bodies. Product images arrive as
// URLs, not uploads, so 1MB is generous.
const maxRequestBodySize = 1 << 20

// Handlers bundles the HTTP handlers mounted by Setup
type Handlers struct {
	Product       *handler.ProductHandler
	Category      *handler.CategoryHandler
	Cart          *handler.CartHandler
	StripeWebhook *handler.StripeWebhookHandler
	System        *handler.SystemHandler
}

// Dependencies contains everything Setup needs to build the engine
type Dependencies struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService
	Metrics    *middleware.HTTPMetrics
	Handlers   Handlers
}

// Setup builds the gin engine with the full middleware chain and all
// storefront routes mounted under /api.
func Setup(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(logger.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		engine.Use(deps.Metrics.Middleware())
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(deps.Config)))
	engine.Use(middleware.BodyLimit(maxRequestBodySize))

	// Operational endpoints live outside the /api prefix
	engine.GET("/healthz", deps.Handlers.System.Health)
	if deps.Metrics != nil {
		engine.GET("/metrics", deps.Metrics.Handler())
	}

	api := engine.Group("/api")

	requireAdmin := []gin.HandlerFunc{
		middleware.RequireAuth(deps.JWTService, deps.Logger),
		middleware.RequireAdmin(),
	}

	categories := api.Group("/categories")
	{
		categories.GET("", deps.Handlers.Category.List)
		categories.POST("", append(requireAdmin, deps.Handlers.Category.Create)...)
	}

	products := api.Group("/products")
	{
		products.GET("", deps.Handlers.Product.List)
		products.GET("/:slug", deps.Handlers.Product.Get)
		products.PUT("/:slug", append(requireAdmin, deps.Handlers.Product.Update)...)
		products.DELETE("/:slug", append(requireAdmin, deps.Handlers.Product.Delete)...)
	}

	cart := api.Group("/cart")
	cart.Use(middleware.CartID())
	{
		cart.GET("", deps.Handlers.Cart.Get)
		cart.DELETE("", deps.Handlers.Cart.Clear)
		cart.POST("/items", deps.Handlers.Cart.AddItem)
		cart.PUT("/items/:id", deps.Handlers.Cart.UpdateItem)
		cart.DELETE("/items/:id", deps.Handlers.Cart.RemoveItem)
		cart.POST("/toggle", deps.Handlers.Cart.Toggle)
	}

	api.POST("/webhooks/stripe", deps.Handlers.StripeWebhook.Handle)

	return engine
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return corsCfg
}
