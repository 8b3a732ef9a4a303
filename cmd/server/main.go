package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	cartapp "github.com/cubemart/backend/internal/application/cart"
	catalogapp "github.com/cubemart/backend/internal/application/catalog"
	paymentapp "github.com/cubemart/backend/internal/application/payment"
	"github.com/cubemart/backend/internal/infrastructure/auth"
	infracart "github.com/cubemart/backend/internal/infrastructure/cart"
	"github.com/cubemart/backend/internal/infrastructure/config"
	"github.com/cubemart/backend/internal/infrastructure/logger"
	"github.com/cubemart/backend/internal/infrastructure/persistence"
	"github.com/cubemart/backend/internal/interfaces/http/handler"
	"github.com/cubemart/backend/internal/interfaces/http/middleware"
	"github.com/cubemart/backend/internal/interfaces/http/router"
)

// version is stamped at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("Starting cubemart backend",
		zap.String("version", version),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Stripe.SecretKey != "" {
		if err := cfg.Stripe.Validate(); err != nil {
			log.Fatal("Invalid Stripe configuration", zap.Error(err))
		}
		cfg.Stripe.InitStripeClient()
		log.Info("Stripe client configured",
			zap.Bool("test_mode", cfg.Stripe.IsTestMode),
			zap.String("currency", cfg.Stripe.Currency))
	}

	cartStore, err := infracart.NewRedisStore(cfg.Redis,
		infracart.WithTTL(cfg.Cart.TTL),
		infracart.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Application services
	productService := catalogapp.NewProductService(productRepo, categoryRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	cartService := cartapp.NewService(cartStore)
	webhookService := paymentapp.NewStripeWebhookService(paymentapp.StripeWebhookServiceConfig{
		Config:    &cfg.Stripe,
		OrderRepo: orderRepo,
		Logger:    log,
	})

	jwtService := auth.NewJWTService(cfg.JWT)
	metrics := middleware.NewHTTPMetrics(cfg.App.Name)

	engine := router.Setup(router.Dependencies{
		Config:     cfg,
		Logger:     log,
		JWTService: jwtService,
		Metrics:    metrics,
		Handlers: router.Handlers{
			Product:       handler.NewProductHandler(productService),
			Category:      handler.NewCategoryHandler(categoryService),
			Cart:          handler.NewCartHandler(cartService),
			StripeWebhook: handler.NewStripeWebhookHandler(webhookService, log),
			System:        handler.NewSystemHandler(db, version),
		},
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := cartStore.Close(); err != nil {
		log.Warn("Failed to close Redis client", zap.Error(err))
	}

	log.Info("Server exited")
}
