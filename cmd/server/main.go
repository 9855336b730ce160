package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/gaspacks/backend/internal/application/cart"
	"github.com/gaspacks/backend/internal/application/cartui"
	catalogapp "github.com/gaspacks/backend/internal/application/catalog"
	"github.com/gaspacks/backend/internal/application/checkout"
	identityapp "github.com/gaspacks/backend/internal/application/identity"
	"github.com/gaspacks/backend/internal/application/locator"
	"github.com/gaspacks/backend/internal/infrastructure/auth"
	"github.com/gaspacks/backend/internal/infrastructure/cache"
	"github.com/gaspacks/backend/internal/infrastructure/config"
	"github.com/gaspacks/backend/internal/infrastructure/geocoding"
	"github.com/gaspacks/backend/internal/infrastructure/logger"
	"github.com/gaspacks/backend/internal/infrastructure/payment"
	"github.com/gaspacks/backend/internal/infrastructure/persistence"
	"github.com/gaspacks/backend/internal/infrastructure/telemetry"
	"github.com/gaspacks/backend/internal/interfaces/http/handler"
	"github.com/gaspacks/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize tracing (no-op when disabled)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        "postgresql",
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Cart snapshots live in Redis; fall back to process memory when
	// Redis is unreachable so a cache outage never takes checkout down.
	snapshotFactory := cache.NewSnapshotStoreFactory(cfg.Redis, cache.WithLogger(log))
	snapshots, err := snapshotFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create cart snapshot store", zap.Error(err))
	}

	// Repositories
	cartRecordRepo := persistence.NewGormCartRecordRepository(db.DB)
	dispensaryRepo := persistence.NewGormDispensaryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	identityRecordRepo := persistence.NewGormIdentityRecordRepository(db.DB)

	// External adapters
	invoiceGateway, err := payment.NewNOWPaymentsAdapter(&payment.NOWPaymentsConfig{
		APIKey:         cfg.Payment.APIKey,
		BaseURL:        cfg.Payment.BaseURL,
		IPNCallbackURL: cfg.Payment.IPNCallbackURL,
		SuccessURL:     cfg.Payment.SuccessURL,
		CancelURL:      cfg.Payment.CancelURL,
		Timeout:        cfg.Payment.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to initialize invoice gateway", zap.Error(err))
	}

	geocoder, err := geocoding.NewGoogleAdapter(&geocoding.GoogleConfig{
		APIKey:  cfg.Geocoding.APIKey,
		BaseURL: cfg.Geocoding.BaseURL,
		Timeout: cfg.Geocoding.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to initialize geocoder", zap.Error(err))
	}

	// Application services
	cartService := cartapp.NewService(snapshots, cartRecordRepo)
	panelService := cartui.NewPanelService()
	checkoutService := checkout.NewService(cartService, invoiceGateway)
	locatorService := locator.NewService(dispensaryRepo, geocoder).WithLogger(log)
	identityService := identityapp.NewService(profileRepo, identityRecordRepo).WithLogger(log)
	catalogService := catalogapp.NewService(productRepo)

	// Session token verification
	verifier := auth.NewTokenVerifier(cfg.JWT)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := handler.NewEngine(handler.RouterConfig{
		Cart:       handler.NewCartHandler(cartService, panelService),
		Checkout:   handler.NewCheckoutHandler(checkoutService),
		Dispensary: handler.NewDispensaryHandler(locatorService),
		Products:   handler.NewProductHandler(catalogService),
		Identity:   handler.NewIdentityHandler(identityService),
		System:     handler.NewSystemHandler(db),

		Verifier: verifier,
		Statuses: identityService,
		AdminKey: cfg.Admin.ImportKey,

		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		CORS: middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		MaxBodyBytes: cfg.HTTP.MaxBodySize,
	}, log)

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
