package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpAdapter "github.com/ravelli-czy/dashboard-care-teams/internal/adapters/primary/http"
	mw "github.com/ravelli-czy/dashboard-care-teams/internal/adapters/primary/http/middleware"
	"github.com/ravelli-czy/dashboard-care-teams/internal/adapters/secondary/memcache"
	"github.com/ravelli-czy/dashboard-care-teams/internal/config"
	"github.com/ravelli-czy/dashboard-care-teams/internal/core/domain"
	"github.com/ravelli-czy/dashboard-care-teams/internal/core/services"
	"github.com/ravelli-czy/dashboard-care-teams/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stdout,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	logger.Info("starting service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	// 3. Initialize Report Cache
	cache := memcache.NewStore(cfg.Reporting.CacheTTL, cfg.Reporting.CacheSweepInterval)

	// 4. Initialize Rate Limiter
	var rateLimiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = mw.NewRateLimiter(mw.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstSize:         cfg.RateLimit.BurstSize,
			CleanupInterval:   time.Minute,
			TTL:               3 * time.Minute,
		})
	}

	// 5. Dependency Injection (Wiring the Hexagon)

	// Error Handler
	errorHandler := httpAdapter.NewErrorHandler(logger)

	// Services (Core)
	ingestService := services.NewIngestService()
	staffingService := services.NewStaffingService()
	reportService := services.NewReportService(staffingService)
	compareService := services.NewCompareService(staffingService)

	// Default aggregation settings from configuration
	defaults := domain.ReportSettings{
		TPP: domain.TPPThresholds{
			CapacityMax: cfg.Reporting.TPPCapacityMax,
			OptimalMax:  cfg.Reporting.TPPOptimalMax,
			LimitMax:    cfg.Reporting.TPPLimitMax,
		},
		CompareWindowMonths: cfg.Reporting.CompareWindowMonths,
	}

	// Handlers (Primary Adapters)
	reportHandler := httpAdapter.NewReportHandler(
		ingestService,
		reportService,
		compareService,
		cache,
		defaults,
		cfg.Reporting.MaxUploadBytes,
		errorHandler,
		logger,
	)
	healthHandler := httpAdapter.NewHealthHandler(cache, cfg.App.Version)

	// 6. Setup Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.RecoveryLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.App.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", mw.RequestIDHeader},
		ExposedHeaders: []string{mw.RequestIDHeader, "X-Report-Cache"},
		MaxAge:         300,
	}))

	// Apply rate limiting if enabled
	if rateLimiter != nil {
		r.Use(rateLimiter.Middleware)
	}

	// Health check endpoints (outside /api/v1 for standard probe paths)
	r.Get("/health", healthHandler.HandleHealth)
	r.Get("/health/live", healthHandler.HandleLiveness)
	r.Get("/health/ready", healthHandler.HandleReadiness)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		reportHandler.RegisterRoutes(r)
	})

	// 7. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", "signal", sig.String())

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}
