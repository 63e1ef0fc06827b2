package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lys-checkout/internal/config"
	"lys-checkout/internal/database"
	"lys-checkout/internal/discount"
	"lys-checkout/internal/evaluator"
	"lys-checkout/internal/handler"
	"lys-checkout/internal/metrics"
	"lys-checkout/internal/repository"
	"lys-checkout/internal/router"
	"lys-checkout/internal/service"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting lys-checkout API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Metrics registry; left nil when metrics are disabled so collectors no-op.
	var (
		registry   *prometheus.Registry
		registerer prometheus.Registerer
	)
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		registerer = registry
	}
	catalogMetrics := metrics.NewCatalogMetrics(registerer)
	checkoutMetrics := metrics.NewCheckoutMetrics(registerer)
	httpMetrics := metrics.NewHTTPMetrics(registerer)

	productRepo := repository.NewProductRepository(pool, logger)
	brandRepo := repository.NewBrandRepository(pool, logger)
	usageRepo := repository.NewDiscountUsageRepository(pool, logger)

	loader := newDiscountLoader(ctx, cfg.S3, logger)

	validatorConfig := discount.DefaultValidatorConfig()
	validatorConfig.FilePaths = cfg.Discounts.Files
	validator, err := discount.NewValidator(ctx, validatorConfig, loader, usageRepo, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize discount validator: %w", err)
	}
	defer validator.Close()

	ev := evaluator.New(
		evaluator.WithDefaultMOA(cfg.Evaluator.DefaultMOA),
		evaluator.WithObserver(evaluator.MultiObserver(catalogMetrics, service.NewLoggingObserver(logger))),
	)

	productService := service.NewProductService(productRepo, logger)
	brandService := service.NewBrandService(brandRepo, logger)
	checkoutService := service.NewCheckoutService(
		productRepo,
		brandRepo,
		validator,
		ev,
		checkoutMetrics,
		cfg.Evaluator.DefaultCurrency,
		logger,
	)

	handlers := router.Handlers{
		Product:  handler.NewProductHandler(productService, logger),
		Brand:    handler.NewBrandHandler(brandService, logger),
		Checkout: handler.NewCheckoutHandler(checkoutService, logger),
	}
	opts := router.Options{HTTPMetrics: httpMetrics}
	if registry != nil {
		opts.Gatherer = registry
		opts.MetricsPath = cfg.Metrics.Path
	}
	mux := router.New(handlers, cfg.Auth.APIKey, opts, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Bool("metrics", cfg.Metrics.Enabled).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newDiscountLoader builds the catalog loader: S3 with local fallback when
// enabled, local files otherwise.
func newDiscountLoader(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) discount.Loader {
	fileLoader := discount.NewFileLoader(logger)
	if !cfg.Enabled {
		logger.Info().Msg("using local file system for discount files (S3 disabled)")
		return fileLoader
	}

	s3Loader, err := discount.NewS3Loader(ctx, cfg.Bucket, cfg.Region, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 loader, falling back to local file system only")
		return fileLoader
	}

	return discount.NewFallbackLoader(s3Loader, fileLoader, cfg.Prefix, true, logger)
}
