package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/vitrine/internal"
	"github.com/dukerupert/vitrine/internal/catalog"
	"github.com/dukerupert/vitrine/internal/domain"
	"github.com/dukerupert/vitrine/internal/handler"
	"github.com/dukerupert/vitrine/internal/handler/storefront"
	"github.com/dukerupert/vitrine/internal/middleware"
	"github.com/dukerupert/vitrine/internal/money"
	"github.com/dukerupert/vitrine/internal/postgres"
	"github.com/dukerupert/vitrine/internal/router"
	"github.com/dukerupert/vitrine/internal/routes"
	"github.com/dukerupert/vitrine/internal/telemetry"
	"github.com/dukerupert/vitrine/web"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Open the product catalog
	source, pinger, closeCatalog, err := openCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCatalog()

	products := catalog.NewCached(source, cfg.Catalog.CacheSize, cfg.Catalog.CacheTTL)

	formatter, err := money.NewFormatter(cfg.Display.Locale)
	if err != nil {
		return fmt.Errorf("failed to initialize price formatter: %w", err)
	}

	// Load templates with renderer
	logger.Info("Loading templates...")
	renderer, err := handler.NewRenderer(web.Templates())
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}
	logger.Info("Templates loaded successfully")

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(cfg.Metrics.Namespace, registry)
	business := telemetry.NewBusinessMetrics(cfg.Metrics.Namespace, registry)

	productHandler := storefront.NewProductHandler(storefront.ProductHandlerConfig{
		Catalog:        products,
		Renderer:       renderer,
		Formatter:      formatter,
		CurrencySymbol: cfg.Display.CurrencySymbol,
		Metrics:        business,
	})

	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env == "dev" {
		securityConfig.HSTSMaxAge = 0
	}

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		middleware.SecurityHeaders(securityConfig),
		middleware.WithRequestLogger(logger),
		router.Logger(logger),
	)

	routes.RegisterSystemRoutes(r, routes.SystemDeps{
		HealthHandler:  handler.Health(pinger),
		MetricsHandler: metrics.Handler(),
	})
	routes.RegisterStorefrontRoutes(r, routes.StorefrontDeps{
		ProductHandler: productHandler,
		Static:         web.Static(),
		CatalogTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", srv.Addr, "env", cfg.Env, "locale", formatter.Locale())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("Server stopped")

	return nil
}

// openCatalog returns the Postgres catalog when DATABASE_URL is set and the
// JSON file catalog otherwise. The pinger is nil for the file catalog.
func openCatalog(ctx context.Context, cfg *internal.Config, logger *slog.Logger) (domain.ProductCatalog, handler.Pinger, func(), error) {
	if cfg.DatabaseUrl == "" {
		logger.Info("Loading catalog file...", "path", cfg.Catalog.File)
		fc, err := catalog.OpenFile(cfg.Catalog.File)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("catalog load failed: %w", err)
		}
		logger.Info("Catalog file loaded")
		return fc, nil, func() {}, nil
	}

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, nil, nil, fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return nil, nil, nil, fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pc := postgres.NewCatalog(pool)
	return pc, pc, pool.Close, nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
