// Package main is the entry point for the site API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/polyworks/site-api/internal/adapters/clients"
	"github.com/polyworks/site-api/internal/adapters/clients/acl"
	"github.com/polyworks/site-api/internal/adapters/flags"
	"github.com/polyworks/site-api/internal/adapters/http"
	"github.com/polyworks/site-api/internal/adapters/http/handlers"
	"github.com/polyworks/site-api/internal/adapters/persistence/sqlite"
	"github.com/polyworks/site-api/internal/adapters/static"
	"github.com/polyworks/site-api/internal/app"
	"github.com/polyworks/site-api/internal/platform/config"
	"github.com/polyworks/site-api/internal/platform/logging"
	"github.com/polyworks/site-api/internal/platform/telemetry"
	"github.com/polyworks/site-api/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
		Insecure:     cfg.Telemetry.Insecure,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	metrics, err := telemetry.NewBusinessMetrics(nil)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	healthRegistry := ports.NewHealthRegistry()

	store, err := static.Load(cfg.Content.StaticDir)
	if err != nil {
		return fmt.Errorf("loading static content: %w", err)
	}

	db, err := sqlite.Open(sqlite.Options{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		LogQueries:   cfg.Database.LogQueries,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("database close error", slog.Any("error", closeErr))
		}
	}()

	forwarder, err := newForwarder(cfg, logger)
	if err != nil {
		return err
	}

	checkers := []ports.HealthChecker{store, db}
	if forwarder != nil {
		checkers = append(checkers, forwarder)
	}

	for _, checker := range checkers {
		if err := healthRegistry.Register(checker); err != nil {
			return fmt.Errorf("registering health check: %w", err)
		}
	}

	featureFlags := flags.NewStatic(cfg.Features)
	carts := sqlite.NewCartStore(db)

	contentService := app.NewContentService(app.ContentServiceConfig{
		Static:   store,
		Custom:   sqlite.NewContentStore(db),
		Flags:    featureFlags,
		Renderer: app.NewRenderer(),
		Metrics:  metrics,
		Logger:   logger,
	})
	catalogService := app.NewCatalogService(app.CatalogServiceConfig{
		Catalog: store,
		Flags:   featureFlags,
		Logger:  logger,
	})
	cartService := app.NewCartService(app.CartServiceConfig{
		Carts:   carts,
		Catalog: store,
		Metrics: metrics,
		Logger:  logger,
	})

	quoteCfg := app.QuoteServiceConfig{
		Quotes:  sqlite.NewQuoteStore(db),
		Carts:   carts,
		Catalog: store,
		Flags:   featureFlags,
		Metrics: metrics,
		Logger:  logger,
	}
	if forwarder != nil {
		quoteCfg.Forwarder = forwarder
	}
	quoteService := app.NewQuoteService(quoteCfg)

	server := http.New(&cfg.Server, logger)

	routerCfg := http.NewDefaultRouterConfig(logger, cfg)
	routerCfg.HealthHandler = handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo(Version, Commit, BuildTime))
	routerCfg.ContentHandler = handlers.NewContentHandler(contentService, &cfg.Content)
	routerCfg.CatalogHandler = handlers.NewCatalogHandler(catalogService, &cfg.Content)
	routerCfg.CartHandler = handlers.NewCartHandler(cartService)
	routerCfg.QuoteHandler = handlers.NewQuoteHandler(quoteService)
	routerCfg.AdminHandler = handlers.NewAdminHandler(contentService, quoteService, &cfg.Content)
	http.SetupRouter(server.Engine(), routerCfg)

	serverErr := server.Start()

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// newForwarder builds the CRM client, or returns nil when forwarding is not
// configured. Quotes are then stored with status received.
func newForwarder(cfg *config.Config, logger *slog.Logger) (*acl.CRMClient, error) {
	if !cfg.CRM.Enabled {
		logger.Info("CRM forwarding disabled")
		return nil, nil
	}

	client, err := clients.New(clients.Config{
		BaseURL:     cfg.CRM.BaseURL,
		ServiceName: cfg.CRM.Name,
		HTTP:        cfg.Client,
		AuthFunc:    acl.BearerAuth(cfg.CRM.APIKey),
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating CRM client: %w", err)
	}

	return acl.NewCRMClient(client, logger), nil
}

// waitForShutdown blocks until a shutdown signal is received or the server
// fails, then drains in-flight requests.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if ok && err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return errors.New("server stopped unexpectedly")

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
