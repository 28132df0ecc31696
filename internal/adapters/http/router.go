package http

import (
	"cmp"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polyworks/site-api/internal/adapters/http/handlers"
	"github.com/polyworks/site-api/internal/adapters/http/middleware"
	"github.com/polyworks/site-api/internal/platform/config"
	"github.com/polyworks/site-api/internal/platform/logging"
	"github.com/polyworks/site-api/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default deadline for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the fallback logger for request logging.
	Logger *slog.Logger

	// AuthConfig describes the gateway identity headers guarding /admin.
	AuthConfig *config.AuthConfig

	// AppConfig names the service for tracing.
	AppConfig *config.AppConfig

	// SessionConfig configures the visitor cookie. Cart and quote routes
	// are only registered when it is set.
	SessionConfig *config.SessionConfig

	HealthHandler  *handlers.HealthHandler
	ContentHandler *handlers.ContentHandler
	CatalogHandler *handlers.CatalogHandler
	CartHandler    *handlers.CartHandler
	QuoteHandler   *handlers.QuoteHandler
	AdminHandler   *handlers.AdminHandler

	// Timeout is the request deadline on /api routes. Zero disables it.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Global middleware runs in this order, after the logger is attached:
//  1. Recovery
//  2. Request ID
//  3. Correlation ID
//  4. Tracing and request metrics
//  5. Logging (skips health endpoints)
//  6. Request context
//
// Route groups:
//   - /-/: health, build info and metrics
//   - /api/combined-*: merged static and custom content
//   - /api/v1/: paginated content, catalog, cart and quotes
//   - /api/v1/admin/: content editing and quote review
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	if cfg.Logger != nil {
		engine.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), cfg.Logger))
			c.Next()
		})
	}

	serviceName := "site-api"
	if cfg.AppConfig != nil && cfg.AppConfig.Name != "" {
		serviceName = cfg.AppConfig.Name
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(serviceName),
		telemetry.Middleware(),
		middleware.Logging("/favicon.ico"),
		middleware.RequestContext(),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	api := engine.Group("/api")
	if cfg.Timeout > 0 {
		api.Use(middleware.Timeout(cfg.Timeout))
	}

	if cfg.ContentHandler != nil {
		cfg.ContentHandler.RegisterCombinedRoutes(api)
	}

	setupAPIRoutes(api.Group("/v1"), cfg)
}

// setupAPIRoutes registers the versioned API.
func setupAPIRoutes(v1 *gin.RouterGroup, cfg RouterConfig) {
	if cfg.ContentHandler != nil {
		cfg.ContentHandler.RegisterContentRoutes(v1)
	}

	if cfg.CatalogHandler != nil {
		cfg.CatalogHandler.RegisterCatalogRoutes(v1)
	}

	if cfg.SessionConfig != nil {
		visitor := v1.Group("")
		visitor.Use(middleware.Session(cfg.SessionConfig))

		if cfg.CartHandler != nil {
			cfg.CartHandler.RegisterCartRoutes(visitor)
		}

		if cfg.QuoteHandler != nil {
			cfg.QuoteHandler.RegisterQuoteRoutes(visitor)
		}
	}

	if cfg.AdminHandler != nil {
		admin := v1.Group("/admin")
		if cfg.AuthConfig != nil && cfg.AuthConfig.Enabled {
			admin.Use(
				middleware.RequireAuth(cfg.AuthConfig),
				middleware.RequireRole(cfg.AuthConfig, cfg.AuthConfig.AdminRole),
			)
		}

		cfg.AdminHandler.RegisterAdminRoutes(admin)
	}
}

// NewDefaultRouterConfig creates a RouterConfig with the default timeout.
// Handlers are attached by the caller.
func NewDefaultRouterConfig(logger *slog.Logger, cfg *config.Config) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		AuthConfig:    &cfg.Auth,
		AppConfig:     &cfg.App,
		SessionConfig: &cfg.Session,
		Timeout:       cmp.Or(cfg.Server.RequestTimeout, DefaultRequestTimeout),
	}
}
