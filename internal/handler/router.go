package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"storefront-checkout/internal/handler/api"
	"storefront-checkout/internal/handler/middleware"
	"storefront-checkout/internal/infra/metrics"
	"storefront-checkout/internal/infra/ratelimit"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// HealthChecker is satisfied by the connection pool.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type RouterParams struct {
	fx.In

	Config          config.Config
	Logger          *middleware.Logger
	Clock           clock.Clock
	CheckoutHandler *api.CheckoutHandler
	WebhookHandler  *api.WebhookHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Limiter         *ratelimit.SlidingWindow
	ServerMetrics   *metrics.ServerMetrics
	Registry        *metrics.Registry
	Health          HealthChecker
}

func NewRouter(engine *gin.Engine, p RouterParams) {
	setupMiddleware(engine, p)
	setupRoutes(engine, p)
}

func setupMiddleware(engine *gin.Engine, p RouterParams) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.SkipCORS(middleware.NewCORSMiddleware(p.Config.CORS), "/api/webhooks"))
	engine.Use(p.Logger.LoggingMiddleware())
	engine.Use(middleware.Metrics(p.ServerMetrics))
	engine.Use(middleware.ErrorHandler())

	engine.HandleMethodNotAllowed = true
	engine.NoRoute(middleware.NotFound)
	engine.NoMethod(middleware.MethodNotAllowed)
}

func setupRoutes(engine *gin.Engine, p RouterParams) {
	engine.GET("/health", healthCheck(p.Health))
	engine.GET("/metrics", gin.WrapH(p.Registry.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{
				Method:  http.MethodPost,
				Path:    "/checkout",
				Handler: p.CheckoutHandler.Checkout,
				Mw: []gin.HandlerFunc{
					p.AuthMiddleware.OptionalAuth(),
					middleware.RateLimit(p.Limiter, p.Clock.Now),
				},
			},
		})

		webhooks := apiGroup.Group("/webhooks")
		{
			addRoutes(webhooks, []route{
				{Method: http.MethodPost, Path: "/stripe", Handler: p.WebhookHandler.Stripe},
			})
		}
	}
}

// @Summary Health check
// @Description Reports whether the service can reach its database
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func healthCheck(db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			slog.Warn("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok"})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
