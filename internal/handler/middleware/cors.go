package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"storefront-checkout/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware serves the storefront origins. A "*" origin opens the API to any
// site but then drops credentials, since browsers refuse the combination.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	if slices.Contains(cfg.AllowOrigins, "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}

	slog.Info("cors configured",
		"origins", cfg.AllowOrigins,
		"credentials", corsCfg.AllowCredentials)
	return cors.New(corsCfg)
}

// SkipCORS leaves server-to-server routes such as provider webhooks without CORS headers.
func SkipCORS(mw gin.HandlerFunc, prefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range prefixes {
			if strings.HasPrefix(c.Request.URL.Path, p) {
				c.Next()
				return
			}
		}
		mw(c)
	}
}
