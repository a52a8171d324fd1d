package middleware

import (
	"context"
	"log/slog"
	"os"
	"time"

	"storefront-checkout/internal/handler/httperr"
	"storefront-checkout/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"

	ctxRequestID      = "request_id"
	ctxIdempotencyKey = "idempotency_key"
	ctxSessionID      = "checkout_session_id"
)

// quiet paths are only logged when they fail
var quietPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

type Logger struct {
	logger   *slog.Logger
	timezone *time.Location
}

// NewLogger builds the process logger and installs it as the slog default.
// Release mode writes JSON, everything else writes text.
func NewLogger(cfg config.LogConfig) *Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	timezone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.In(timezone).Format(cfg.TimeFormat))
				}
			}
			return a
		},
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(slog.String("service", "storefront-checkout"))
	slog.SetDefault(logger)

	return &Logger{logger: logger, timezone: timezone}
}

func (l *Logger) GetSlogLogger() *slog.Logger {
	return l.logger
}

// LoggingMiddleware writes one line per request once the handler chain has finished.
// An incoming X-Request-ID is kept so provider and proxy logs can be joined.
func (l *Logger) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.NewString()
		}
		c.Set(ctxRequestID, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		if _, quiet := quietPaths[c.Request.URL.Path]; quiet && status < 400 {
			return
		}

		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("client_ip", c.ClientIP()),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
		}
		attrs = append(attrs, checkoutAttrs(c)...)
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		l.logger.LogAttrs(context.Background(), level, "request completed", attrs...)
	}
}

// checkoutAttrs collects what the checkout and auth handlers left on the context.
func checkoutAttrs(c *gin.Context) []slog.Attr {
	var attrs []slog.Attr
	if userID, ok := GetUserID(c); ok {
		attrs = append(attrs, slog.String("user_id", userID.String()))
	}
	if key := c.GetString(ctxIdempotencyKey); key != "" {
		attrs = append(attrs, slog.String("idempotency_key", key))
	}
	if sessionID := c.GetString(ctxSessionID); sessionID != "" {
		attrs = append(attrs, slog.String("session_id", sessionID))
	}
	if code := rejectionCode(c); code != "" {
		attrs = append(attrs, slog.String("rejection_code", code))
	}
	return attrs
}

func rejectionCode(c *gin.Context) string {
	for i := len(c.Errors) - 1; i >= 0; i-- {
		if resp, ok := c.Errors[i].Meta.(httperr.Response); ok && resp.Detail != nil {
			return resp.Code
		}
	}
	return ""
}

// AnnotateCheckout exposes the created session to the request log.
func AnnotateCheckout(c *gin.Context, idempotencyKey, sessionID string) {
	c.Set(ctxIdempotencyKey, idempotencyKey)
	c.Set(ctxSessionID, sessionID)
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}
