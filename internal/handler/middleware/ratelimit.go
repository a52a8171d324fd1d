package middleware

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"storefront-checkout/internal/handler/httperr"
	"storefront-checkout/internal/infra/ratelimit"

	"github.com/gin-gonic/gin"
)

var errRateLimited = errors.New("rate limit exceeded")

type Limiter interface {
	Allow(key string) ratelimit.Decision
}

// RateLimit keys signed-in users by ID and guests by client IP. It must run after OptionalAuth.
func RateLimit(limiter Limiter, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if userID, ok := GetUserID(c); ok {
			key = "user:" + userID.String()
		}

		d := limiter.Allow(key)
		c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

		if !d.Allowed {
			retryAfter := int(math.Ceil(d.RetryAfter(now()).Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(retryAfter, 1)))
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited,
				"Too many checkout attempts. Please try again later.", nil)
			return
		}
		c.Next()
	}
}
