package middleware

import (
	"log/slog"
	"strings"

	"storefront-checkout/internal/pkg/cookie"
	"storefront-checkout/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey    = "user_id"
	ctxUserEmailKey = "user_email"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// OptionalAuth authenticates the request if a token is present, but does not abort on failure.
// Checkout is open to guests, so an invalid token only downgrades the request to guest.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token = cookie.GetAccessToken(c)
		}

		if token == "" {
			c.Next()
			return
		}

		identity, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Debug("ignoring invalid access token", "error", err.Error())
			c.Next()
			return
		}

		c.Set(ctxUserIDKey, identity.UserID)
		c.Set(ctxUserEmailKey, identity.Email)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserEmail(c *gin.Context) string {
	return c.GetString(ctxUserEmailKey)
}
