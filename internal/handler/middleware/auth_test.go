//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"storefront-checkout/internal/handler/middleware"
	"storefront-checkout/internal/pkg/cookie"
	"storefront-checkout/internal/usecase"
	"storefront-checkout/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubValidator struct {
	tokens map[string]usecase.Identity
}

func (v stubValidator) ValidateToken(token string) (usecase.Identity, error) {
	id, ok := v.tokens[token]
	if !ok {
		return usecase.Identity{}, errors.New("invalid token")
	}
	return id, nil
}

func TestOptionalAuth(t *testing.T) {
	member := usecase.Identity{UserID: uuid.New(), Email: "member@example.com"}
	auth := middleware.NewAuthMiddleware(stubValidator{tokens: map[string]usecase.Identity{"good": member}})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", auth.OptionalAuth(), func(c *gin.Context) {
		id, ok := middleware.GetUserID(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user": "guest"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": id.String(), "email": middleware.GetUserEmail(c)})
	})

	whoami := func(t *testing.T, bearer string, cookies []*http.Cookie) map[string]string {
		t.Helper()
		rec := httptest.PerformRequestWithCookies(t, r, http.MethodGet, "/whoami", nil, cookies, bearer)
		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		return body
	}

	t.Run("no token is a guest", func(t *testing.T) {
		assert.Equal(t, "guest", whoami(t, "", nil)["user"])
	})

	t.Run("bearer token", func(t *testing.T) {
		body := whoami(t, "good", nil)
		assert.Equal(t, member.UserID.String(), body["user"])
		assert.Equal(t, "member@example.com", body["email"])
	})

	t.Run("session cookie", func(t *testing.T) {
		body := whoami(t, "", []*http.Cookie{{Name: cookie.AccessTokenCookieName, Value: "good"}})
		assert.Equal(t, member.UserID.String(), body["user"])
	})

	t.Run("invalid token downgrades to guest", func(t *testing.T) {
		assert.Equal(t, "guest", whoami(t, "forged", nil)["user"])
	})
}
