//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

// GenerateToken issues an access token shaped like the auth provider's.
func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, email string) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, h.cfg.Audience).GenerateToken(userID, email, time.Hour)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, h.cfg.Audience).GenerateToken(userID, "", -time.Minute)
	require.NoError(t, err)
	return token
}
