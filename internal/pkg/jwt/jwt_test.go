//go:build unit

package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-with-enough-length-000"

func TestValidateToken(t *testing.T) {
	svc := NewService(testSecret, "authenticated")
	userID := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, "user@example.com", time.Hour)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)

		require.NoError(t, err)
		got, err := claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, userID, got)
		assert.Equal(t, "user@example.com", claims.Email)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, "", -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)

		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong audience", func(t *testing.T) {
		token, err := NewService(testSecret, "anon").GenerateToken(userID, "", time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewService("another-secret-another-secret-000000", "authenticated").GenerateToken(userID, "", time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("subject is not a user id", func(t *testing.T) {
		claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "service-role",
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
