package usecase

import (
	"storefront-checkout/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Identity is the signed-in user behind a request.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Identity{}, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return Identity{}, jwt.ErrInvalidToken
	}

	return Identity{UserID: userID, Email: claims.Email}, nil
}
