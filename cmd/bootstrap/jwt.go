package bootstrap

import (
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/jwt"
	"storefront-checkout/internal/usecase"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		usecase.NewTokenValidator,
	),
)

// Access tokens are issued by the auth provider; this service only verifies them.
func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Audience)
}
