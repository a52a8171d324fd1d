package components

import (
	"storefront-checkout/internal/handler"
	"storefront-checkout/internal/handler/api"
	"storefront-checkout/internal/handler/middleware"
	"storefront-checkout/internal/infra/ratelimit"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/usecase/commands"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewCheckoutHandler,
		api.NewWebhookHandler,
		middleware.NewAuthMiddleware,
		NewCheckoutLimiter,
	),
	fx.Invoke(handler.NewRouter),
)

func NewCheckoutHandler(cmds commands.CheckoutCommands, cfg config.Config) *api.CheckoutHandler {
	return api.NewCheckoutHandler(cmds, cfg.Checkout)
}

func NewCheckoutLimiter(cfg config.Config, clk clock.Clock) *ratelimit.SlidingWindow {
	return ratelimit.NewSlidingWindow(cfg.Checkout.RateLimit, cfg.Checkout.RateWindow, clk)
}
