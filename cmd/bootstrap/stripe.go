package bootstrap

import (
	"storefront-checkout/internal/handler/api"
	"storefront-checkout/internal/infra/payment"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/usecase/commands"

	"go.uber.org/fx"
)

var StripeModule = fx.Module("stripe",
	fx.Provide(
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(commands.PaymentGateway)),
		),
		fx.Annotate(
			NewWebhookVerifier,
			fx.As(new(api.WebhookVerifier)),
		),
	),
)

func NewPaymentGateway(cfg config.Config) (*payment.StripeGateway, error) {
	return payment.NewStripeGateway(payment.StripeGatewayConfig{
		APIKey:   cfg.Stripe.SecretKey,
		Currency: cfg.Stripe.Currency,
	})
}

func NewWebhookVerifier(cfg config.Config) *payment.WebhookVerifier {
	return payment.NewWebhookVerifier(cfg.Stripe.WebhookSecret)
}
