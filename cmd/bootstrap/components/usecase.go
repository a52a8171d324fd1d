package components

import (
	"storefront-checkout/internal/domain/checkout"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/usecase/commands"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewCheckoutSettings,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCheckoutCommands,
		commands.NewPaymentEventCommands,
		NewReservationSweeper,
	),
)

func NewCheckoutSettings(cfg config.Config) commands.CheckoutSettings {
	return commands.CheckoutSettings{
		Currency:           cfg.Stripe.Currency,
		MinimumChargeCents: cfg.Stripe.MinimumChargeCts,
		ReservationTTL:     cfg.Checkout.ReservationTTL,
		Limits: checkout.Limits{
			MaxQuantity: cfg.Checkout.MaxQuantity,
			MaxItems:    cfg.Checkout.MaxItems,
		},
	}
}

func NewReservationSweeper(
	store commands.ExpiredReservationReleaser,
	clk clock.Clock,
	cfg config.Config,
	metrics commands.MetricsRecorder,
) *commands.ReservationSweeper {
	return commands.NewReservationSweeper(store, clk, cfg.Checkout.SweepInterval, metrics)
}
