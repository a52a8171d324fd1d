package bootstrap

import (
	"storefront-checkout/internal/infra/metrics"
	"storefront-checkout/internal/usecase/commands"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		metrics.NewRegistry,
		metrics.NewServerMetrics,
		fx.Annotate(
			metrics.NewCheckoutMetrics,
			fx.As(new(commands.MetricsRecorder)),
		),
	),
)
