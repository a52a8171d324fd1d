package components

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"storefront-checkout/internal/infra/ratelimit"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/usecase/commands"

	"go.uber.org/fx"
)

// WorkerModule runs the background loops for the lifetime of the app.
var WorkerModule = fx.Module("worker",
	fx.Invoke(startWorkers),
)

func startWorkers(lc fx.Lifecycle, sweeper *commands.ReservationSweeper, limiter *ratelimit.SlidingWindow, cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			wg.Add(2)
			go func() {
				defer wg.Done()
				sweeper.Run(ctx)
			}()
			go func() {
				defer wg.Done()
				pruneLimiter(ctx, limiter, cfg.Checkout.RateWindow)
			}()
			slog.Info("background workers started", "sweep_interval", cfg.Checkout.SweepInterval)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func pruneLimiter(ctx context.Context, limiter *ratelimit.SlidingWindow, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := limiter.Sweep(); n > 0 {
				slog.Debug("pruned idle rate limit keys", "keys", n)
			}
		}
	}
}
