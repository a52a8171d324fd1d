package commands

import (
	"context"
	"log/slog"
	"time"

	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/errs"
)

type ExpiredReservationReleaser interface {
	ReleaseExpired(ctx context.Context, now time.Time) (int64, error)
}

// ReservationSweeper returns stock held by abandoned checkouts once their TTL has passed.
type ReservationSweeper struct {
	store    ExpiredReservationReleaser
	clock    clock.Clock
	interval time.Duration
	metrics  MetricsRecorder
}

func NewReservationSweeper(store ExpiredReservationReleaser, clk clock.Clock, interval time.Duration, metrics MetricsRecorder) *ReservationSweeper {
	if metrics == nil {
		metrics = NewNopMetrics()
	}
	return &ReservationSweeper{
		store:    store,
		clock:    clk,
		interval: interval,
		metrics:  metrics,
	}
}

func (s *ReservationSweeper) SweepOnce(ctx context.Context) (int64, error) {
	n, err := s.store.ReleaseExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, errs.Wrap(err, "release expired reservations")
	}
	if n > 0 {
		s.metrics.ReservationsReleased("expired", n)
		slog.Info("released expired reservations", "rows", n)
	}
	return n, nil
}

// Run sweeps every interval until ctx is done. Failures are logged and retried on the next tick.
func (s *ReservationSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
				slog.Error("reservation sweep failed", "error", err)
			}
		}
	}
}
