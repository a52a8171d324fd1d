//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReleaser struct {
	calls atomic.Int32
	last  atomic.Value
	err   error
}

func (c *countingReleaser) ReleaseExpired(_ context.Context, now time.Time) (int64, error) {
	c.calls.Add(1)
	c.last.Store(now)
	return 3, c.err
}

func TestReservationSweeper(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("sweep uses the clock", func(t *testing.T) {
		store := &countingReleaser{}
		sw := commands.NewReservationSweeper(store, clock.NewMockClock(now), time.Minute, nil)

		n, err := sw.SweepOnce(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.Equal(t, now, store.last.Load())
	})

	t.Run("sweep error is wrapped", func(t *testing.T) {
		store := &countingReleaser{err: errors.New("db down")}
		sw := commands.NewReservationSweeper(store, clock.NewMockClock(now), time.Minute, nil)

		_, err := sw.SweepOnce(context.Background())

		require.ErrorContains(t, err, "db down")
	})

	t.Run("run ticks until cancelled", func(t *testing.T) {
		store := &countingReleaser{}
		sw := commands.NewReservationSweeper(store, clock.NewMockClock(now), 5*time.Millisecond, nil)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})

		go func() {
			sw.Run(ctx)
			close(done)
		}()

		assert.Eventually(t, func() bool { return store.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("sweeper did not stop")
		}
	})
}
