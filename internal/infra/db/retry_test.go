//go:build unit

package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-checkout/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"wrapped deadlock", errs.Wrap(&pgconn.PgError{Code: "40P01"}, "reserve"), true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryableError(tt.err))
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	base := 10 * time.Millisecond
	for attempt := 0; attempt < 3; attempt++ {
		got := CalculateBackoff(attempt, base)
		floor := time.Duration(1<<attempt) * base
		assert.GreaterOrEqual(t, got, floor)
		assert.Less(t, got, floor+floor/5+time.Nanosecond)
	}
}

func TestWithRetry(t *testing.T) {
	t.Run("retries a deadlock then succeeds", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), "test", func(context.Context) error {
			calls++
			if calls == 1 {
				return &pgconn.PgError{Code: "40P01"}
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("does not retry other errors", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), "test", func(context.Context) error {
			calls++
			return errors.New("syntax error")
		})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := WithRetry(ctx, "test", func(context.Context) error {
			return &pgconn.PgError{Code: "40001"}
		})

		require.ErrorIs(t, err, context.Canceled)
	})
}
