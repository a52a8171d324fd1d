//go:build e2e

package reservation_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront-checkout/internal/domain/inventory"
	"storefront-checkout/internal/infra/repository"
	"storefront-checkout/tests/common/builder"
	"storefront-checkout/tests/common/dbtest"
	"storefront-checkout/tests/e2e"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ReservationStoreSuite struct {
	e2e.SharedSuite
	repo *repository.ReservationRepository
}

func (s *ReservationStoreSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.repo = repository.NewReservationRepository(s.DB)
}

func TestReservationStoreSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationStoreSuite))
}

func (s *ReservationStoreSuite) TestReserve() {
	s.Run("Parallel reservations stop exactly at the stock level", func() {
		t := s.T()
		variantID := dbtest.InsertVariant(t, s.DB, builder.NewVariantBuilder().WithStock(7))

		var (
			wg  sync.WaitGroup
			won atomic.Int32
		)
		for range 25 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := s.repo.Reserve(t.Context(), variantID, 1, inventory.NewTemporaryKey(), time.Minute)
				if assert.NoError(t, err) && res.Success {
					won.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(7), won.Load())
		assert.Equal(t, 7, dbtest.ActiveReservedQuantity(t, s.DB, variantID))
	})

	s.Run("Rejection reports the remaining availability", func() {
		t := s.T()
		variantID := dbtest.InsertVariant(t, s.DB, builder.NewVariantBuilder().WithStock(3))

		_, err := s.repo.Reserve(t.Context(), variantID, 2, "pending_a", time.Minute)
		require.NoError(t, err)
		res, err := s.repo.Reserve(t.Context(), variantID, 2, "pending_b", time.Minute)

		require.NoError(t, err)
		assert.Equal(t, inventory.ReserveResult{Success: false, AvailableStock: 1}, res)
	})

	s.Run("Untracked variants are never short", func() {
		t := s.T()
		variantID := dbtest.InsertVariant(t, s.DB, builder.NewVariantBuilder().WithStock(0).AsUntracked())

		res, err := s.repo.Reserve(t.Context(), variantID, 5, "pending_c", time.Minute)

		require.NoError(t, err)
		assert.True(t, res.Success)
	})
}

func (s *ReservationStoreSuite) TestLifecycle() {
	s.Run("Release, reconcile and finalize by tracking key", func() {
		t := s.T()
		variantID := dbtest.InsertVariant(t, s.DB, builder.NewVariantBuilder().WithStock(10))
		ctx := t.Context()

		_, err := s.repo.Reserve(ctx, variantID, 4, "pending_1", time.Minute)
		require.NoError(t, err)
		require.NoError(t, s.repo.UpdateTrackingKey(ctx, "pending_1", "cs_test_1"))

		n, err := s.repo.Release(ctx, "pending_1")
		require.NoError(t, err)
		assert.Zero(t, n, "the hold now lives under the session key")

		n, err = s.repo.Finalize(ctx, "cs_test_1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.Equal(t, 6, dbtest.StockQuantity(t, s.DB, variantID))
		assert.Zero(t, dbtest.ActiveReservedQuantity(t, s.DB, variantID))

		n, err = s.repo.Finalize(ctx, "cs_test_1")
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Equal(t, 6, dbtest.StockQuantity(t, s.DB, variantID))
	})

	s.Run("Expired holds are swept and free the stock", func() {
		t := s.T()
		variantID := dbtest.InsertVariant(t, s.DB, builder.NewVariantBuilder().WithStock(2))
		ctx := t.Context()

		_, err := s.repo.Reserve(ctx, variantID, 2, "pending_2", time.Second)
		require.NoError(t, err)

		n, err := s.repo.ReleaseExpired(ctx, time.Now().Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		res, err := s.repo.Reserve(ctx, variantID, 2, "pending_3", time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Success)
	})
}
