//go:build unit

package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront-checkout/internal/domain/inventory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRow struct {
	variant  uuid.UUID
	qty      int
	tracking inventory.TrackingKey
	attempt  inventory.TrackingKey
	active   bool
}

// memStore mimics the stored procedures: a reserve either inserts a row, reports a row the
// same key already holds, or reports the remaining stock.
type memStore struct {
	mu          sync.Mutex
	stock       map[uuid.UUID]int
	rows        []*memRow
	reserveErr  error
	releaseErr  error
	updateErr   error
	releaseKeys []inventory.TrackingKey
}

func newMemStore(stock map[uuid.UUID]int) *memStore {
	return &memStore{stock: stock}
}

func (s *memStore) Reserve(_ context.Context, variantID uuid.UUID, qty int, key inventory.TrackingKey, _ time.Duration) (inventory.ReserveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reserveErr != nil {
		return inventory.ReserveResult{}, s.reserveErr
	}
	available := s.stock[variantID]
	for _, r := range s.rows {
		if r.active && r.variant == variantID {
			available -= r.qty
		}
	}
	for _, r := range s.rows {
		if r.active && r.variant == variantID && r.attempt == key {
			return inventory.ReserveResult{Success: true, AvailableStock: available, Replayed: true}, nil
		}
	}
	if available < qty {
		return inventory.ReserveResult{Success: false, AvailableStock: available}, nil
	}
	s.rows = append(s.rows, &memRow{variant: variantID, qty: qty, tracking: key, attempt: key, active: true})
	return inventory.ReserveResult{Success: true, AvailableStock: available - qty}, nil
}

func (s *memStore) Release(_ context.Context, key inventory.TrackingKey) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseKeys = append(s.releaseKeys, key)
	if s.releaseErr != nil {
		return 0, s.releaseErr
	}
	var n int64
	for _, r := range s.rows {
		if r.active && r.tracking == key {
			r.active = false
			n++
		}
	}
	return n, nil
}

func (s *memStore) UpdateTrackingKey(_ context.Context, from, to inventory.TrackingKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	for _, r := range s.rows {
		if r.tracking == from {
			r.tracking = to
		}
	}
	return nil
}

// held sums the active quantities per variant under a tracking key; nil when there are none.
func (s *memStore) held(key inventory.TrackingKey) map[uuid.UUID]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out map[uuid.UUID]int
	for _, r := range s.rows {
		if !r.active || r.tracking != key {
			continue
		}
		if out == nil {
			out = map[uuid.UUID]int{}
		}
		out[r.variant] += r.qty
	}
	return out
}

func TestTrackingKey(t *testing.T) {
	a := inventory.NewTemporaryKey()
	b := inventory.NewTemporaryKey()

	assert.True(t, a.IsTemporary())
	assert.NotEqual(t, a, b)
	assert.False(t, inventory.TrackingKey("cs_test_123").IsTemporary())

	attempt := inventory.AttemptKey("checkout_abc")
	assert.True(t, attempt.IsTemporary())
	assert.Equal(t, attempt, inventory.AttemptKey("checkout_abc"))
	assert.NotEqual(t, attempt, inventory.AttemptKey("checkout_abd"))
}

func TestHold(t *testing.T) {
	ctx := context.Background()
	first, second := uuid.New(), uuid.New()

	t.Run("reserves every line under one key", func(t *testing.T) {
		store := newMemStore(map[uuid.UUID]int{first: 5, second: 5})
		hold := inventory.NewHold(store, inventory.NewTemporaryKey(), 15*time.Minute)

		err := hold.Reserve(ctx, []inventory.Request{
			{VariantID: first, PriceRef: "price_a", Quantity: 2},
			{VariantID: second, PriceRef: "price_b", Quantity: 1},
		})

		require.NoError(t, err)
		assert.Equal(t, 2, hold.Reserved())
		assert.Equal(t, map[uuid.UUID]int{first: 2, second: 1}, store.held(hold.Key()))
	})

	t.Run("insufficient stock on a later line releases earlier ones", func(t *testing.T) {
		store := newMemStore(map[uuid.UUID]int{first: 5, second: 2})
		hold := inventory.NewHold(store, inventory.NewTemporaryKey(), 15*time.Minute)

		err := hold.Reserve(ctx, []inventory.Request{
			{VariantID: first, PriceRef: "price_a", Quantity: 1},
			{VariantID: second, PriceRef: "price_b", Quantity: 3},
		})

		var stockErr *inventory.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "price_b", stockErr.PriceRef)
		assert.Equal(t, 3, stockErr.Requested)
		assert.Equal(t, 2, stockErr.Available)
		assert.Equal(t, "Only 2 left in stock", stockErr.Error())
		assert.Empty(t, store.held(hold.Key()))
		assert.Equal(t, []inventory.TrackingKey{hold.Key()}, store.releaseKeys)
	})

	t.Run("store failure releases and wraps", func(t *testing.T) {
		boom := errors.New("connection reset")
		store := newMemStore(map[uuid.UUID]int{first: 5})
		store.reserveErr = boom
		hold := inventory.NewHold(store, inventory.NewTemporaryKey(), time.Minute)

		err := hold.Reserve(ctx, []inventory.Request{{VariantID: first, PriceRef: "price_a", Quantity: 1}})

		require.ErrorIs(t, err, boom)
		assert.Len(t, store.releaseKeys, 1)
	})

	t.Run("close releases unless kept", func(t *testing.T) {
		store := newMemStore(map[uuid.UUID]int{first: 5})
		hold := inventory.NewHold(store, inventory.NewTemporaryKey(), time.Minute)
		require.NoError(t, hold.Reserve(ctx, []inventory.Request{{VariantID: first, Quantity: 1}}))

		hold.Close(ctx)

		assert.Empty(t, store.held(hold.Key()))
	})

	t.Run("close after keep is a no-op", func(t *testing.T) {
		store := newMemStore(map[uuid.UUID]int{first: 5})
		hold := inventory.NewHold(store, inventory.NewTemporaryKey(), time.Minute)
		require.NoError(t, hold.Reserve(ctx, []inventory.Request{{VariantID: first, Quantity: 1}}))

		hold.Keep()
		hold.Close(ctx)

		assert.Empty(t, store.releaseKeys)
		assert.Equal(t, map[uuid.UUID]int{first: 1}, store.held(hold.Key()))
	})

	t.Run("close with nothing reserved does not hit the store", func(t *testing.T) {
		store := newMemStore(nil)
		hold := inventory.NewHold(store, inventory.NewTemporaryKey(), time.Minute)

		hold.Close(ctx)

		assert.Empty(t, store.releaseKeys)
	})

	t.Run("close still releases on a cancelled context", func(t *testing.T) {
		store := newMemStore(map[uuid.UUID]int{first: 5})
		hold := inventory.NewHold(store, inventory.NewTemporaryKey(), time.Minute)
		require.NoError(t, hold.Reserve(ctx, []inventory.Request{{VariantID: first, Quantity: 1}}))
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		hold.Close(cancelled)

		assert.Empty(t, store.held(hold.Key()))
	})

	t.Run("reconcile renames the key", func(t *testing.T) {
		store := newMemStore(map[uuid.UUID]int{first: 5})
		hold := inventory.NewHold(store, inventory.NewTemporaryKey(), time.Minute)
		require.NoError(t, hold.Reserve(ctx, []inventory.Request{{VariantID: first, Quantity: 2}}))
		hold.Keep()

		require.NoError(t, hold.Reconcile(ctx, "cs_test_1"))

		assert.Equal(t, inventory.TrackingKey("cs_test_1"), hold.Key())
		assert.Equal(t, map[uuid.UUID]int{first: 2}, store.held("cs_test_1"))
	})

	t.Run("failed reconcile keeps the temporary hold", func(t *testing.T) {
		store := newMemStore(map[uuid.UUID]int{first: 5})
		store.updateErr = errors.New("timeout")
		hold := inventory.NewHold(store, inventory.NewTemporaryKey(), time.Minute)
		require.NoError(t, hold.Reserve(ctx, []inventory.Request{{VariantID: first, Quantity: 2}}))
		hold.Keep()
		temp := hold.Key()

		err := hold.Reconcile(ctx, "cs_test_2")

		require.Error(t, err)
		assert.Equal(t, temp, hold.Key())
		assert.Equal(t, map[uuid.UUID]int{first: 2}, store.held(temp))
		assert.Empty(t, store.releaseKeys)
	})

	t.Run("resubmitted attempt replays the hold instead of doubling it", func(t *testing.T) {
		store := newMemStore(map[uuid.UUID]int{first: 3})
		key := inventory.AttemptKey("checkout_same")
		reqs := []inventory.Request{{VariantID: first, PriceRef: "price_a", Quantity: 2}}

		original := inventory.NewHold(store, key, time.Minute)
		require.NoError(t, original.Reserve(ctx, reqs))
		original.Keep()
		require.NoError(t, original.Reconcile(ctx, "cs_test_1"))

		again := inventory.NewHold(store, key, time.Minute)
		require.NoError(t, again.Reserve(ctx, reqs))
		again.Keep()
		require.NoError(t, again.Reconcile(ctx, "cs_test_1"))

		assert.True(t, again.Replayed())
		assert.Equal(t, map[uuid.UUID]int{first: 2}, store.held("cs_test_1"))
	})

	t.Run("replayed hold is never released by the resubmission", func(t *testing.T) {
		store := newMemStore(map[uuid.UUID]int{first: 3})
		key := inventory.AttemptKey("checkout_inflight")
		reqs := []inventory.Request{{VariantID: first, PriceRef: "price_a", Quantity: 1}}

		original := inventory.NewHold(store, key, time.Minute)
		require.NoError(t, original.Reserve(ctx, reqs))

		again := inventory.NewHold(store, key, time.Minute)
		require.NoError(t, again.Reserve(ctx, reqs))
		again.Close(ctx)

		assert.Empty(t, store.releaseKeys)
		assert.Equal(t, map[uuid.UUID]int{first: 1}, store.held(key))
	})
}
