package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const temporaryKeyPrefix = "pending_"

// TrackingKey groups every reservation made for one checkout attempt.
type TrackingKey string

// NewTemporaryKey is used before the payment session, and therefore its identifier, exists.
func NewTemporaryKey() TrackingKey {
	return TrackingKey(temporaryKeyPrefix + uuid.NewString())
}

// AttemptKey is the temporary key of a checkout attempt identified by its idempotency key.
// A resubmitted attempt gets the same key, so the store recognizes holds it already made
// and the payment session parameters stay identical.
func AttemptKey(idempotencyKey string) TrackingKey {
	return TrackingKey(temporaryKeyPrefix + idempotencyKey)
}

func (k TrackingKey) String() string {
	return string(k)
}

func (k TrackingKey) IsTemporary() bool {
	return strings.HasPrefix(string(k), temporaryKeyPrefix)
}

type ReserveResult struct {
	Success        bool
	AvailableStock int
	// Replayed reports that a live or finalized hold already existed under the same key.
	Replayed bool
}

// Store is backed by atomic database procedures; each call is a single transaction.
// Reserve is idempotent per key and variant: repeating it reports Replayed instead of holding twice.
type Store interface {
	Reserve(ctx context.Context, variantID uuid.UUID, quantity int, key TrackingKey, ttl time.Duration) (ReserveResult, error)
	Release(ctx context.Context, key TrackingKey) (int64, error)
	UpdateTrackingKey(ctx context.Context, from, to TrackingKey) error
}

type Request struct {
	VariantID uuid.UUID
	PriceRef  string
	Quantity  int
}

type InsufficientStockError struct {
	PriceRef  string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	if e.Available <= 0 {
		return "This item is out of stock"
	}
	return fmt.Sprintf("Only %d left in stock", e.Available)
}
