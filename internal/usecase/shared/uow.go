package shared

import (
	"context"

	"storefront-checkout/internal/domain/discount"
	"storefront-checkout/internal/domain/inventory"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Events() EventRepository
	Reservations() ReservationRepository
	Orders() OrderRepository
	Discounts() RedemptionRepository
}

type EventRepository interface {
	// MarkProcessed returns false when the event was already recorded.
	MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error)
}

type ReservationRepository interface {
	Finalize(ctx context.Context, key inventory.TrackingKey) (int64, error)
	Release(ctx context.Context, key inventory.TrackingKey) (int64, error)
}

type OrderRepository interface {
	UpsertCompleted(ctx context.Context, order OrderRecord) error
}

type RedemptionRepository interface {
	IncrementRedemptions(ctx context.Context, code discount.Code) error
}
