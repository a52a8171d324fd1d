package repository

import (
	"context"

	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/infra/db"
	"storefront-checkout/internal/pkg/pgconv"
	"storefront-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const countCompletedOrders = `
SELECT count(*) FROM orders WHERE user_id = $1 AND status = 'completed'`

const upsertCompletedOrder = `
INSERT INTO orders (user_id, stripe_session_id, status, mode, total_cents, currency, customer_email, discount_code)
VALUES ($1, $2, 'completed', $3, $4, $5, $6, $7)
ON CONFLICT (stripe_session_id) DO UPDATE
SET status = 'completed',
    total_cents = EXCLUDED.total_cents,
    customer_email = COALESCE(EXCLUDED.customer_email, orders.customer_email),
    updated_at = now()`

type OrderRepository struct {
	dbtx db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{dbtx: dbtx}
}

func (r *OrderRepository) CountCompletedOrders(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int64
	if err := r.dbtx.QueryRow(ctx, countCompletedOrders, userID).Scan(&n); err != nil {
		return 0, infra.WrapRepoErr("failed to count completed orders", err)
	}
	return int(n), nil
}

func (r *OrderRepository) UpsertCompleted(ctx context.Context, order shared.OrderRecord) error {
	_, err := r.dbtx.Exec(ctx, upsertCompletedOrder,
		pgconv.UUIDPtrToPgtype(order.UserID),
		order.SessionID,
		textOrNull(order.Mode),
		order.TotalCents,
		textOrNull(order.Currency),
		textOrNull(order.CustomerEmail),
		textOrNull(order.DiscountCode),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert completed order", err)
	}
	return nil
}

func textOrNull(s string) pgtype.Text {
	return pgconv.StringPtrToPgtype(&s)
}
