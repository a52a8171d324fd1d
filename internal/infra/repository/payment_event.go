package repository

import (
	"context"

	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/infra/db"
)

const markEventProcessed = `
INSERT INTO stripe_events (event_id, type) VALUES ($1, $2)
ON CONFLICT (event_id) DO NOTHING`

type PaymentEventRepository struct {
	dbtx db.DBTX
}

func NewPaymentEventRepository(dbtx db.DBTX) *PaymentEventRepository {
	return &PaymentEventRepository{dbtx: dbtx}
}

func (r *PaymentEventRepository) MarkProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	tag, err := r.dbtx.Exec(ctx, markEventProcessed, eventID, eventType)
	if err != nil {
		return false, infra.WrapRepoErr("failed to record payment event", err)
	}
	return tag.RowsAffected() == 1, nil
}
