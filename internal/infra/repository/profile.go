package repository

import (
	"context"

	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/infra/db"
	"storefront-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findStripeCustomerID = `SELECT stripe_customer_id FROM profiles WHERE user_id = $1`

const saveStripeCustomerID = `
INSERT INTO profiles (user_id, email, stripe_customer_id)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE
SET stripe_customer_id = EXCLUDED.stripe_customer_id,
    email = COALESCE(EXCLUDED.email, profiles.email),
    updated_at = now()`

// ProfileRepository maps signed-in users to their payment-provider customer.
type ProfileRepository struct {
	dbtx db.DBTX
}

func NewProfileRepository(dbtx db.DBTX) *ProfileRepository {
	return &ProfileRepository{dbtx: dbtx}
}

func (r *ProfileRepository) FindStripeCustomerID(ctx context.Context, userID uuid.UUID) (string, error) {
	var id pgtype.Text
	err := r.dbtx.QueryRow(ctx, findStripeCustomerID, userID).Scan(&id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return "", nil
		}
		return "", infra.WrapRepoErr("failed to find stripe customer", err)
	}
	return pgconv.StringFromPgtype(id), nil
}

func (r *ProfileRepository) SaveStripeCustomerID(ctx context.Context, userID uuid.UUID, email, customerID string) error {
	if _, err := r.dbtx.Exec(ctx, saveStripeCustomerID, userID, textOrNull(email), customerID); err != nil {
		return infra.WrapRepoErr("failed to save stripe customer", err)
	}
	return nil
}
