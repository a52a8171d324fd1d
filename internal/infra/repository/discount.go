package repository

import (
	"context"

	"storefront-checkout/internal/domain/discount"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/infra/db"
	"storefront-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findDiscountByCode = `
SELECT id, code, discount_type, value::text, starts_at, expires_at,
       max_redemptions, times_redeemed, first_time_only, min_order_amount::text, is_active
FROM discounts
WHERE upper(code) = upper($1)`

const incrementDiscountRedemptions = `
UPDATE discounts
SET times_redeemed = times_redeemed + 1, updated_at = now()
WHERE upper(code) = upper($1)`

type DiscountRepository struct {
	dbtx db.DBTX
}

func NewDiscountRepository(dbtx db.DBTX) *DiscountRepository {
	return &DiscountRepository{dbtx: dbtx}
}

// FindByCode returns inactive codes too; rejecting them is the evaluator's job.
func (r *DiscountRepository) FindByCode(ctx context.Context, code discount.Code) (*discount.Discount, error) {
	var row discountRow
	err := r.dbtx.QueryRow(ctx, findDiscountByCode, code.String()).Scan(
		&row.ID, &row.Code, &row.Type, &row.Value, &row.StartsAt, &row.ExpiresAt,
		&row.MaxRedemptions, &row.TimesRedeemed, &row.FirstTimeOnly, &row.MinOrderAmount, &row.Active,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("discount not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find discount by code", err)
	}

	d, err := row.toDomain()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert discount row", err)
	}
	return d, nil
}

// IncrementRedemptions is only called once a payment is confirmed. Unknown codes are a no-op.
func (r *DiscountRepository) IncrementRedemptions(ctx context.Context, code discount.Code) error {
	if _, err := r.dbtx.Exec(ctx, incrementDiscountRedemptions, code.String()); err != nil {
		return infra.WrapRepoErr("failed to increment discount redemptions", err)
	}
	return nil
}

type discountRow struct {
	ID             uuid.UUID
	Code           string
	Type           string
	Value          pgtype.Text
	StartsAt       pgtype.Timestamptz
	ExpiresAt      pgtype.Timestamptz
	MaxRedemptions pgtype.Int4
	TimesRedeemed  int32
	FirstTimeOnly  bool
	MinOrderAmount pgtype.Text
	Active         bool
}

func (r discountRow) toDomain() (*discount.Discount, error) {
	value, err := pgconv.DecimalFromText(r.Value)
	if err != nil {
		return nil, err
	}
	minOrder, err := pgconv.DecimalFromText(r.MinOrderAmount)
	if err != nil {
		return nil, err
	}

	return discount.NewDiscount(discount.Params{
		ID:             r.ID,
		Code:           r.Code,
		Type:           r.Type,
		Value:          value,
		StartsAt:       pgconv.TimePtrFromPgtype(r.StartsAt),
		ExpiresAt:      pgconv.TimePtrFromPgtype(r.ExpiresAt),
		MaxRedemptions: pgconv.IntPtrFromPgtype(r.MaxRedemptions),
		TimesRedeemed:  int(r.TimesRedeemed),
		FirstTimeOnly:  r.FirstTimeOnly,
		MinOrderAmount: minOrder,
		Active:         r.Active,
	})
}
