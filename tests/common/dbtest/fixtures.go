//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront-checkout/internal/pkg/money"
	"storefront-checkout/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both the pool and a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InsertVariant writes the builder's product and variant rows.
func InsertVariant(t *testing.T, db DBLike, b *builder.VariantBuilder) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO products (id, name, is_active) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING`,
		b.ProductID, b.ProductName, b.ProductActive)
	require.NoError(t, err)

	price := money.DecimalFromCents(b.UnitAmountCents).StringFixed(2)
	_, err = db.Exec(ctx, `
		INSERT INTO product_variants
		    (id, product_id, name, sku, price, billing_type, stripe_price_id, is_active, track_inventory, stock_quantity)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9, $10)`,
		b.VariantID, b.ProductID, b.VariantName, b.SKU, price, string(b.BillingType), b.PriceRef,
		b.Active, b.TrackInventory, b.StockQuantity)
	require.NoError(t, err)

	return b.VariantID
}

func InsertDiscount(t *testing.T, db DBLike, b *builder.DiscountBuilder) uuid.UUID {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO discounts
		    (id, code, discount_type, value, starts_at, expires_at, max_redemptions, times_redeemed,
		     first_time_only, min_order_amount, is_active)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9, $10::numeric, $11)`,
		b.ID, b.Code, b.Type, b.Value.String(), b.StartsAt, b.ExpiresAt, b.MaxRedemptions, b.TimesRedeemed,
		b.FirstTimeOnly, b.MinOrderAmount.String(), b.Active)
	require.NoError(t, err)

	return b.ID
}

func StockQuantity(t *testing.T, db DBLike, variantID uuid.UUID) int {
	t.Helper()

	var n int32
	err := db.QueryRow(context.Background(),
		"SELECT stock_quantity FROM product_variants WHERE id = $1", variantID).Scan(&n)
	require.NoError(t, err)
	return int(n)
}

// ActiveReservedQuantity sums unexpired holds on a variant.
func ActiveReservedQuantity(t *testing.T, db DBLike, variantID uuid.UUID) int {
	t.Helper()

	var n int64
	err := db.QueryRow(context.Background(), `
		SELECT COALESCE(sum(quantity), 0) FROM inventory_reservations
		WHERE variant_id = $1 AND status = 'active' AND expires_at > now()`, variantID).Scan(&n)
	require.NoError(t, err)
	return int(n)
}

func TimesRedeemed(t *testing.T, db DBLike, code string) int {
	t.Helper()

	var n int32
	err := db.QueryRow(context.Background(),
		"SELECT times_redeemed FROM discounts WHERE code = $1", code).Scan(&n)
	require.NoError(t, err)
	return int(n)
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
