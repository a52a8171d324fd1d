package repository

import (
	"context"

	"storefront-checkout/internal/domain/catalog"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/infra/db"
	"storefront-checkout/internal/pkg/money"
	"storefront-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const findVariantByPriceRef = `
SELECT v.id, v.name, v.sku, v.price::text, v.billing_type, v.stripe_price_id,
       v.is_active, v.track_inventory, v.stock_quantity,
       p.id, p.name, p.description, p.image_url, p.is_active
FROM product_variants v
JOIN products p ON p.id = v.product_id
WHERE v.stripe_price_id = $1
  AND v.is_active
  AND p.is_active`

type CatalogRepository struct {
	dbtx db.DBTX
}

func NewCatalogRepository(dbtx db.DBTX) *CatalogRepository {
	return &CatalogRepository{dbtx: dbtx}
}

// FindVariantByPriceRef only sees variants that are active under an active product.
func (r *CatalogRepository) FindVariantByPriceRef(ctx context.Context, priceRef string) (*catalog.Variant, error) {
	var (
		v variantRow
		p productRow
	)
	err := r.dbtx.QueryRow(ctx, findVariantByPriceRef, priceRef).Scan(
		&v.ID, &v.Name, &v.SKU, &v.Price, &v.BillingType, &v.PriceRef,
		&v.Active, &v.TrackInventory, &v.StockQuantity,
		&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.Active,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("variant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find variant by price reference", err)
	}

	product, err := catalog.NewProduct(p.ID, p.Name,
		pgconv.StringFromPgtype(p.Description), pgconv.StringFromPgtype(p.ImageURL), p.Active)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert product row", err)
	}

	variant, err := v.toDomain(product)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert variant row", err)
	}
	return variant, nil
}

type productRow struct {
	ID          uuid.UUID
	Name        string
	Description pgtype.Text
	ImageURL    pgtype.Text
	Active      bool
}

type variantRow struct {
	ID             uuid.UUID
	Name           pgtype.Text
	SKU            pgtype.Text
	Price          pgtype.Text
	BillingType    string
	PriceRef       string
	Active         bool
	TrackInventory bool
	StockQuantity  int32
}

func (r variantRow) toDomain(product *catalog.Product) (*catalog.Variant, error) {
	price, err := pgconv.DecimalFromText(r.Price)
	if err != nil {
		return nil, err
	}
	billing, err := catalog.NewBillingType(r.BillingType)
	if err != nil {
		return nil, err
	}

	return catalog.NewVariant(product, catalog.VariantParams{
		ID:              r.ID,
		Name:            pgconv.StringFromPgtype(r.Name),
		SKU:             pgconv.StringFromPgtype(r.SKU),
		PriceRef:        r.PriceRef,
		UnitAmountCents: money.CentsFromDecimal(price),
		BillingType:     billing,
		Active:          r.Active,
		TrackInventory:  r.TrackInventory,
		StockQuantity:   int(r.StockQuantity),
	})
}
