//go:build unit || e2e

package builder

import (
	domcatalog "storefront-checkout/internal/domain/catalog"

	"github.com/google/uuid"
)

type VariantBuilder struct {
	ProductID       uuid.UUID
	ProductName     string
	ProductActive   bool
	VariantID       uuid.UUID
	VariantName     string
	SKU             string
	PriceRef        string
	UnitAmountCents int64
	BillingType     domcatalog.BillingType
	Active          bool
	TrackInventory  bool
	StockQuantity   int
}

// NewVariantBuilder defaults to a tracked one-time variant priced at $25.00 with 10 units in stock.
func NewVariantBuilder() *VariantBuilder {
	return &VariantBuilder{
		ProductID:       uuid.New(),
		ProductName:     "Cold Brew Concentrate",
		ProductActive:   true,
		VariantID:       uuid.New(),
		VariantName:     "1L",
		SKU:             "CBC-1L",
		PriceRef:        "price_" + uuid.NewString()[:8],
		UnitAmountCents: 2500,
		BillingType:     domcatalog.BillingOneTime,
		Active:          true,
		TrackInventory:  true,
		StockQuantity:   10,
	}
}

func (b *VariantBuilder) With(mutate func(*VariantBuilder)) *VariantBuilder {
	mutate(b)
	return b
}

func (b *VariantBuilder) BuildDomain() (*domcatalog.Variant, error) {
	product, err := domcatalog.NewProduct(b.ProductID, b.ProductName, "", "", b.ProductActive)
	if err != nil {
		return nil, err
	}
	return domcatalog.NewVariant(product, domcatalog.VariantParams{
		ID:              b.VariantID,
		Name:            b.VariantName,
		SKU:             b.SKU,
		PriceRef:        b.PriceRef,
		UnitAmountCents: b.UnitAmountCents,
		BillingType:     b.BillingType,
		Active:          b.Active,
		TrackInventory:  b.TrackInventory,
		StockQuantity:   b.StockQuantity,
	})
}

func (b *VariantBuilder) MustBuildDomain() *domcatalog.Variant {
	v, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return v
}

func (b *VariantBuilder) WithPriceRef(ref string) *VariantBuilder {
	b.PriceRef = ref
	return b
}

func (b *VariantBuilder) WithUnitAmount(cents int64) *VariantBuilder {
	b.UnitAmountCents = cents
	return b
}

func (b *VariantBuilder) WithStock(quantity int) *VariantBuilder {
	b.StockQuantity = quantity
	return b
}

func (b *VariantBuilder) AsRecurring() *VariantBuilder {
	b.BillingType = domcatalog.BillingRecurring
	b.TrackInventory = false
	return b
}

func (b *VariantBuilder) AsUntracked() *VariantBuilder {
	b.TrackInventory = false
	return b
}

func (b *VariantBuilder) AsInactive() *VariantBuilder {
	b.Active = false
	return b
}

func (b *VariantBuilder) WithInactiveProduct() *VariantBuilder {
	b.ProductActive = false
	return b
}
