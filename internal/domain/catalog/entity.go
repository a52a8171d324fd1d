package catalog

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyPriceRef    = errors.New("price reference cannot be empty")
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrNegativeStock    = errors.New("stock quantity cannot be negative")
	ErrEmptyProductName = errors.New("product name cannot be empty")
	ErrMissingProduct   = errors.New("variant must belong to a product")
)

type Product struct {
	id          uuid.UUID
	name        string
	description string
	imageURL    string
	active      bool
}

func NewProduct(id uuid.UUID, name, description, imageURL string, active bool) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyProductName
	}
	return &Product{
		id:          id,
		name:        name,
		description: strings.TrimSpace(description),
		imageURL:    strings.TrimSpace(imageURL),
		active:      active,
	}, nil
}

func (p *Product) ID() uuid.UUID       { return p.id }
func (p *Product) Name() string        { return p.name }
func (p *Product) Description() string { return p.description }
func (p *Product) ImageURL() string    { return p.imageURL }
func (p *Product) IsActive() bool      { return p.active }

type VariantParams struct {
	ID              uuid.UUID
	Name            string
	SKU             string
	PriceRef        string
	UnitAmountCents int64
	BillingType     BillingType
	Active          bool
	TrackInventory  bool
	StockQuantity   int
}

// Variant is a purchasable unit of a product, keyed externally by its payment-provider price reference.
type Variant struct {
	id              uuid.UUID
	product         *Product
	name            string
	sku             string
	priceRef        string
	unitAmountCents int64
	billingType     BillingType
	active          bool
	trackInventory  bool
	stockQuantity   int
}

func NewVariant(product *Product, p VariantParams) (*Variant, error) {
	if product == nil {
		return nil, ErrMissingProduct
	}
	priceRef := strings.TrimSpace(p.PriceRef)
	if priceRef == "" {
		return nil, ErrEmptyPriceRef
	}
	if p.UnitAmountCents < 0 {
		return nil, ErrNegativePrice
	}
	if p.StockQuantity < 0 {
		return nil, ErrNegativeStock
	}
	if !p.BillingType.IsValid() {
		return nil, ErrInvalidBillingType
	}

	return &Variant{
		id:              p.ID,
		product:         product,
		name:            strings.TrimSpace(p.Name),
		sku:             strings.TrimSpace(p.SKU),
		priceRef:        priceRef,
		unitAmountCents: p.UnitAmountCents,
		billingType:     p.BillingType,
		active:          p.Active,
		trackInventory:  p.TrackInventory,
		stockQuantity:   p.StockQuantity,
	}, nil
}

// IsPurchasable requires both the variant and its parent product to be active.
func (v *Variant) IsPurchasable() bool {
	return v.active && v.product != nil && v.product.active
}

func (v *Variant) DisplayName() string {
	if v.name == "" || strings.EqualFold(v.name, v.product.name) {
		return v.product.name
	}
	return v.product.name + " - " + v.name
}

func (v *Variant) ID() uuid.UUID            { return v.id }
func (v *Variant) Product() *Product        { return v.product }
func (v *Variant) Name() string             { return v.name }
func (v *Variant) SKU() string              { return v.sku }
func (v *Variant) PriceRef() string         { return v.priceRef }
func (v *Variant) UnitAmountCents() int64   { return v.unitAmountCents }
func (v *Variant) BillingType() BillingType { return v.billingType }
func (v *Variant) IsActive() bool           { return v.active }
func (v *Variant) TracksInventory() bool    { return v.trackInventory }
func (v *Variant) StockQuantity() int       { return v.stockQuantity }
