package discount

import (
	"time"

	"storefront-checkout/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Params struct {
	ID             uuid.UUID
	Code           string
	Type           string
	Value          decimal.Decimal
	StartsAt       *time.Time
	ExpiresAt      *time.Time
	MaxRedemptions *int
	TimesRedeemed  int
	FirstTimeOnly  bool
	MinOrderAmount decimal.Decimal
	Active         bool
}

// Discount is a promotional code. timesRedeemed is read-only here: it only moves when a payment is confirmed.
type Discount struct {
	id             uuid.UUID
	code           Code
	discountType   Type
	value          decimal.Decimal
	startsAt       *time.Time
	expiresAt      *time.Time
	maxRedemptions *int
	timesRedeemed  int
	firstTimeOnly  bool
	minOrderCents  int64
	active         bool
}

func NewDiscount(p Params) (*Discount, error) {
	code, err := NewCode(p.Code)
	if err != nil {
		return nil, err
	}
	t, err := NewType(p.Type)
	if err != nil {
		return nil, err
	}
	if err := validateValue(t, p.Value); err != nil {
		return nil, err
	}
	if p.MinOrderAmount.IsNegative() {
		return nil, ErrNegativeMinimum
	}

	return &Discount{
		id:             p.ID,
		code:           code,
		discountType:   t,
		value:          p.Value,
		startsAt:       p.StartsAt,
		expiresAt:      p.ExpiresAt,
		maxRedemptions: p.MaxRedemptions,
		timesRedeemed:  p.TimesRedeemed,
		firstTimeOnly:  p.FirstTimeOnly,
		minOrderCents:  money.CentsFromDecimal(p.MinOrderAmount),
		active:         p.Active,
	}, nil
}

func (d *Discount) IsUsageExhausted() bool {
	return d.maxRedemptions != nil && d.timesRedeemed >= *d.maxRedemptions
}

// Descriptor returns the normalized form handed to pricing once the code has been accepted.
func (d *Discount) Descriptor() Descriptor {
	return Descriptor{
		ID:    d.id,
		Code:  d.code,
		Type:  d.discountType,
		Value: d.value,
	}
}

func (d *Discount) ID() uuid.UUID          { return d.id }
func (d *Discount) Code() Code             { return d.code }
func (d *Discount) Type() Type             { return d.discountType }
func (d *Discount) Value() decimal.Decimal { return d.value }
func (d *Discount) StartsAt() *time.Time   { return d.startsAt }
func (d *Discount) ExpiresAt() *time.Time  { return d.expiresAt }
func (d *Discount) MaxRedemptions() *int   { return d.maxRedemptions }
func (d *Discount) TimesRedeemed() int     { return d.timesRedeemed }
func (d *Discount) IsFirstTimeOnly() bool  { return d.firstTimeOnly }
func (d *Discount) MinOrderCents() int64   { return d.minOrderCents }
func (d *Discount) IsActive() bool         { return d.active }
