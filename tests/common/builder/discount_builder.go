//go:build unit || e2e

package builder

import (
	"time"

	domdiscount "storefront-checkout/internal/domain/discount"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountBuilder struct {
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

// NewDiscountBuilder defaults to SAVE20: 20% off, active, no restrictions.
func NewDiscountBuilder() *DiscountBuilder {
	return &DiscountBuilder{
		ID:             uuid.New(),
		Code:           "SAVE20",
		Type:           string(domdiscount.TypePercent),
		Value:          decimal.NewFromInt(20),
		MinOrderAmount: decimal.Zero,
		Active:         true,
	}
}

func (b *DiscountBuilder) With(mutate func(*DiscountBuilder)) *DiscountBuilder {
	mutate(b)
	return b
}

func (b *DiscountBuilder) BuildDomain() (*domdiscount.Discount, error) {
	return domdiscount.NewDiscount(domdiscount.Params{
		ID:             b.ID,
		Code:           b.Code,
		Type:           b.Type,
		Value:          b.Value,
		StartsAt:       b.StartsAt,
		ExpiresAt:      b.ExpiresAt,
		MaxRedemptions: b.MaxRedemptions,
		TimesRedeemed:  b.TimesRedeemed,
		FirstTimeOnly:  b.FirstTimeOnly,
		MinOrderAmount: b.MinOrderAmount,
		Active:         b.Active,
	})
}

// MustBuildDomain panics on invalid builder state; for fixtures only.
func (b *DiscountBuilder) MustBuildDomain() *domdiscount.Discount {
	d, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return d
}

func (b *DiscountBuilder) WithCode(code string) *DiscountBuilder {
	b.Code = code
	return b
}

func (b *DiscountBuilder) WithPercent(percent int64) *DiscountBuilder {
	b.Type = string(domdiscount.TypePercent)
	b.Value = decimal.NewFromInt(percent)
	return b
}

func (b *DiscountBuilder) WithFixedAmount(amount string) *DiscountBuilder {
	b.Type = string(domdiscount.TypeFixedAmount)
	b.Value = decimal.RequireFromString(amount)
	return b
}

func (b *DiscountBuilder) WithWindow(startsAt, expiresAt *time.Time) *DiscountBuilder {
	b.StartsAt = startsAt
	b.ExpiresAt = expiresAt
	return b
}

func (b *DiscountBuilder) WithRedemptions(timesRedeemed int, maxRedemptions *int) *DiscountBuilder {
	b.TimesRedeemed = timesRedeemed
	b.MaxRedemptions = maxRedemptions
	return b
}

func (b *DiscountBuilder) WithMinOrderAmount(amount string) *DiscountBuilder {
	b.MinOrderAmount = decimal.RequireFromString(amount)
	return b
}

func (b *DiscountBuilder) AsFirstTimeOnly() *DiscountBuilder {
	b.FirstTimeOnly = true
	return b
}

func (b *DiscountBuilder) AsInactive() *DiscountBuilder {
	b.Active = false
	return b
}
