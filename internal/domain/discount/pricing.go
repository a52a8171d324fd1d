package discount

import (
	"storefront-checkout/internal/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Descriptor is an accepted discount, detached from its redemption bookkeeping.
type Descriptor struct {
	ID    uuid.UUID
	Code  Code
	Type  Type
	Value decimal.Decimal
}

// Line is a one-time cart line as seen by pricing.
type Line struct {
	UnitAmountCents int64
	Quantity        int64
}

// Apply returns the discounted unit amount for each line, in input order.
//
// Percent discounts are taken off each unit price. Fixed amounts are split across lines
// by their share of the subtotal and then spread per unit. Every unit is rounded to the
// cent and clamped at floorCents; whatever the floor absorbs is not carried to other lines.
func (d Descriptor) Apply(lines []Line, floorCents int64) []int64 {
	out := make([]int64, len(lines))
	for i, l := range lines {
		out[i] = l.UnitAmountCents
	}

	switch d.Type {
	case TypePercent:
		keep := hundred.Sub(d.Value).Div(hundred)
		for i, l := range lines {
			unit := decimal.NewFromInt(l.UnitAmountCents)
			out[i] = clampToFloor(l.UnitAmountCents, unit.Mul(keep).Round(0).IntPart(), floorCents)
		}
	case TypeFixedAmount:
		var subtotal int64
		for _, l := range lines {
			subtotal += l.UnitAmountCents * l.Quantity
		}
		if subtotal <= 0 {
			return out
		}
		fixed := decimal.NewFromInt(money.CentsFromDecimal(d.Value))
		total := decimal.NewFromInt(subtotal)
		for i, l := range lines {
			if l.Quantity <= 0 {
				continue
			}
			lineTotal := decimal.NewFromInt(l.UnitAmountCents * l.Quantity)
			perUnit := fixed.Mul(lineTotal).Div(total).Div(decimal.NewFromInt(l.Quantity))
			discounted := decimal.NewFromInt(l.UnitAmountCents).Sub(perUnit).Round(0).IntPart()
			out[i] = clampToFloor(l.UnitAmountCents, discounted, floorCents)
		}
	}
	return out
}

// clampToFloor keeps a discounted unit at or above the floor. Units priced below the
// floor to begin with are left as they are.
func clampToFloor(original, discounted, floorCents int64) int64 {
	return max(discounted, min(original, floorCents))
}
