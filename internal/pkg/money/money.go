package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CentsFromDecimal converts currency units to minor units, rounding half away from zero.
func CentsFromDecimal(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

func DecimalFromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

func Format(cents int64, currency string) string {
	amount := DecimalFromCents(cents).StringFixed(2)
	switch strings.ToLower(currency) {
	case "", "usd", "cad", "aud":
		return "$" + amount
	case "eur":
		return "€" + amount
	case "gbp":
		return "£" + amount
	default:
		return amount + " " + strings.ToUpper(currency)
	}
}
