package discount

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCode         = errors.New("invalid discount code format")
	ErrInvalidType         = errors.New("invalid discount type")
	ErrInvalidPercentValue = errors.New("percentage discount must be greater than 0 and at most 100")
	ErrInvalidFixedValue   = errors.New("fixed discount amount must be positive")
	ErrNegativeMinimum     = errors.New("minimum order amount cannot be negative")
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9_-]{2,32}$`)

// Code is the normalized (trimmed, upper-cased) form used for case-insensitive lookups.
type Code string

func NewCode(raw string) (Code, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !codeRegex.MatchString(code) {
		return Code(""), ErrInvalidCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type Type string

const (
	TypePercent     Type = "percent"
	TypeFixedAmount Type = "fixed_amount"
)

func NewType(s string) (Type, error) {
	t := Type(s)
	switch t {
	case TypePercent, TypeFixedAmount:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}

func (t Type) String() string {
	return string(t)
}

var hundred = decimal.NewFromInt(100)

func validateValue(t Type, value decimal.Decimal) error {
	switch t {
	case TypePercent:
		if !value.IsPositive() || value.GreaterThan(hundred) {
			return ErrInvalidPercentValue
		}
	case TypeFixedAmount:
		if !value.IsPositive() {
			return ErrInvalidFixedValue
		}
	default:
		return ErrInvalidType
	}
	return nil
}
