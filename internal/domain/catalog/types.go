package catalog

import "errors"

var ErrInvalidBillingType = errors.New("invalid billing type")

type BillingType string

const (
	BillingOneTime   BillingType = "one_time"
	BillingRecurring BillingType = "recurring"
)

func NewBillingType(s string) (BillingType, error) {
	bt := BillingType(s)
	if !bt.IsValid() {
		return "", ErrInvalidBillingType
	}
	return bt, nil
}

func (b BillingType) String() string {
	return string(b)
}

func (b BillingType) IsValid() bool {
	switch b {
	case BillingOneTime, BillingRecurring:
		return true
	default:
		return false
	}
}

func (b BillingType) IsRecurring() bool {
	return b == BillingRecurring
}
