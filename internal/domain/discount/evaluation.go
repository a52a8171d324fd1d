package discount

import (
	"fmt"
	"time"

	"storefront-checkout/internal/pkg/money"
)

type Reason string

const (
	ReasonInvalid       Reason = "invalid_code"
	ReasonNotYetActive  Reason = "not_yet_active"
	ReasonExpired       Reason = "expired"
	ReasonUsageLimit    Reason = "usage_limit_reached"
	ReasonFirstTimeOnly Reason = "first_time_only"
	ReasonMinimumNotMet Reason = "minimum_not_met"
)

const defaultRejectCurrency = "usd"

// RejectionError carries a user-facing message; MinimumOrderCents is only set for ReasonMinimumNotMet.
type RejectionError struct {
	Reason            Reason
	MinimumOrderCents int64
	currency          string
}

func (e *RejectionError) Error() string {
	switch e.Reason {
	case ReasonNotYetActive:
		return "This discount code is not yet active"
	case ReasonExpired:
		return "This discount code has expired"
	case ReasonUsageLimit:
		return "This discount code has reached its usage limit"
	case ReasonFirstTimeOnly:
		return "This discount code is only valid for first-time customers"
	case ReasonMinimumNotMet:
		return fmt.Sprintf("Minimum order of %s required for this discount code", money.Format(e.MinimumOrderCents, e.currency))
	default:
		return "Invalid discount code"
	}
}

func reject(reason Reason) *RejectionError {
	return &RejectionError{Reason: reason}
}

// EvaluationContext describes the cart being checked. SubtotalCents covers one-time lines only.
type EvaluationContext struct {
	Now                  time.Time
	SubtotalCents        int64
	Currency             string
	Authenticated        bool
	PriorCompletedOrders int
}

// Evaluate checks d against ec. Rules short-circuit in a fixed order so that a code failing
// several of them always reports the first one. Guests are never checked against order history.
func Evaluate(d *Discount, ec EvaluationContext) error {
	if d == nil || !d.active {
		return reject(ReasonInvalid)
	}
	if d.startsAt != nil && ec.Now.Before(*d.startsAt) {
		return reject(ReasonNotYetActive)
	}
	if d.expiresAt != nil && ec.Now.After(*d.expiresAt) {
		return reject(ReasonExpired)
	}
	if d.IsUsageExhausted() {
		return reject(ReasonUsageLimit)
	}
	if d.firstTimeOnly && ec.Authenticated && ec.PriorCompletedOrders > 0 {
		return reject(ReasonFirstTimeOnly)
	}
	if d.minOrderCents > 0 && ec.SubtotalCents < d.minOrderCents {
		currency := ec.Currency
		if currency == "" {
			currency = defaultRejectCurrency
		}
		return &RejectionError{
			Reason:            ReasonMinimumNotMet,
			MinimumOrderCents: d.minOrderCents,
			currency:          currency,
		}
	}
	return nil
}
