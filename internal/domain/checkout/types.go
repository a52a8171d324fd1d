package checkout

import (
	"errors"
	"sort"
	"strings"

	"storefront-checkout/internal/domain/catalog"

	"github.com/google/uuid"
)

var (
	ErrInvalidMode          = errors.New("mode must be payment or subscription")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrTooManyItems         = errors.New("too many items in cart")
	ErrEmptyPriceRef        = errors.New("every item needs a price id")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrMixedCart            = errors.New("cannot mix subscription and one-time items in the same checkout")
	ErrSubscriptionQuantity = errors.New("subscription quantity must be 1")
)

// Mode is the billing mode of a checkout session. One session carries exactly one mode.
type Mode string

const (
	ModePayment      Mode = "payment"
	ModeSubscription Mode = "subscription"
)

func NewMode(s string) (Mode, error) {
	m := Mode(s)
	switch m {
	case ModePayment, ModeSubscription:
		return m, nil
	default:
		return "", ErrInvalidMode
	}
}

func (m Mode) String() string {
	return string(m)
}

// BillingType is the catalog billing type that sessions of this mode accept.
func (m Mode) BillingType() catalog.BillingType {
	if m == ModeSubscription {
		return catalog.BillingRecurring
	}
	return catalog.BillingOneTime
}

type CartItem struct {
	PriceRef string `json:"priceId"`
	Quantity int    `json:"quantity"`
}

type Limits struct {
	MaxQuantity int
	MaxItems    int
}

// NormalizeItems validates raw cart items and returns them merged by price reference and
// sorted, so that equal carts compare equal regardless of the order the client sent them in.
func NormalizeItems(items []CartItem, limits Limits) ([]CartItem, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if limits.MaxItems > 0 && len(items) > limits.MaxItems {
		return nil, ErrTooManyItems
	}

	merged := make(map[string]int, len(items))
	for _, it := range items {
		ref := strings.TrimSpace(it.PriceRef)
		if ref == "" {
			return nil, ErrEmptyPriceRef
		}
		if it.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		merged[ref] += it.Quantity
	}

	out := make([]CartItem, 0, len(merged))
	for ref, qty := range merged {
		if limits.MaxQuantity > 0 && qty > limits.MaxQuantity {
			return nil, ErrInvalidQuantity
		}
		out = append(out, CartItem{PriceRef: ref, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PriceRef < out[j].PriceRef })
	return out, nil
}

// ResolvedItem is a cart item joined with its catalog variant.
type ResolvedItem struct {
	Variant  *catalog.Variant
	Quantity int
}

func (r ResolvedItem) LineTotalCents() int64 {
	return r.Variant.UnitAmountCents() * int64(r.Quantity)
}

// DetermineMode picks the session mode for a resolved cart. Mixed carts are rejected because
// a payment session cannot bill one-time and recurring prices together.
func DetermineMode(items []ResolvedItem) (Mode, error) {
	var recurring, oneTime bool
	for _, it := range items {
		if it.Variant.BillingType().IsRecurring() {
			recurring = true
		} else {
			oneTime = true
		}
	}
	if recurring && oneTime {
		return "", ErrMixedCart
	}
	if !recurring {
		return ModePayment, nil
	}
	for _, it := range items {
		if it.Quantity != 1 {
			return "", ErrSubscriptionQuantity
		}
	}
	return ModeSubscription, nil
}

// OneTimeSubtotalCents sums one-time lines only; recurring prices are never discounted.
func OneTimeSubtotalCents(items []ResolvedItem) int64 {
	var total int64
	for _, it := range items {
		if !it.Variant.BillingType().IsRecurring() {
			total += it.LineTotalCents()
		}
	}
	return total
}

// Requester identifies who is checking out. Guests have no UserID.
type Requester struct {
	UserID   *uuid.UUID
	Email    string
	ClientIP string
}

func (r Requester) IsAuthenticated() bool {
	return r.UserID != nil
}

// Identity keys rate limiting and idempotency: the user for signed-in requests, the network
// address otherwise.
func (r Requester) Identity() string {
	if r.UserID != nil {
		return "user:" + r.UserID.String()
	}
	return "ip:" + r.ClientIP
}
