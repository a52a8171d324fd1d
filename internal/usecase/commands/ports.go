package commands

import (
	"context"
	"time"

	"storefront-checkout/internal/domain/catalog"
	"storefront-checkout/internal/domain/checkout"
	"storefront-checkout/internal/domain/discount"
	"storefront-checkout/internal/domain/inventory"

	"github.com/google/uuid"
)

type CatalogReader interface {
	// FindVariantByPriceRef returns a KindNotFound repository error for unknown references.
	FindVariantByPriceRef(ctx context.Context, priceRef string) (*catalog.Variant, error)
}

type DiscountReader interface {
	FindByCode(ctx context.Context, code discount.Code) (*discount.Discount, error)
}

type OrderHistoryReader interface {
	CountCompletedOrders(ctx context.Context, userID uuid.UUID) (int, error)
}

type CustomerStore interface {
	// FindStripeCustomerID returns "" when the user has no customer yet.
	FindStripeCustomerID(ctx context.Context, userID uuid.UUID) (string, error)
	SaveStripeCustomerID(ctx context.Context, userID uuid.UUID, email, customerID string) error
}

type ReservationStore interface {
	inventory.Store
	Finalize(ctx context.Context, key inventory.TrackingKey) (int64, error)
	ReleaseExpired(ctx context.Context, now time.Time) (int64, error)
}

// Provider-side views. Write-side snapshots keep the usecase independent of the Stripe SDK types.
type ProviderPrice struct {
	ID        string
	Active    bool
	Recurring bool
}

type SessionLine struct {
	// PriceRef is set for provider-managed (recurring) prices; inline data is used otherwise.
	PriceRef        string
	Name            string
	Description     string
	ImageURL        string
	UnitAmountCents int64
	Quantity        int64
}

type SessionRequest struct {
	Mode           checkout.Mode
	Lines          []SessionLine
	SuccessURL     string
	CancelURL      string
	CustomerID     string
	CustomerEmail  string
	Metadata       map[string]string
	IdempotencyKey string
}

type Session struct {
	ID  string
	URL string
}

type PaymentGateway interface {
	GetPrice(ctx context.Context, priceRef string) (*ProviderPrice, error)
	CreateCustomer(ctx context.Context, email string, userID uuid.UUID) (string, error)
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)
}

type MetricsRecorder interface {
	CheckoutSucceeded(mode checkout.Mode, duration time.Duration)
	CheckoutRejected(reason string)
	ReservationsReleased(reason string, count int64)
	ReconcileFailed()
}

type nopMetrics struct{}

func (nopMetrics) CheckoutSucceeded(checkout.Mode, time.Duration) {}
func (nopMetrics) CheckoutRejected(string)                        {}
func (nopMetrics) ReservationsReleased(string, int64)             {}
func (nopMetrics) ReconcileFailed()                               {}

func NewNopMetrics() MetricsRecorder {
	return nopMetrics{}
}
