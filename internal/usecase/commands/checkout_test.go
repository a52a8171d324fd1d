//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-checkout/internal/domain/catalog"
	"storefront-checkout/internal/domain/checkout"
	"storefront-checkout/internal/domain/discount"
	"storefront-checkout/internal/domain/inventory"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/tests/common/builder"
	commandsmock "storefront-checkout/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const ttl = 15 * time.Minute

type CheckoutTestSuite struct {
	suite.Suite
	ctx          context.Context
	mockCtrl     *gomock.Controller
	catalog      *commandsmock.MockCatalogReader
	discounts    *commandsmock.MockDiscountReader
	orders       *commandsmock.MockOrderHistoryReader
	customers    *commandsmock.MockCustomerStore
	reservations *commandsmock.MockReservationStore
	gateway      *commandsmock.MockPaymentGateway
	metrics      *commandsmock.MockMetricsRecorder
	clock        *clock.MockClock
	uc           commands.CheckoutCommands
}

func (s *CheckoutTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.catalog = commandsmock.NewMockCatalogReader(s.mockCtrl)
	s.discounts = commandsmock.NewMockDiscountReader(s.mockCtrl)
	s.orders = commandsmock.NewMockOrderHistoryReader(s.mockCtrl)
	s.customers = commandsmock.NewMockCustomerStore(s.mockCtrl)
	s.reservations = commandsmock.NewMockReservationStore(s.mockCtrl)
	s.gateway = commandsmock.NewMockPaymentGateway(s.mockCtrl)
	s.metrics = commandsmock.NewMockMetricsRecorder(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 5, 0, time.UTC))

	// metrics are asserted only where a test says so
	s.metrics.EXPECT().CheckoutSucceeded(gomock.Any(), gomock.Any()).AnyTimes()
	s.metrics.EXPECT().CheckoutRejected(gomock.Any()).AnyTimes()
	s.metrics.EXPECT().ReservationsReleased(gomock.Any(), gomock.Any()).AnyTimes()

	s.uc = commands.NewCheckoutCommands(
		s.catalog, s.discounts, s.orders, s.customers, s.reservations, s.gateway, s.metrics, s.clock,
		commands.CheckoutSettings{
			Currency:           "usd",
			MinimumChargeCents: 50,
			ReservationTTL:     ttl,
			Limits:             checkout.Limits{MaxQuantity: 99, MaxItems: 50},
		},
	)
}

func (s *CheckoutTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutSuite(t *testing.T) {
	suite.Run(t, new(CheckoutTestSuite))
}

func (s *CheckoutTestSuite) expectVariant(v *catalog.Variant) {
	s.catalog.EXPECT().FindVariantByPriceRef(gomock.Any(), v.PriceRef()).Return(v, nil)
}

func guest() checkout.Requester {
	return checkout.Requester{ClientIP: "203.0.113.7", Email: "guest@example.com"}
}

func cart(items ...checkout.CartItem) commands.CheckoutCommand {
	return commands.CheckoutCommand{
		Items:      items,
		SuccessURL: "https://shop.example.com/checkout/success",
		CancelURL:  "https://shop.example.com/cart",
		Requester:  guest(),
	}
}

func (s *CheckoutTestSuite) TestDiscountedCartReservesBeforeSession() {
	v := builder.NewVariantBuilder().WithUnitAmount(2500).MustBuildDomain()
	s.expectVariant(v)
	s.discounts.EXPECT().FindByCode(gomock.Any(), discount.Code("SAVE20")).
		Return(builder.NewDiscountBuilder().MustBuildDomain(), nil)

	var tempKey inventory.TrackingKey
	gomock.InOrder(
		s.reservations.EXPECT().Reserve(gomock.Any(), v.ID(), 2, gomock.Any(), ttl).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ int, key inventory.TrackingKey, _ time.Duration) (inventory.ReserveResult, error) {
				tempKey = key
				return inventory.ReserveResult{Success: true, AvailableStock: 8}, nil
			}),
		s.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req commands.SessionRequest) (*commands.Session, error) {
				s.Equal(checkout.ModePayment, req.Mode)
				s.Require().Len(req.Lines, 1)
				s.Equal(int64(2000), req.Lines[0].UnitAmountCents)
				s.Equal(int64(2), req.Lines[0].Quantity)
				s.Equal(int64(4000), req.Lines[0].UnitAmountCents*req.Lines[0].Quantity)
				s.Equal("guest@example.com", req.CustomerEmail)
				s.Empty(req.CustomerID)
				s.Equal("SAVE20", req.Metadata[commands.MetadataDiscountCode])
				s.Equal(tempKey.String(), req.Metadata[commands.MetadataReservationKey])
				s.Regexp(`^checkout_[0-9a-f]{64}$`, req.IdempotencyKey)
				return &commands.Session{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/cs_test_1"}, nil
			}),
		s.reservations.EXPECT().UpdateTrackingKey(gomock.Any(), gomock.Any(), inventory.TrackingKey("cs_test_1")).
			DoAndReturn(func(_ context.Context, from, _ inventory.TrackingKey) error {
				s.Equal(tempKey, from)
				return nil
			}),
	)

	cmd := cart(checkout.CartItem{PriceRef: v.PriceRef(), Quantity: 2})
	cmd.DiscountCode = "save20"
	res, err := s.uc.Checkout(s.ctx, cmd)

	s.Require().NoError(err)
	s.Equal("cs_test_1", res.SessionID)
	s.Equal("https://checkout.stripe.com/c/cs_test_1", res.URL)
	s.True(tempKey.IsTemporary())
	s.Equal(inventory.AttemptKey(res.IdempotencyKey), tempKey)
}

func (s *CheckoutTestSuite) TestSubscriptionQuantityRejectedBeforeWrites() {
	v := builder.NewVariantBuilder().AsRecurring().MustBuildDomain()
	s.expectVariant(v)

	_, err := s.uc.Checkout(s.ctx, cart(checkout.CartItem{PriceRef: v.PriceRef(), Quantity: 2}))

	s.Require().ErrorIs(err, checkout.ErrSubscriptionQuantity)
	s.True(errs.Is(err, commands.ErrInvalidRequest))
	s.Contains(err.Error(), "quantity must be 1")
}

func (s *CheckoutTestSuite) TestMixedCartRejectedBeforeReservation() {
	oneTime := builder.NewVariantBuilder().MustBuildDomain()
	recurring := builder.NewVariantBuilder().AsRecurring().MustBuildDomain()
	s.expectVariant(oneTime)
	s.expectVariant(recurring)

	_, err := s.uc.Checkout(s.ctx, cart(
		checkout.CartItem{PriceRef: oneTime.PriceRef(), Quantity: 1},
		checkout.CartItem{PriceRef: recurring.PriceRef(), Quantity: 1},
	))

	s.Require().ErrorIs(err, checkout.ErrMixedCart)
}

func (s *CheckoutTestSuite) TestInsufficientStockRollsBackEarlierLines() {
	first := builder.NewVariantBuilder().WithPriceRef("price_a").MustBuildDomain()
	second := builder.NewVariantBuilder().WithPriceRef("price_b").WithStock(2).MustBuildDomain()
	s.expectVariant(first)
	s.expectVariant(second)

	var key inventory.TrackingKey
	gomock.InOrder(
		s.reservations.EXPECT().Reserve(gomock.Any(), first.ID(), 1, gomock.Any(), ttl).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ int, k inventory.TrackingKey, _ time.Duration) (inventory.ReserveResult, error) {
				key = k
				return inventory.ReserveResult{Success: true, AvailableStock: 9}, nil
			}),
		s.reservations.EXPECT().Reserve(gomock.Any(), second.ID(), 3, gomock.Any(), ttl).
			Return(inventory.ReserveResult{Success: false, AvailableStock: 2}, nil),
		s.reservations.EXPECT().Release(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, k inventory.TrackingKey) (int64, error) {
				s.Equal(key, k)
				return 1, nil
			}),
	)

	_, err := s.uc.Checkout(s.ctx, cart(
		checkout.CartItem{PriceRef: "price_a", Quantity: 1},
		checkout.CartItem{PriceRef: "price_b", Quantity: 3},
	))

	var stockErr *inventory.InsufficientStockError
	s.Require().ErrorAs(err, &stockErr)
	s.Equal(2, stockErr.Available)
	s.Equal("price_b", stockErr.PriceRef)
}

func (s *CheckoutTestSuite) TestSessionFailureReleasesReservation() {
	v := builder.NewVariantBuilder().MustBuildDomain()
	s.expectVariant(v)

	gomock.InOrder(
		s.reservations.EXPECT().Reserve(gomock.Any(), v.ID(), 1, gomock.Any(), ttl).
			Return(inventory.ReserveResult{Success: true, AvailableStock: 9}, nil),
		s.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("stripe: api_connection_error")),
		s.reservations.EXPECT().Release(gomock.Any(), gomock.Any()).Return(int64(1), nil),
	)

	_, err := s.uc.Checkout(s.ctx, cart(checkout.CartItem{PriceRef: v.PriceRef(), Quantity: 1}))

	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrPaymentProvider))
}

func (s *CheckoutTestSuite) TestReconcileFailureDoesNotFailCheckout() {
	v := builder.NewVariantBuilder().MustBuildDomain()
	s.expectVariant(v)

	s.reservations.EXPECT().Reserve(gomock.Any(), v.ID(), 1, gomock.Any(), ttl).
		Return(inventory.ReserveResult{Success: true, AvailableStock: 9}, nil)
	s.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
		Return(&commands.Session{ID: "cs_test_2", URL: "https://checkout.stripe.com/c/cs_test_2"}, nil)
	s.reservations.EXPECT().UpdateTrackingKey(gomock.Any(), gomock.Any(), inventory.TrackingKey("cs_test_2")).
		Return(errors.New("connection reset"))
	s.metrics.EXPECT().ReconcileFailed().Times(1)

	res, err := s.uc.Checkout(s.ctx, cart(checkout.CartItem{PriceRef: v.PriceRef(), Quantity: 1}))

	s.Require().NoError(err)
	s.Equal("cs_test_2", res.SessionID)
}

func (s *CheckoutTestSuite) TestExhaustedDiscountRejected() {
	v := builder.NewVariantBuilder().MustBuildDomain()
	s.expectVariant(v)
	limit := 5
	s.discounts.EXPECT().FindByCode(gomock.Any(), discount.Code("SAVE20")).
		Return(builder.NewDiscountBuilder().WithRedemptions(5, &limit).MustBuildDomain(), nil)

	cmd := cart(checkout.CartItem{PriceRef: v.PriceRef(), Quantity: 1})
	cmd.DiscountCode = "SAVE20"
	_, err := s.uc.Checkout(s.ctx, cmd)

	var rejection *discount.RejectionError
	s.Require().ErrorAs(err, &rejection)
	s.Equal(discount.ReasonUsageLimit, rejection.Reason)
}

func (s *CheckoutTestSuite) TestUnknownDiscountRejected() {
	v := builder.NewVariantBuilder().MustBuildDomain()
	s.expectVariant(v)
	s.discounts.EXPECT().FindByCode(gomock.Any(), discount.Code("NOPE")).
		Return(nil, infra.WrapRepoErr("discount not found", pgx.ErrNoRows, infra.KindNotFound))

	cmd := cart(checkout.CartItem{PriceRef: v.PriceRef(), Quantity: 1})
	cmd.DiscountCode = "nope"
	_, err := s.uc.Checkout(s.ctx, cmd)

	var rejection *discount.RejectionError
	s.Require().ErrorAs(err, &rejection)
	s.Equal(discount.ReasonInvalid, rejection.Reason)
}

func (s *CheckoutTestSuite) TestFirstTimeOnlyChecksHistoryForSignedInUsers() {
	v := builder.NewVariantBuilder().MustBuildDomain()
	s.expectVariant(v)
	userID := uuid.New()
	s.discounts.EXPECT().FindByCode(gomock.Any(), gomock.Any()).
		Return(builder.NewDiscountBuilder().AsFirstTimeOnly().MustBuildDomain(), nil)
	s.orders.EXPECT().CountCompletedOrders(gomock.Any(), userID).Return(1, nil)

	cmd := cart(checkout.CartItem{PriceRef: v.PriceRef(), Quantity: 1})
	cmd.DiscountCode = "SAVE20"
	cmd.Requester = checkout.Requester{UserID: &userID, Email: "member@example.com"}
	_, err := s.uc.Checkout(s.ctx, cmd)

	var rejection *discount.RejectionError
	s.Require().ErrorAs(err, &rejection)
	s.Equal(discount.ReasonFirstTimeOnly, rejection.Reason)
}

func (s *CheckoutTestSuite) TestSubscriptionCartIgnoresDiscountAndUsesProviderPrice() {
	v := builder.NewVariantBuilder().AsRecurring().WithPriceRef("price_monthly").MustBuildDomain()
	s.expectVariant(v)
	s.gateway.EXPECT().GetPrice(gomock.Any(), "price_monthly").
		Return(&commands.ProviderPrice{ID: "price_monthly", Active: true, Recurring: true}, nil)
	s.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req commands.SessionRequest) (*commands.Session, error) {
			s.Equal(checkout.ModeSubscription, req.Mode)
			s.Equal([]commands.SessionLine{{PriceRef: "price_monthly", Quantity: 1}}, req.Lines)
			s.NotContains(req.Metadata, commands.MetadataDiscountCode)
			return &commands.Session{ID: "cs_sub", URL: "https://checkout.stripe.com/c/cs_sub"}, nil
		})

	cmd := cart(checkout.CartItem{PriceRef: "price_monthly", Quantity: 1})
	cmd.DiscountCode = "SAVE20"
	res, err := s.uc.Checkout(s.ctx, cmd)

	s.Require().NoError(err)
	s.Equal(checkout.ModeSubscription, res.Mode)
}

func (s *CheckoutTestSuite) TestInactiveProviderPriceRejected() {
	v := builder.NewVariantBuilder().AsRecurring().MustBuildDomain()
	s.expectVariant(v)
	s.gateway.EXPECT().GetPrice(gomock.Any(), v.PriceRef()).
		Return(&commands.ProviderPrice{ID: v.PriceRef(), Active: false, Recurring: true}, nil)

	_, err := s.uc.Checkout(s.ctx, cart(checkout.CartItem{PriceRef: v.PriceRef(), Quantity: 1}))

	s.Require().ErrorIs(err, commands.ErrSubscriptionPriceInvalid)
}

func (s *CheckoutTestSuite) TestUnknownOrInactivePriceRejected() {
	s.catalog.EXPECT().FindVariantByPriceRef(gomock.Any(), "price_missing").
		Return(nil, infra.WrapRepoErr("variant not found", pgx.ErrNoRows, infra.KindNotFound))

	_, err := s.uc.Checkout(s.ctx, cart(checkout.CartItem{PriceRef: "price_missing", Quantity: 1}))
	s.Require().ErrorIs(err, commands.ErrPriceNotFound)

	inactive := builder.NewVariantBuilder().WithInactiveProduct().MustBuildDomain()
	s.expectVariant(inactive)

	_, err = s.uc.Checkout(s.ctx, cart(checkout.CartItem{PriceRef: inactive.PriceRef(), Quantity: 1}))
	s.Require().ErrorIs(err, commands.ErrPriceNotFound)
}

func (s *CheckoutTestSuite) TestLegacyModeMismatch() {
	v := builder.NewVariantBuilder().MustBuildDomain()
	s.expectVariant(v)

	_, err := s.uc.Checkout(s.ctx, commands.CheckoutCommand{
		Legacy:    &commands.LegacyItem{PriceRef: v.PriceRef(), Mode: "subscription"},
		Requester: guest(),
	})

	s.Require().ErrorIs(err, commands.ErrPriceModeMismatch)
}

func (s *CheckoutTestSuite) TestSignedInUserGetsProviderCustomer() {
	v := builder.NewVariantBuilder().AsUntracked().MustBuildDomain()
	s.expectVariant(v)
	userID := uuid.New()
	gomock.InOrder(
		s.customers.EXPECT().FindStripeCustomerID(gomock.Any(), userID).Return("", nil),
		s.gateway.EXPECT().CreateCustomer(gomock.Any(), "member@example.com", userID).Return("cus_123", nil),
		s.customers.EXPECT().SaveStripeCustomerID(gomock.Any(), userID, "member@example.com", "cus_123").Return(nil),
	)
	s.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req commands.SessionRequest) (*commands.Session, error) {
			s.Equal("cus_123", req.CustomerID)
			s.Empty(req.CustomerEmail)
			s.Equal(userID.String(), req.Metadata[commands.MetadataUserID])
			return &commands.Session{ID: "cs_member", URL: "https://checkout.stripe.com/c/cs_member"}, nil
		})

	cmd := cart(checkout.CartItem{PriceRef: v.PriceRef(), Quantity: 1})
	cmd.Requester = checkout.Requester{UserID: &userID, Email: "member@example.com"}
	_, err := s.uc.Checkout(s.ctx, cmd)

	s.Require().NoError(err)
}

func (s *CheckoutTestSuite) TestRepeatedGuestSubmissionsShareIdempotencyKey() {
	v := builder.NewVariantBuilder().AsUntracked().MustBuildDomain()
	s.catalog.EXPECT().FindVariantByPriceRef(gomock.Any(), v.PriceRef()).Return(v, nil).Times(2)

	var keys []string
	s.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req commands.SessionRequest) (*commands.Session, error) {
			keys = append(keys, req.IdempotencyKey)
			return &commands.Session{ID: "cs_dup", URL: "https://checkout.stripe.com/c/cs_dup"}, nil
		}).Times(2)

	cmd := cart(checkout.CartItem{PriceRef: v.PriceRef(), Quantity: 1})
	_, err := s.uc.Checkout(s.ctx, cmd)
	s.Require().NoError(err)
	s.clock.Add(10 * time.Second)
	_, err = s.uc.Checkout(s.ctx, cmd)
	s.Require().NoError(err)

	s.Require().Len(keys, 2)
	s.Equal(keys[0], keys[1])
}

func (s *CheckoutTestSuite) TestResubmittedCartSendsIdenticalSessionRequest() {
	v := builder.NewVariantBuilder().WithStock(3).MustBuildDomain()
	s.catalog.EXPECT().FindVariantByPriceRef(gomock.Any(), v.PriceRef()).Return(v, nil).Times(2)

	var keys []inventory.TrackingKey
	gomock.InOrder(
		s.reservations.EXPECT().Reserve(gomock.Any(), v.ID(), 2, gomock.Any(), ttl).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ int, key inventory.TrackingKey, _ time.Duration) (inventory.ReserveResult, error) {
				keys = append(keys, key)
				return inventory.ReserveResult{Success: true, AvailableStock: 1}, nil
			}),
		s.reservations.EXPECT().Reserve(gomock.Any(), v.ID(), 2, gomock.Any(), ttl).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, _ int, key inventory.TrackingKey, _ time.Duration) (inventory.ReserveResult, error) {
				keys = append(keys, key)
				return inventory.ReserveResult{Success: true, AvailableStock: 1, Replayed: true}, nil
			}),
	)

	var reqs []commands.SessionRequest
	s.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req commands.SessionRequest) (*commands.Session, error) {
			reqs = append(reqs, req)
			return &commands.Session{ID: "cs_dup", URL: "https://checkout.stripe.com/c/cs_dup"}, nil
		}).Times(2)
	s.reservations.EXPECT().UpdateTrackingKey(gomock.Any(), gomock.Any(), inventory.TrackingKey("cs_dup")).
		Return(nil).Times(2)

	cmd := cart(checkout.CartItem{PriceRef: v.PriceRef(), Quantity: 2})
	first, err := s.uc.Checkout(s.ctx, cmd)
	s.Require().NoError(err)
	s.clock.Add(10 * time.Second)
	second, err := s.uc.Checkout(s.ctx, cmd)
	s.Require().NoError(err)

	s.Require().Len(reqs, 2)
	s.Equal(reqs[0], reqs[1])
	s.Equal(keys[0], keys[1])
	s.Equal(inventory.AttemptKey(first.IdempotencyKey).String(), reqs[0].Metadata[commands.MetadataReservationKey])
	s.Equal(first.SessionID, second.SessionID)
}

func (s *CheckoutTestSuite) TestResubmissionFailureLeavesOriginalHold() {
	v := builder.NewVariantBuilder().MustBuildDomain()
	s.expectVariant(v)

	s.reservations.EXPECT().Reserve(gomock.Any(), v.ID(), 1, gomock.Any(), ttl).
		Return(inventory.ReserveResult{Success: true, AvailableStock: 9, Replayed: true}, nil)
	s.gateway.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("stripe: idempotency_error"))
	s.reservations.EXPECT().Release(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.uc.Checkout(s.ctx, cart(checkout.CartItem{PriceRef: v.PriceRef(), Quantity: 1}))

	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrPaymentProvider))
}
