package commands

import (
	"context"
	"log/slog"
	"time"

	"storefront-checkout/internal/domain/catalog"
	"storefront-checkout/internal/domain/checkout"
	"storefront-checkout/internal/domain/discount"
	"storefront-checkout/internal/domain/inventory"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/errs"
)

var (
	ErrInvalidRequest           = errs.New("invalid checkout request")
	ErrPriceNotFound            = errs.New("price not found or inactive")
	ErrPriceModeMismatch        = errs.New("price does not match the requested checkout mode")
	ErrSubscriptionPriceInvalid = errs.New("subscription price is not available")
	ErrPaymentProvider          = errs.New("payment provider request failed")
	ErrCheckoutFailed           = errs.New("checkout failed")
)

// Metadata keys written on every session and read back by the payment webhook.
const (
	MetadataUserID         = "user_id"
	MetadataDiscountCode   = "discount_code"
	MetadataReservationKey = "reservation_key"
	MetadataMode           = "mode"
)

type LegacyItem struct {
	PriceRef string
	Mode     string
}

// CheckoutCommand is either a legacy single price (Legacy set) or a cart (Items set).
type CheckoutCommand struct {
	Legacy       *LegacyItem
	Items        []checkout.CartItem
	DiscountCode string
	SuccessURL   string
	CancelURL    string
	Requester    checkout.Requester
}

type CheckoutResult struct {
	URL            string
	SessionID      string
	IdempotencyKey string
	Mode           checkout.Mode
}

type CheckoutSettings struct {
	Currency           string
	MinimumChargeCents int64
	ReservationTTL     time.Duration
	Limits             checkout.Limits
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, cmd CheckoutCommand) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	catalog      CatalogReader
	discounts    DiscountReader
	orders       OrderHistoryReader
	customers    CustomerStore
	reservations inventory.Store
	gateway      PaymentGateway
	metrics      MetricsRecorder
	clock        clock.Clock
	settings     CheckoutSettings
}

func NewCheckoutCommands(
	catalog CatalogReader,
	discounts DiscountReader,
	orders OrderHistoryReader,
	customers CustomerStore,
	reservations inventory.Store,
	gateway PaymentGateway,
	metrics MetricsRecorder,
	clk clock.Clock,
	settings CheckoutSettings,
) CheckoutCommands {
	if metrics == nil {
		metrics = NewNopMetrics()
	}
	return &checkoutUseCaseImpl{
		catalog:      catalog,
		discounts:    discounts,
		orders:       orders,
		customers:    customers,
		reservations: reservations,
		gateway:      gateway,
		metrics:      metrics,
		clock:        clk,
		settings:     settings,
	}
}

// checkoutPlan is the validated, priced state of a request right before inventory is touched.
type checkoutPlan struct {
	mode     checkout.Mode
	items    []checkout.CartItem
	resolved []checkout.ResolvedItem
	discount *discount.Descriptor
}

func (uc *checkoutUseCaseImpl) Checkout(ctx context.Context, cmd CheckoutCommand) (*CheckoutResult, error) {
	started := uc.clock.Now()

	plan, err := uc.plan(ctx, cmd)
	if err != nil {
		uc.metrics.CheckoutRejected(rejectionLabel(err))
		return nil, err
	}

	customerID, err := uc.customerFor(ctx, cmd.Requester)
	if err != nil {
		uc.metrics.CheckoutRejected("provider_error")
		return nil, err
	}

	code := ""
	if plan.discount != nil {
		code = plan.discount.Code.String()
	}
	idempotencyKey := checkout.DeriveIdempotencyKey(cmd.Requester.Identity(), plan.items, code, uc.clock.Now())

	// the attempt key is derived, not random, so a resubmission sends identical session parameters
	hold := inventory.NewHold(uc.reservations, inventory.AttemptKey(idempotencyKey), uc.settings.ReservationTTL)
	defer hold.Close(ctx)

	if err := hold.Reserve(ctx, reservationRequests(plan.resolved)); err != nil {
		var stockErr *inventory.InsufficientStockError
		if errs.As(err, &stockErr) {
			uc.metrics.CheckoutRejected("insufficient_stock")
			return nil, err
		}
		uc.metrics.CheckoutRejected("reservation_error")
		return nil, errs.Mark(errs.Wrap(err, "reserve inventory"), ErrCheckoutFailed)
	}

	req := SessionRequest{
		Mode:           plan.mode,
		Lines:          uc.sessionLines(plan),
		SuccessURL:     cmd.SuccessURL,
		CancelURL:      cmd.CancelURL,
		CustomerID:     customerID,
		Metadata:       sessionMetadata(cmd.Requester, plan, hold.Key()),
		IdempotencyKey: idempotencyKey,
	}
	if customerID == "" {
		req.CustomerEmail = cmd.Requester.Email
	}

	session, err := uc.gateway.CreateCheckoutSession(ctx, req)
	if err != nil {
		slog.Error("checkout session creation failed",
			"idempotency_key", idempotencyKey,
			"tracking_key", hold.Key().String(),
			"error", err)
		uc.metrics.CheckoutRejected("provider_error")
		if hold.Reserved() > 0 && !hold.Replayed() {
			uc.metrics.ReservationsReleased("session_failed", int64(hold.Reserved()))
		}
		return nil, errs.Mark(errs.Wrap(err, "create checkout session"), ErrPaymentProvider)
	}
	hold.Keep()

	if err := hold.Reconcile(ctx, session.ID); err != nil {
		uc.metrics.ReconcileFailed()
	}

	uc.metrics.CheckoutSucceeded(plan.mode, uc.clock.Now().Sub(started))
	return &CheckoutResult{
		URL:            session.URL,
		SessionID:      session.ID,
		IdempotencyKey: idempotencyKey,
		Mode:           plan.mode,
	}, nil
}

// plan runs every check that has no side effects: shape, catalog, billing mode, provider
// prices for subscriptions and the discount code.
func (uc *checkoutUseCaseImpl) plan(ctx context.Context, cmd CheckoutCommand) (*checkoutPlan, error) {
	if cmd.Legacy != nil {
		return uc.planLegacy(ctx, *cmd.Legacy)
	}

	items, err := checkout.NormalizeItems(cmd.Items, uc.settings.Limits)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRequest)
	}
	resolved, err := uc.resolve(ctx, items)
	if err != nil {
		return nil, err
	}
	mode, err := checkout.DetermineMode(resolved)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRequest)
	}
	plan := &checkoutPlan{mode: mode, items: items, resolved: resolved}

	if mode == checkout.ModeSubscription {
		if err := uc.verifyProviderPrices(ctx, resolved); err != nil {
			return nil, err
		}
		// provider-side pricing governs subscriptions, so any code is ignored
		return plan, nil
	}

	if cmd.DiscountCode != "" {
		d, err := uc.evaluateDiscount(ctx, cmd.DiscountCode, resolved, cmd.Requester)
		if err != nil {
			return nil, err
		}
		plan.discount = d
	}
	return plan, nil
}

func (uc *checkoutUseCaseImpl) planLegacy(ctx context.Context, legacy LegacyItem) (*checkoutPlan, error) {
	mode, err := checkout.NewMode(legacy.Mode)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRequest)
	}
	items, err := checkout.NormalizeItems([]checkout.CartItem{{PriceRef: legacy.PriceRef, Quantity: 1}}, uc.settings.Limits)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRequest)
	}
	resolved, err := uc.resolve(ctx, items)
	if err != nil {
		return nil, err
	}
	if resolved[0].Variant.BillingType() != mode.BillingType() {
		return nil, errs.Wrapf(ErrPriceModeMismatch, "price %s is %s", legacy.PriceRef, resolved[0].Variant.BillingType())
	}
	if mode == checkout.ModeSubscription {
		if err := uc.verifyProviderPrices(ctx, resolved); err != nil {
			return nil, err
		}
	}
	return &checkoutPlan{mode: mode, items: items, resolved: resolved}, nil
}

func (uc *checkoutUseCaseImpl) resolve(ctx context.Context, items []checkout.CartItem) ([]checkout.ResolvedItem, error) {
	resolved := make([]checkout.ResolvedItem, 0, len(items))
	for _, it := range items {
		v, err := uc.catalog.FindVariantByPriceRef(ctx, it.PriceRef)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Wrapf(ErrPriceNotFound, "price %s", it.PriceRef)
			}
			return nil, errs.Mark(errs.Wrapf(err, "resolve price %s", it.PriceRef), ErrCheckoutFailed)
		}
		if !v.IsPurchasable() {
			return nil, errs.Wrapf(ErrPriceNotFound, "price %s", it.PriceRef)
		}
		resolved = append(resolved, checkout.ResolvedItem{Variant: v, Quantity: it.Quantity})
	}
	return resolved, nil
}

// verifyProviderPrices checks recurring prices against the provider, which owns them.
func (uc *checkoutUseCaseImpl) verifyProviderPrices(ctx context.Context, resolved []checkout.ResolvedItem) error {
	for _, it := range resolved {
		ref := it.Variant.PriceRef()
		price, err := uc.gateway.GetPrice(ctx, ref)
		if err != nil {
			slog.Error("provider price lookup failed", "price_id", ref, "error", err)
			return errs.Mark(errs.Wrapf(err, "get price %s", ref), ErrPaymentProvider)
		}
		if price == nil || !price.Active || !price.Recurring {
			return errs.Wrapf(ErrSubscriptionPriceInvalid, "price %s", ref)
		}
	}
	return nil
}

func (uc *checkoutUseCaseImpl) evaluateDiscount(
	ctx context.Context,
	rawCode string,
	resolved []checkout.ResolvedItem,
	requester checkout.Requester,
) (*discount.Descriptor, error) {
	ec := discount.EvaluationContext{
		Now:           uc.clock.Now(),
		SubtotalCents: checkout.OneTimeSubtotalCents(resolved),
		Currency:      uc.settings.Currency,
		Authenticated: requester.IsAuthenticated(),
	}

	code, err := discount.NewCode(rawCode)
	if err != nil {
		return nil, discount.Evaluate(nil, ec)
	}
	d, err := uc.discounts.FindByCode(ctx, code)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(errs.Wrap(err, "find discount"), ErrCheckoutFailed)
		}
	}

	if d != nil && d.IsFirstTimeOnly() && requester.IsAuthenticated() {
		n, err := uc.orders.CountCompletedOrders(ctx, *requester.UserID)
		if err != nil {
			return nil, errs.Mark(errs.Wrap(err, "count completed orders"), ErrCheckoutFailed)
		}
		ec.PriorCompletedOrders = n
	}

	if err := discount.Evaluate(d, ec); err != nil {
		return nil, err
	}
	desc := d.Descriptor()
	return &desc, nil
}

// customerFor returns the provider customer of a signed-in requester, creating it on first
// checkout. Guests get "" and are identified by email on the session.
func (uc *checkoutUseCaseImpl) customerFor(ctx context.Context, requester checkout.Requester) (string, error) {
	if !requester.IsAuthenticated() {
		return "", nil
	}
	userID := *requester.UserID

	customerID, err := uc.customers.FindStripeCustomerID(ctx, userID)
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "find customer"), ErrCheckoutFailed)
	}
	if customerID != "" {
		return customerID, nil
	}

	customerID, err = uc.gateway.CreateCustomer(ctx, requester.Email, userID)
	if err != nil {
		slog.Error("provider customer creation failed", "user_id", userID.String(), "error", err)
		return "", errs.Mark(errs.Wrap(err, "create customer"), ErrPaymentProvider)
	}
	if err := uc.customers.SaveStripeCustomerID(ctx, userID, requester.Email, customerID); err != nil {
		// non-fatal: this session is still billed to customerID
		slog.Warn("failed to store provider customer", "user_id", userID.String(), "customer_id", customerID, "error", err)
	}
	return customerID, nil
}

func (uc *checkoutUseCaseImpl) sessionLines(plan *checkoutPlan) []SessionLine {
	lines := make([]SessionLine, len(plan.resolved))
	if plan.mode == checkout.ModeSubscription {
		for i, it := range plan.resolved {
			lines[i] = SessionLine{PriceRef: it.Variant.PriceRef(), Quantity: int64(it.Quantity)}
		}
		return lines
	}

	units := make([]discount.Line, len(plan.resolved))
	for i, it := range plan.resolved {
		units[i] = discount.Line{UnitAmountCents: it.Variant.UnitAmountCents(), Quantity: int64(it.Quantity)}
	}
	amounts := make([]int64, len(units))
	if plan.discount != nil {
		amounts = plan.discount.Apply(units, uc.settings.MinimumChargeCents)
	} else {
		for i, u := range units {
			amounts[i] = u.UnitAmountCents
		}
	}

	for i, it := range plan.resolved {
		product := it.Variant.Product()
		lines[i] = SessionLine{
			Name:            it.Variant.DisplayName(),
			Description:     product.Description(),
			ImageURL:        product.ImageURL(),
			UnitAmountCents: amounts[i],
			Quantity:        int64(it.Quantity),
		}
	}
	return lines
}

func reservationRequests(resolved []checkout.ResolvedItem) []inventory.Request {
	var reqs []inventory.Request
	for _, it := range resolved {
		if it.Variant.BillingType() != catalog.BillingOneTime || !it.Variant.TracksInventory() {
			continue
		}
		reqs = append(reqs, inventory.Request{
			VariantID: it.Variant.ID(),
			PriceRef:  it.Variant.PriceRef(),
			Quantity:  it.Quantity,
		})
	}
	return reqs
}

func sessionMetadata(requester checkout.Requester, plan *checkoutPlan, key inventory.TrackingKey) map[string]string {
	md := map[string]string{
		MetadataMode:           plan.mode.String(),
		MetadataReservationKey: key.String(),
	}
	if requester.UserID != nil {
		md[MetadataUserID] = requester.UserID.String()
	}
	if plan.discount != nil {
		md[MetadataDiscountCode] = plan.discount.Code.String()
	}
	return md
}

func rejectionLabel(err error) string {
	var rejection *discount.RejectionError
	switch {
	case errs.As(err, &rejection):
		return "discount_" + string(rejection.Reason)
	case errs.Is(err, ErrPriceNotFound):
		return "price_not_found"
	case errs.Is(err, ErrPriceModeMismatch):
		return "price_mode_mismatch"
	case errs.Is(err, ErrSubscriptionPriceInvalid):
		return "subscription_price_invalid"
	case errs.Is(err, ErrPaymentProvider):
		return "provider_error"
	case errs.Is(err, ErrInvalidRequest):
		return "invalid_request"
	default:
		return "error"
	}
}
