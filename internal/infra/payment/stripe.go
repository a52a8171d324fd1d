package payment

import (
	"context"
	"strings"

	"storefront-checkout/internal/domain/checkout"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

type sessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type priceAPI interface {
	Get(id string, params *stripe.PriceParams) (*stripe.Price, error)
}

type customerAPI interface {
	New(params *stripe.CustomerParams) (*stripe.Customer, error)
}

// Clients overrides the SDK clients; tests use it to avoid the network.
type Clients struct {
	Sessions  sessionAPI
	Prices    priceAPI
	Customers customerAPI
}

type StripeGatewayConfig struct {
	APIKey   string
	Currency string
	Backends *stripe.Backends
	Clients  *Clients
}

// StripeGateway creates hosted checkout sessions. Amounts are minor units throughout.
type StripeGateway struct {
	api      Clients
	currency string
}

func NewStripeGateway(cfg StripeGatewayConfig) (*StripeGateway, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" && cfg.Clients == nil {
		return nil, errs.New("stripe: api key is required")
	}

	var clients Clients
	if cfg.Clients != nil {
		clients = *cfg.Clients
	} else {
		sc := client.New(apiKey, cfg.Backends)
		clients = Clients{
			Sessions:  sc.CheckoutSessions,
			Prices:    sc.Prices,
			Customers: sc.Customers,
		}
	}
	if clients.Sessions == nil || clients.Prices == nil || clients.Customers == nil {
		return nil, errs.New("stripe: incomplete client configuration")
	}

	currency := strings.ToLower(strings.TrimSpace(cfg.Currency))
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	return &StripeGateway{api: clients, currency: currency}, nil
}

func (g *StripeGateway) GetPrice(ctx context.Context, priceRef string) (*commands.ProviderPrice, error) {
	params := &stripe.PriceParams{}
	params.Context = ctx

	price, err := g.api.Prices.Get(priceRef, params)
	if err != nil {
		return nil, upstream(errs.Wrapf(err, "stripe: get price %s", priceRef))
	}
	return &commands.ProviderPrice{
		ID:        price.ID,
		Active:    price.Active,
		Recurring: price.Recurring != nil || price.Type == stripe.PriceTypeRecurring,
	}, nil
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, email string, userID uuid.UUID) (string, error) {
	params := &stripe.CustomerParams{
		Metadata: map[string]string{commands.MetadataUserID: userID.String()},
	}
	params.Context = ctx
	if email != "" {
		params.Email = stripe.String(email)
	}
	params.SetIdempotencyKey("customer_" + userID.String())

	customer, err := g.api.Customers.New(params)
	if err != nil {
		return "", upstream(errs.Wrap(err, "stripe: create customer"))
	}
	return customer.ID, nil
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req commands.SessionRequest) (*commands.Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(sessionMode(req.Mode))),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		Metadata:   copyMetadata(req.Metadata),
	}
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	switch {
	case req.CustomerID != "":
		params.Customer = stripe.String(req.CustomerID)
	case req.CustomerEmail != "":
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	if req.Mode == checkout.ModeSubscription {
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: copyMetadata(req.Metadata),
		}
	} else {
		params.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: copyMetadata(req.Metadata),
		}
	}

	params.LineItems = make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Lines))
	for _, line := range req.Lines {
		params.LineItems = append(params.LineItems, g.lineItem(line))
	}

	session, err := g.api.Sessions.New(params)
	if err != nil {
		return nil, upstream(errs.Wrap(err, "stripe: create checkout session"))
	}
	return &commands.Session{ID: session.ID, URL: session.URL}, nil
}

func (g *StripeGateway) lineItem(line commands.SessionLine) *stripe.CheckoutSessionLineItemParams {
	item := &stripe.CheckoutSessionLineItemParams{Quantity: stripe.Int64(max(line.Quantity, 1))}
	if line.PriceRef != "" {
		item.Price = stripe.String(line.PriceRef)
		return item
	}

	product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(line.Name),
	}
	if line.Description != "" {
		product.Description = stripe.String(line.Description)
	}
	if line.ImageURL != "" {
		product.Images = stripe.StringSlice([]string{line.ImageURL})
	}
	item.PriceData = &stripe.CheckoutSessionLineItemPriceDataParams{
		Currency:    stripe.String(g.currency),
		UnitAmount:  stripe.Int64(line.UnitAmountCents),
		ProductData: product,
	}
	return item
}

func sessionMode(m checkout.Mode) stripe.CheckoutSessionMode {
	if m == checkout.ModeSubscription {
		return stripe.CheckoutSessionModeSubscription
	}
	return stripe.CheckoutSessionModePayment
}

func copyMetadata(md map[string]string) map[string]string {
	if len(md) == 0 {
		return nil
	}
	out := make(map[string]string, len(md))
	for k, v := range md {
		out[k] = v
	}
	return out
}

func upstream(err error) error {
	return errs.Mark(err, errs.ErrUpstreamFailed)
}
