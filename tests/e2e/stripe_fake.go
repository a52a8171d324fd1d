//go:build e2e

package e2e

import (
	"fmt"
	"sync"
	"time"

	"storefront-checkout/internal/infra/payment"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/form"
	"github.com/stripe/stripe-go/v78/webhook"
)

// FakeStripe stands in for the Stripe API behind the real gateway adapter. Like Stripe, it
// replays a session for a repeated idempotency key and rejects the key when the encoded
// request body differs.
type FakeStripe struct {
	mu        sync.Mutex
	prices    map[string]*stripe.Price
	sessions  []*stripe.CheckoutSessionParams
	replays   map[string]idempotentSession
	customers int
	fail      error
}

type idempotentSession struct {
	body    string
	session *stripe.CheckoutSession
}

func NewFakeStripe() *FakeStripe {
	return &FakeStripe{prices: map[string]*stripe.Price{}, replays: map[string]idempotentSession{}}
}

func (f *FakeStripe) Clients() *payment.Clients {
	return &payment.Clients{
		Sessions:  fakeSessionAPI{f},
		Prices:    fakePriceAPI{f},
		Customers: fakeCustomerAPI{f},
	}
}

func (f *FakeStripe) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices = map[string]*stripe.Price{}
	f.sessions = nil
	f.replays = map[string]idempotentSession{}
	f.customers = 0
	f.fail = nil
}

// AddRecurringPrice registers a provider-side subscription price.
func (f *FakeStripe) AddRecurringPrice(id string, active bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[id] = &stripe.Price{
		ID:        id,
		Active:    active,
		Type:      stripe.PriceTypeRecurring,
		Recurring: &stripe.PriceRecurring{Interval: stripe.PriceRecurringIntervalMonth},
	}
}

// FailSessions makes every following session creation fail with err.
func (f *FakeStripe) FailSessions(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = err
}

func (f *FakeStripe) Sessions() []*stripe.CheckoutSessionParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*stripe.CheckoutSessionParams(nil), f.sessions...)
}

func (f *FakeStripe) CustomersCreated() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.customers
}

type fakeSessionAPI struct{ f *FakeStripe }

func (a fakeSessionAPI) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	if a.f.fail != nil {
		return nil, a.f.fail
	}

	body := &form.Values{}
	form.AppendTo(body, params)
	key := stripe.StringValue(params.IdempotencyKey)
	if prev, ok := a.f.replays[key]; ok && key != "" {
		if prev.body != body.Encode() {
			return nil, &stripe.Error{
				Type:           stripe.ErrorTypeIdempotency,
				HTTPStatusCode: 400,
				Msg:            "Keys for idempotent requests can only be used with the same parameters they were first used with.",
			}
		}
		return prev.session, nil
	}

	a.f.sessions = append(a.f.sessions, params)
	id := fmt.Sprintf("cs_test_%d", len(a.f.sessions))
	session := &stripe.CheckoutSession{ID: id, URL: "https://checkout.stripe.com/c/pay/" + id}
	if key != "" {
		a.f.replays[key] = idempotentSession{body: body.Encode(), session: session}
	}
	return session, nil
}

type fakePriceAPI struct{ f *FakeStripe }

func (a fakePriceAPI) Get(id string, _ *stripe.PriceParams) (*stripe.Price, error) {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	p, ok := a.f.prices[id]
	if !ok {
		return nil, &stripe.Error{Code: stripe.ErrorCodeResourceMissing, Msg: "No such price: " + id}
	}
	return p, nil
}

type fakeCustomerAPI struct{ f *FakeStripe }

func (a fakeCustomerAPI) New(_ *stripe.CustomerParams) (*stripe.Customer, error) {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	a.f.customers++
	return &stripe.Customer{ID: fmt.Sprintf("cus_test_%d", a.f.customers)}, nil
}

// SignWebhook returns the Stripe-Signature header for payload.
func SignWebhook(payload []byte, secret string) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
	}).Header
}
