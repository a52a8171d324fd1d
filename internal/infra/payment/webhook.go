package payment

import (
	"encoding/json"

	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/commands"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"
)

var (
	ErrInvalidSignature = errs.New("invalid webhook signature")
	ErrMalformedEvent   = errs.New("malformed webhook event")
)

type WebhookVerifier struct {
	secret string
}

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: secret}
}

// Verify checks the Stripe-Signature header and decodes checkout session events.
// Other event types come back with only ID and Type set.
func (v *WebhookVerifier) Verify(payload []byte, signature string) (*commands.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "construct event"), ErrInvalidSignature)
	}

	ev := &commands.PaymentEvent{
		ID:   event.ID,
		Type: commands.PaymentEventType(event.Type),
	}
	if !isCheckoutSessionEvent(ev.Type) {
		return ev, nil
	}

	var session stripe.CheckoutSession
	if event.Data == nil {
		return nil, ErrMalformedEvent
	}
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode checkout session"), ErrMalformedEvent)
	}

	ev.SessionID = session.ID
	ev.PaymentStatus = string(session.PaymentStatus)
	ev.AmountTotalCents = session.AmountTotal
	ev.Currency = string(session.Currency)
	ev.CustomerEmail = session.CustomerEmail
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		ev.CustomerEmail = session.CustomerDetails.Email
	}
	ev.Metadata = session.Metadata
	return ev, nil
}

func isCheckoutSessionEvent(t commands.PaymentEventType) bool {
	switch t {
	case commands.EventSessionCompleted, commands.EventSessionExpired,
		commands.EventAsyncPaymentSucceeded, commands.EventAsyncPaymentFailed:
		return true
	default:
		return false
	}
}
