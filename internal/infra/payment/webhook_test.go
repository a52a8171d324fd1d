//go:build unit

package payment

import (
	"testing"
	"time"

	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v78/webhook"
)

const testWebhookSecret = "whsec_test_secret"

const completedPayload = `{
  "id": "evt_1",
  "object": "event",
  "api_version": "2020-08-27",
  "type": "checkout.session.completed",
  "data": {
    "object": {
      "id": "cs_test_1",
      "object": "checkout.session",
      "payment_status": "paid",
      "amount_total": 4000,
      "currency": "usd",
      "customer_details": {"email": "buyer@example.com"},
      "metadata": {"reservation_key": "pending_1", "discount_code": "SAVE20"}
    }
  }
}`

func sign(payload string) string {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	})
	return signed.Header
}

func TestWebhookVerifier(t *testing.T) {
	v := NewWebhookVerifier(testWebhookSecret)

	t.Run("decodes a completed session", func(t *testing.T) {
		ev, err := v.Verify([]byte(completedPayload), sign(completedPayload))

		require.NoError(t, err)
		assert.Equal(t, commands.PaymentEvent{
			ID:               "evt_1",
			Type:             commands.EventSessionCompleted,
			SessionID:        "cs_test_1",
			PaymentStatus:    "paid",
			AmountTotalCents: 4000,
			Currency:         "usd",
			CustomerEmail:    "buyer@example.com",
			Metadata:         map[string]string{"reservation_key": "pending_1", "discount_code": "SAVE20"},
		}, *ev)
	})

	t.Run("rejects a bad signature", func(t *testing.T) {
		_, err := v.Verify([]byte(completedPayload), "t=1,v1=deadbeef")

		require.Error(t, err)
		assert.True(t, errs.Is(err, ErrInvalidSignature))
	})

	t.Run("passes other event types through undecoded", func(t *testing.T) {
		payload := `{"id":"evt_2","object":"event","api_version":"2020-08-27","type":"invoice.paid","data":{"object":{"id":"in_1"}}}`

		ev, err := v.Verify([]byte(payload), sign(payload))

		require.NoError(t, err)
		assert.Equal(t, commands.PaymentEventType("invoice.paid"), ev.Type)
		assert.Empty(t, ev.SessionID)
	})
}
