package response

import "storefront-checkout/internal/usecase/commands"

type CheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		URL:       r.URL,
		SessionID: r.SessionID,
	}
}

type WebhookAck struct {
	Received bool `json:"received"`
}
