package api

import (
	"io"
	"log/slog"
	"net/http"

	resdto "storefront-checkout/internal/handler/dto/response"
	"storefront-checkout/internal/handler/httperr"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// Stripe caps webhook payloads well below this.
const maxWebhookBody = 256 << 10

type WebhookVerifier interface {
	Verify(payload []byte, signature string) (*commands.PaymentEvent, error)
}

type WebhookHandler struct {
	cmds     commands.PaymentEventCommands
	verifier WebhookVerifier
}

func NewWebhookHandler(cmds commands.PaymentEventCommands, verifier WebhookVerifier) *WebhookHandler {
	return &WebhookHandler{cmds: cmds, verifier: verifier}
}

// @Summary Payment provider webhook
// @Description Confirms or releases inventory when a checkout session completes, expires or fails
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Webhook signature"
// @Success 200 {object} resdto.WebhookAck
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/webhooks/stripe [post]
func (h *WebhookHandler) Stripe(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable body", nil)
		return
	}

	event, err := h.verifier.Verify(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		slog.Warn("rejected webhook", "error", err.Error())
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid webhook", nil)
		return
	}

	// a 5xx makes the provider redeliver, which is safe because events are de-duplicated
	if err := h.cmds.HandlePaymentEvent(c.Request.Context(), *event); err != nil {
		slog.Error("webhook processing failed", "event_id", event.ID, "type", string(event.Type), "error", err)
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Webhook processing failed", &httperr.Detail{
			Details: errs.Cause(err).Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resdto.WebhookAck{Received: true})
}
