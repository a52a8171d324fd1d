package api

import (
	"log/slog"
	"net/http"

	"storefront-checkout/internal/domain/checkout"
	"storefront-checkout/internal/domain/discount"
	"storefront-checkout/internal/domain/inventory"
	reqdto "storefront-checkout/internal/handler/dto/request"
	resdto "storefront-checkout/internal/handler/dto/response"
	"storefront-checkout/internal/handler/httperr"
	"storefront-checkout/internal/handler/middleware"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	cmds    commands.CheckoutCommands
	siteURL string
}

func NewCheckoutHandler(cmds commands.CheckoutCommands, cfg config.CheckoutConfig) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds, siteURL: cfg.SiteURL}
}

// @Summary Start checkout
// @Description Create a hosted payment session for a single price (priceId + mode) or a cart (items + optional discountCode)
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	cmd, err := req.ToCommand(h.siteURL, requesterFrom(c))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, errs.Cause(err).Error(), nil)
		return
	}

	result, err := h.cmds.Checkout(c.Request.Context(), cmd)
	if err != nil {
		abortWithCheckoutError(c, err)
		return
	}

	middleware.AnnotateCheckout(c, result.IdempotencyKey, result.SessionID)
	c.JSON(http.StatusOK, resdto.FromCheckoutResult(result))
}

func requesterFrom(c *gin.Context) checkout.Requester {
	r := checkout.Requester{ClientIP: c.ClientIP()}
	if userID, ok := middleware.GetUserID(c); ok {
		r.UserID = &userID
		r.Email = middleware.GetUserEmail(c)
	}
	return r
}

func abortWithCheckoutError(c *gin.Context, err error) {
	var (
		stockErr  *inventory.InsufficientStockError
		rejection *discount.RejectionError
	)

	switch {
	case errs.As(err, &stockErr):
		available := max(stockErr.Available, 0)
		httperr.AbortWithError(c, http.StatusBadRequest, err, stockErr.Error(), &httperr.Detail{
			Available: &available,
			PriceID:   stockErr.PriceRef,
		})
	case errs.As(err, &rejection):
		httperr.AbortWithError(c, http.StatusBadRequest, err, rejection.Error(), &httperr.Detail{
			Code: string(rejection.Reason),
		})
	case errs.Is(err, commands.ErrInvalidRequest),
		errs.Is(err, commands.ErrPriceNotFound),
		errs.Is(err, commands.ErrPriceModeMismatch),
		errs.Is(err, commands.ErrSubscriptionPriceInvalid):
		httperr.AbortWithError(c, http.StatusBadRequest, err, errs.Cause(err).Error(), nil)
	case errs.Is(err, commands.ErrPaymentProvider):
		slog.Error("checkout failed at payment provider", "error", err, "request_id", middleware.GetRequestID(c))
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create checkout session", &httperr.Detail{
			Details: errs.Cause(err).Error(),
		})
	default:
		slog.Error("checkout failed", "error", err, "request_id", middleware.GetRequestID(c),
			"stack", errs.ExtractStackLines(err, 10))
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", &httperr.Detail{
			Details: "Failed to create checkout session",
		})
	}
}
