package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/payment"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/payment/gateway"
	"github.com/kodalibharatheswar/AnviBoutique/internal/shared/middleware"
	"github.com/kodalibharatheswar/AnviBoutique/internal/shared/response"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/logger"
)

type PaymentHandler struct {
	service payment.Service
}

func NewPaymentHandler(service payment.Service) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Checkout handles POST /checkout. The response carries the hosted
// payment page URL for the client to redirect to.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	session, err := h.service.InitiateCheckout(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, session)
}

// Success handles GET /payment/success?session_id=...; the gateway
// redirects the customer's browser here after payment.
func (h *PaymentHandler) Success(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	sessionID := c.Query("session_id")
	if sessionID == "" {
		response.BadRequest(c, "Missing session_id")
		return
	}

	result, err := h.service.HandleSuccess(c.Request.Context(), userID, sessionID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if result.AlreadyFulfilled {
		response.Success(c, http.StatusOK, gin.H{
			"message": "Your order was already confirmed. See your order history.",
		})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Payment successful. Your order has been placed.",
		"order":   result.Order,
	})
}

// Cancel handles GET /payment/cancel. Nothing was charged and nothing
// changes.
func (h *PaymentHandler) Cancel(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"message": "Payment cancelled. Your cart is untouched; you can try again.",
	})
}

func (h *PaymentHandler) handleError(c *gin.Context, err error) {
	var gwErr *gateway.GatewayError

	switch {
	case errors.Is(err, payment.ErrEmptyCart):
		response.BadRequest(c, "Cannot checkout with an empty cart")
	case errors.Is(err, payment.ErrPaymentNotVerified):
		response.Conflict(c, "Payment could not be verified with the gateway")
	case errors.As(err, &gwErr):
		logger.Error("payment gateway", err)
		response.BadGateway(c, "Payment processing failed. Please try again.")
	default:
		logger.Error("payment handler", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
