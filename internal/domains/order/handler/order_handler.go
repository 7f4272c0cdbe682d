package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/order"
	"github.com/kodalibharatheswar/AnviBoutique/internal/shared/middleware"
	"github.com/kodalibharatheswar/AnviBoutique/internal/shared/response"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/logger"
)

type OrderHandler struct {
	service order.Service
}

func NewOrderHandler(service order.Service) *OrderHandler {
	return &OrderHandler{service: service}
}

// ListMine handles GET /orders.
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, orders)
}

// Cancel handles POST /orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel, "Order cancelled")
}

// RequestReturn handles POST /orders/:id/return.
func (h *OrderHandler) RequestReturn(c *gin.Context) {
	h.transition(c, h.service.RequestReturn, "Return requested")
}

func (h *OrderHandler) transition(c *gin.Context, op func(ctx context.Context, userID, orderID uuid.UUID) error, message string) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order id")
		return
	}

	if err := op(c.Request.Context(), userID, orderID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": message})
}

// ListAll handles GET /admin/orders.
func (h *OrderHandler) ListAll(c *gin.Context) {
	orders, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, orders)
}

// UpdateStatus handles PATCH /admin/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order id")
		return
	}

	var req order.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.AdminUpdateStatus(c.Request.Context(), orderID, req.Status); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Order status updated"})
}

func (h *OrderHandler) handleError(c *gin.Context, err error) {
	var ve validation.Errors
	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", ve)
	case errors.Is(err, order.ErrOrderNotFound):
		response.NotFound(c, "Order not found")
	case errors.Is(err, order.ErrNotOwner):
		response.Forbidden(c, "Order belongs to another account")
	case errors.Is(err, order.ErrInvalidTransition):
		response.Conflict(c, "Order can no longer be changed")
	default:
		logger.Error("order handler", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
