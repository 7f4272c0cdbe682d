package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/cart"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/product"
	"github.com/kodalibharatheswar/AnviBoutique/internal/shared/middleware"
	"github.com/kodalibharatheswar/AnviBoutique/internal/shared/response"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/logger"
)

type CartHandler struct {
	service cart.Service
}

func NewCartHandler(service cart.Service) *CartHandler {
	return &CartHandler{service: service}
}

// Get handles GET /cart.
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// AddItem handles POST /cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.AddItem(c.Request.Context(), userID, req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Added to cart"})
}

// UpdateQuantity handles PUT /cart/items/:productId.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "Invalid product id")
		return
	}

	var req cart.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.UpdateQuantity(c.Request.Context(), userID, productID, req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Quantity updated"})
}

// RemoveItem handles DELETE /cart/items/:productId.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "Invalid product id")
		return
	}

	if err := h.service.RemoveItem(c.Request.Context(), userID, productID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Removed from cart"})
}

// Clear handles DELETE /cart.
func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.service.Clear(c.Request.Context(), userID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Cart cleared"})
}

func (h *CartHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrItemNotFound):
		response.NotFound(c, "Item not in cart")
	case errors.Is(err, product.ErrProductNotFound):
		response.NotFound(c, "Product not found")
	case errors.Is(err, cart.ErrInsufficientStock):
		response.Conflict(c, "Not enough stock for the requested quantity")
	case errors.Is(err, cart.ErrProductUnavailable):
		response.Conflict(c, "Product is not available")
	default:
		var ve validation.Errors
		if errors.As(err, &ve) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", ve)
			return
		}
		logger.Error("cart handler", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
