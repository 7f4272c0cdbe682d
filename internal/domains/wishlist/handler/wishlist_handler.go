package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/cart"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/product"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/wishlist"
	"github.com/kodalibharatheswar/AnviBoutique/internal/shared/middleware"
	"github.com/kodalibharatheswar/AnviBoutique/internal/shared/response"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/logger"
)

type WishlistHandler struct {
	service wishlist.Service
}

func NewWishlistHandler(service wishlist.Service) *WishlistHandler {
	return &WishlistHandler{service: service}
}

// List handles GET /wishlist.
func (h *WishlistHandler) List(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	entries, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, entries)
}

// Add handles POST /wishlist/:productId.
func (h *WishlistHandler) Add(c *gin.Context) {
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

	if err := h.service.Add(c.Request.Context(), userID, productID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "Added to wishlist"})
}

// Remove handles DELETE /wishlist/:productId.
func (h *WishlistHandler) Remove(c *gin.Context) {
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

	if err := h.service.Remove(c.Request.Context(), userID, productID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Removed from wishlist"})
}

// MoveToCart handles POST /wishlist/:productId/move-to-cart.
func (h *WishlistHandler) MoveToCart(c *gin.Context) {
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

	if err := h.service.MoveToCart(c.Request.Context(), userID, productID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Moved to cart"})
}

func (h *WishlistHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, wishlist.ErrItemNotFound):
		response.NotFound(c, "Item not in wishlist")
	case errors.Is(err, wishlist.ErrAlreadyListed):
		response.Conflict(c, "Product already in wishlist")
	case errors.Is(err, product.ErrProductNotFound):
		response.NotFound(c, "Product not found")
	case errors.Is(err, cart.ErrInsufficientStock), errors.Is(err, cart.ErrProductUnavailable):
		response.Conflict(c, "Product cannot be added to the cart right now")
	default:
		logger.Error("wishlist handler", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
