package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/product"
	"github.com/kodalibharatheswar/AnviBoutique/internal/shared/response"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/logger"
)

type ProductHandler struct {
	service product.Service
}

func NewProductHandler(service product.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

// ========================================
// STOREFRONT ENDPOINTS
// ========================================

// Browse handles GET /products with facet query parameters.
func (h *ProductHandler) Browse(c *gin.Context) {
	var q product.FilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	products, err := h.service.Browse(c.Request.Context(), q)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, products)
}

// Featured handles GET /products/featured.
func (h *ProductHandler) Featured(c *gin.Context) {
	products, err := h.service.Featured(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, products)
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product id")
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

// ========================================
// ADMIN ENDPOINTS
// ========================================

// ListAll handles GET /admin/products, including hidden products.
func (h *ProductHandler) ListAll(c *gin.Context) {
	products, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, products)
}

// Create handles POST /admin/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req product.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, p)
}

// Update handles PUT /admin/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product id")
		return
	}

	var req product.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

// Delete handles DELETE /admin/products/:id. Carts and wishlists are
// scrubbed with it.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Product deleted"})
}

func (h *ProductHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		response.NotFound(c, "Product not found")
	case errors.Is(err, product.ErrSKUTaken):
		response.Conflict(c, "SKU already in use")
	default:
		var ve validation.Errors
		if errors.As(err, &ve) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", ve)
			return
		}
		logger.Error("product handler", err)
		response.InternalServerError(c, "Something went wrong")
	}
}
