package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/contact"
	"github.com/kodalibharatheswar/AnviBoutique/internal/shared/response"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/logger"
)

type ContactHandler struct {
	service contact.Service
}

func NewContactHandler(service contact.Service) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit handles POST /contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contact.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.Submit(c.Request.Context(), req); err != nil {
		var ve validation.Errors
		if errors.As(err, &ve) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", ve)
			return
		}
		logger.Error("contact submit", err)
		response.BadGateway(c, "Could not deliver your message, please try again later")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Thank you for reaching out, we will get back to you soon"})
}
