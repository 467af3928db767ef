// internal/handlers/validation.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shineline/storefront-backend/internal/services"
	"github.com/shineline/storefront-backend/internal/utils"
)

type ValidationHandler struct {
	validationService *services.ValidationService
}

func NewValidationHandler(validationService *services.ValidationService) *ValidationHandler {
	return &ValidationHandler{
		validationService: validationService,
	}
}

// POST /cart/validate
//
// Operates on the caller's own persisted cart; no request body. The
// response bodies here are a fixed contract with the checkout client:
// 200 {valid, total_price, items}, 401 {"error":"Unauthorized"} (handled
// by the auth middleware before any cart read), 500 {"error": <message>}.
func (h *ValidationHandler) ValidateCart(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.validationService.Validate(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
