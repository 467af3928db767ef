// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shineline/storefront-backend/internal/services"
	"github.com/shineline/storefront-backend/internal/session"
	"github.com/shineline/storefront-backend/internal/utils"
)

// GuestCartHeader carries the device-scoped guest cart key. The server
// issues one on the first guest write and the client sends it back on every
// request until sign-in merges the cart away.
const GuestCartHeader = "X-Guest-Cart-Id"

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

type AddItemRequest struct {
	ProductID    string `json:"product_id" validate:"required,uuid"`
	Quantity     int    `json:"quantity" validate:"omitempty,min=1"`
	SelectedSize string `json:"selected_size,omitempty"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// sessionState resolves the caller's session: authenticated when the auth
// middleware verified a bearer token, otherwise anonymous under the guest
// cart header. A guest without a header gets one issued when issue is set.
func sessionState(c *gin.Context, issue bool) session.State {
	if userID, ok := utils.GetUserIDFromContext(c); ok {
		return session.Authenticated(userID)
	}

	guestID := c.GetHeader(GuestCartHeader)
	if guestID == "" && issue {
		guestID = uuid.NewString()
	}
	if guestID != "" {
		c.Header(GuestCartHeader, guestID)
	}
	return session.Anonymous(guestID)
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sess := sessionState(c, false)
	if !sess.IsAuthenticated() && sess.GuestID == "" {
		utils.SuccessResponse(c, gin.H{"items": []services.CartLine{}})
		return
	}

	lines, err := h.cartService.List(c.Request.Context(), sess)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load cart")
		return
	}

	utils.SuccessResponse(c, gin.H{"items": lines})
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	sess := sessionState(c, true)
	if err := h.cartService.AddItem(c.Request.Context(), sess, productID, quantity, req.SelectedSize); err != nil {
		utils.InternalErrorResponse(c, "Failed to add item to cart")
		return
	}

	lines, err := h.cartService.List(c.Request.Context(), sess)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load cart")
		return
	}

	message := "Item successfully added to your cart"
	if !sess.IsAuthenticated() {
		message = "Added to cart. Sign in to save your cart across devices"
	}

	utils.CreatedResponse(c, gin.H{
		"message": message,
		"items":   lines,
	})
}

// PUT /cart/items/:id
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid input", err.Error())
		return
	}
	if req.Quantity == nil {
		utils.BadRequestResponse(c, "quantity is required", nil)
		return
	}

	sess := sessionState(c, false)
	if err := h.cartService.UpdateQuantity(c.Request.Context(), sess, c.Param("id"), *req.Quantity); err != nil {
		utils.InternalErrorResponse(c, "Failed to update quantity")
		return
	}

	lines, err := h.cartService.List(c.Request.Context(), sess)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load cart")
		return
	}

	utils.SuccessResponse(c, gin.H{"items": lines})
}

// DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sess := sessionState(c, false)
	if err := h.cartService.RemoveItem(c.Request.Context(), sess, c.Param("id")); err != nil {
		utils.InternalErrorResponse(c, "Failed to remove item")
		return
	}

	lines, err := h.cartService.List(c.Request.Context(), sess)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load cart")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Item removed successfully",
		"items":   lines,
	})
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sess := sessionState(c, false)
	if err := h.cartService.ClearCart(c.Request.Context(), sess); err != nil {
		utils.InternalErrorResponse(c, "Failed to clear cart")
		return
	}

	utils.SuccessResponse(c, gin.H{"items": []services.CartLine{}})
}
