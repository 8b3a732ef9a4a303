package handler

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/cubemart/backend/internal/application/cart"
	"github.com/cubemart/backend/internal/interfaces/http/middleware"
)

// CartHandler handles the session cart endpoints. Every route is keyed by
// the X-Cart-ID header resolved by the CartID middleware.
type CartHandler struct {
	BaseHandler
	cartService *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.Service) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// Get handles GET /api/cart
func (h *CartHandler) Get(c *gin.Context) {
	result, err := h.cartService.Get(c.Request.Context(), middleware.GetCartID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.cartService.AddItem(c.Request.Context(), middleware.GetCartID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateItem handles PUT /api/cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req cartapp.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.cartService.UpdateQuantity(c.Request.Context(), middleware.GetCartID(c), c.Param("id"), req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RemoveItem handles DELETE /api/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	result, err := h.cartService.RemoveItem(c.Request.Context(), middleware.GetCartID(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(c *gin.Context) {
	result, err := h.cartService.Clear(c.Request.Context(), middleware.GetCartID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Toggle handles POST /api/cart/toggle
func (h *CartHandler) Toggle(c *gin.Context) {
	result, err := h.cartService.Toggle(c.Request.Context(), middleware.GetCartID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
