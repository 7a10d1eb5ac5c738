package handlers

import (
	"net/http"

	"dukaan/internal/apperr"
	"dukaan/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddToCart stages a product. Quantities for an already-staged product merge
// into the existing entry. Responds 201 when this call created the cart.
func (h *Handler) AddToCart(c *gin.Context) {
	var form models.CartAddForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, "AddToCart", apperr.Validationf("Invalid request body"))
		return
	}
	if form.UserID == "" || form.ProductID == "" {
		respondError(c, "AddToCart", apperr.Validationf("userId and productId are required"))
		return
	}
	if !requireSelfOrAdminBody(c, form.UserID) {
		return
	}
	userID, err := primitive.ObjectIDFromHex(form.UserID)
	if err != nil {
		respondError(c, "AddToCart", apperr.Validationf("Invalid userId"))
		return
	}
	productID, err := primitive.ObjectIDFromHex(form.ProductID)
	if err != nil {
		respondError(c, "AddToCart", apperr.Validationf("Invalid productId"))
		return
	}

	cart, created, err := h.cart.AddToCart(c.Request.Context(), userID, productID, form.Qty)
	if err != nil {
		respondError(c, "AddToCart", err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, cart)
}

// GetCart returns the cart with product display fields resolved.
func (h *Handler) GetCart(c *gin.Context) {
	userID, err := objectIDParam(c, "userId")
	if err != nil {
		respondError(c, "GetCart", err)
		return
	}
	view, err := h.cart.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "GetCart", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateCartItem sets the exact quantity of an existing entry.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	userID, err := objectIDParam(c, "userId")
	if err != nil {
		respondError(c, "UpdateCartItem", err)
		return
	}
	productID, err := objectIDParam(c, "productId")
	if err != nil {
		respondError(c, "UpdateCartItem", err)
		return
	}
	var form models.CartQtyForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, "UpdateCartItem", apperr.Validationf("Invalid request body"))
		return
	}

	cart, err := h.cart.UpdateQuantity(c.Request.Context(), userID, productID, form.Qty)
	if err != nil {
		respondError(c, "UpdateCartItem", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveCartItem drops one entry; removing an absent product is a no-op.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	userID, err := objectIDParam(c, "userId")
	if err != nil {
		respondError(c, "RemoveCartItem", err)
		return
	}
	productID, err := objectIDParam(c, "productId")
	if err != nil {
		respondError(c, "RemoveCartItem", err)
		return
	}

	cart, err := h.cart.Remove(c.Request.Context(), userID, productID)
	if err != nil {
		respondError(c, "RemoveCartItem", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// ClearCart empties the cart without deleting it.
func (h *Handler) ClearCart(c *gin.Context) {
	userID, err := objectIDParam(c, "userId")
	if err != nil {
		respondError(c, "ClearCart", err)
		return
	}
	if err := h.cart.Clear(c.Request.Context(), userID); err != nil {
		respondError(c, "ClearCart", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
