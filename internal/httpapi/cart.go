package httpapi

import (
	"net/http"

	"grocery-be/internal/cart"
	"grocery-be/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) getCart(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	view, err := h.carts.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) addToCart(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req addToCartRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	item, err := h.carts.AddToCart(c.Request.Context(), cart.AddItemParams{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) updateCartItem(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req updateCartItemRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	if err := h.carts.UpdateQuantity(c.Request.Context(), cart.UpdateItemParams{
		UserID:    userID,
		ProductID: productID,
		Quantity:  req.Quantity,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) removeCartItem(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := h.carts.RemoveFromCart(c.Request.Context(), cart.UpdateItemParams{
		UserID:    userID,
		ProductID: productID,
	}); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) clearCart(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	if err := h.carts.ClearCart(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) syncCart(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req syncCartRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	guestItems := make([]cart.GuestItem, 0, len(req.Items))
	for _, it := range req.Items {
		guestItems = append(guestItems, cart.GuestItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	view, err := h.carts.Sync(c.Request.Context(), userID, guestItems)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
