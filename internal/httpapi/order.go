package httpapi

import (
	"net/http"

	"grocery-be/internal/invoice"
	"grocery-be/internal/middleware"
	"grocery-be/internal/order"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) checkout(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req checkoutRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	params := order.CheckoutParams{
		UserID:    userID,
		AddressID: req.AddressID,
		Notes:     req.Notes,
	}
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		params.IdempotencyKey = &key
	}

	o, err := h.orders.Checkout(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *Handler) listOrders(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	limit := queryInt32(c, "limit", 20)
	offset := queryInt32(c, "offset", 0)

	orders, total, err := h.orders.ListOrders(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": orders, "total": total})
}

func (h *Handler) getOrder(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	o, err := h.orders.GetOrder(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// getInvoice returns the invoice document, or the rendered printable text
// when the client asks for text/plain.
func (h *Handler) getInvoice(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	o, err := h.orders.GetOrder(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	doc, err := invoice.FromOrder(o, h.cfg.Checkout.Currency)
	if err != nil {
		respondError(c, err)
		return
	}

	if c.GetHeader("Accept") == "text/plain" {
		payload, err := invoice.Render(doc)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", payload)
		return
	}

	c.JSON(http.StatusOK, doc)
}
