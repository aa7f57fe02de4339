package httpapi

import (
	"net/http"
	"strconv"

	"grocery-be/internal/order"
	"grocery-be/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	p, err := h.products.CreateProduct(c.Request.Context(), product.CreateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Unit:        req.Unit,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req updateProductRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	p, err := h.products.UpdateProduct(c.Request.Context(), product.UpdateProductParams{
		ProductID:   id,
		Name:        req.Name,
		Description: req.Description,
		Unit:        req.Unit,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) createCategory(c *gin.Context) {
	var req createCategoryRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	cat, err := h.categories.AddCategory(c.Request.Context(), req.Name, req.SortOrder)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *Handler) listPostcodes(c *gin.Context) {
	postcodes, err := h.addresses.ListServicePostcodes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": postcodes})
}

func (h *Handler) addPostcode(c *gin.Context) {
	var req addPostcodeRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	sp, err := h.addresses.AddServicePostcode(c.Request.Context(), req.Postcode, req.CityName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sp)
}

func (h *Handler) removePostcode(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid postcode id"})
		return
	}

	if err := h.addresses.RemoveServicePostcode(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) adminListOrders(c *gin.Context) {
	var status *order.Status
	if s := c.Query("status"); s != "" {
		st := order.Status(s)
		status = &st
	}

	limit := queryInt32(c, "limit", 20)
	offset := queryInt32(c, "offset", 0)

	orders, total, err := h.orders.AdminListOrders(c.Request.Context(), status, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": orders, "total": total})
}

func (h *Handler) adminGetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	o, err := h.orders.AdminGetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req transitionRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	o, err := h.orders.Transition(c.Request.Context(), order.TransitionParams{
		OrderID:   id,
		Next:      order.Status(req.Status),
		ChangedBy: "admin",
		Notes:     req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
