package httpapi

import (
	"net/http"
	"strconv"

	"grocery-be/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) listProducts(c *gin.Context) {
	opts := product.ListOptions{OnlyActive: true}

	if s := c.Query("category_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		opts.CategoryID = &id
	}
	if s := c.Query("search"); s != "" {
		opts.Search = &s
	}
	opts.Limit = queryInt32(c, "limit", 20)
	opts.Page = queryInt32(c, "page", 1)

	products, total, err := h.products.ListProducts(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": products,
		"total": total,
		"page":  opts.Page,
		"limit": opts.Limit,
	})
}

func (h *Handler) getProduct(c *gin.Context) {
	// The path segment is an ID or a slug; slugs are never valid UUIDs.
	raw := c.Param("id")
	ctx := c.Request.Context()

	if id, err := uuid.Parse(raw); err == nil {
		p, err := h.products.GetProduct(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
		return
	}

	p, err := h.products.GetProductBySlug(ctx, raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.categories.GetCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": categories})
}

func (h *Handler) getCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	cat, err := h.categories.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) verifyPostcode(c *gin.Context) {
	served, city, err := h.addresses.VerifyPostcode(c.Request.Context(), c.Param("postcode"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"postcode": c.Param("postcode"),
		"served":   served,
		"city":     city,
	})
}

func queryInt32(c *gin.Context, name string, fallback int32) int32 {
	s := c.Query(name)
	if s == "" {
		return fallback
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(n)
}
