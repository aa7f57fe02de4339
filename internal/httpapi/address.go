package httpapi

import (
	"net/http"

	"grocery-be/internal/address"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) listAddresses(c *gin.Context) {
	addresses, err := h.addresses.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": addresses})
}

func (h *Handler) getAddress(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	a, err := h.addresses.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) createAddress(c *gin.Context) {
	var req createAddressRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	a, err := h.addresses.Create(c.Request.Context(), address.CreateAddressInput{
		Street:    req.Street,
		Building:  req.Building,
		Floor:     req.Floor,
		Apartment: req.Apartment,
		Postcode:  req.Postcode,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) updateAddress(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	var req updateAddressRequest
	if !bindAndValidate(c, &req, h.validate) {
		return
	}

	a, err := h.addresses.Update(c.Request.Context(), address.UpdateAddressInput{
		AddressID: id,
		Street:    req.Street,
		Building:  req.Building,
		Floor:     req.Floor,
		Apartment: req.Apartment,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) deleteAddress(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
		return
	}

	if err := h.addresses.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
