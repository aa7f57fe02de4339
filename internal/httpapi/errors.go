package httpapi

import (
	"errors"
	"net/http"

	"grocery-be/internal/address"
	"grocery-be/internal/auth"
	"grocery-be/internal/cart"
	"grocery-be/internal/category"
	"grocery-be/internal/invoice"
	"grocery-be/internal/logger"
	"grocery-be/internal/order"
	"grocery-be/internal/product"
	"grocery-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var notFoundErrors = []error{
	product.ErrProductNotFound,
	category.ErrCategoryNotFound,
	address.ErrAddressNotFound,
	address.ErrPostcodeNotFound,
	cart.ErrCartItemNotFound,
	cart.ErrProductNotFound,
	order.ErrOrderNotFound,
	user.ErrUserNotFound,
}

var invalidInputErrors = []error{
	product.ErrInvalidPrice,
	address.ErrInvalidPostcode,
	cart.ErrInvalidQuantity,
	order.ErrInvalidStatus,
	user.ErrMissingIdentity,
}

var conflictErrors = []error{
	product.ErrDuplicateSlug,
	category.ErrDuplicateSlug,
	address.ErrDuplicatePostcode,
	cart.ErrCartEmpty,
	order.ErrCartEmpty,
	order.ErrProductUnavailable,
	order.ErrBelowMinimum,
	order.ErrInvalidTransition,
	order.ErrStatusChanged,
	invoice.ErrNotInvoiceable,
}

var unserviceableErrors = []error{
	address.ErrPostcodeNotServed,
	order.ErrPostcodeNotServed,
}

var unauthenticatedErrors = []error{
	address.ErrUserNotAuthenticated,
	cart.ErrUserNotAuthenticated,
	order.ErrUserNotAuthenticated,
	auth.ErrInvalidToken,
}

func matchesAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// respondError translates domain errors to HTTP statuses. Anything
// unrecognized is a 500 with the detail kept out of the response body.
func respondError(c *gin.Context, err error) {
	switch {
	case matchesAny(err, notFoundErrors):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case matchesAny(err, invalidInputErrors):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case matchesAny(err, conflictErrors):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case matchesAny(err, unserviceableErrors):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case matchesAny(err, unauthenticatedErrors):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logger.FromCtx(c.Request.Context()).Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
