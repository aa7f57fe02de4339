package order

import "errors"

var (
	// -- Authentication/Authorization --
	ErrUserNotAuthenticated = errors.New("user not authenticated")

	// -- Validation & Input --
	ErrInvalidStatus = errors.New("invalid order status")

	// -- Resource State --
	ErrOrderNotFound      = errors.New("order not found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product no longer available")
	ErrBelowMinimum       = errors.New("order total below minimum order amount")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrStatusChanged      = errors.New("order status changed concurrently")
	ErrDuplicateCheckout  = errors.New("an order already exists for this idempotency key")

	// -- External --
	ErrPostcodeNotServed = errors.New("delivery not available for postcode")
)
