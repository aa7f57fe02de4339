package address

import "errors"

var (
	ErrUserNotAuthenticated = errors.New("user not authenticated")
	ErrAddressNotFound      = errors.New("address not found")
	ErrPostcodeNotServed    = errors.New("postcode is not in the service area")
	ErrPostcodeNotFound     = errors.New("service postcode not found")
	ErrDuplicatePostcode    = errors.New("service postcode already exists")
	ErrInvalidPostcode      = errors.New("invalid postcode")
)
