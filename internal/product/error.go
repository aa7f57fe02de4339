package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("product price must be positive")
	ErrDuplicateSlug   = errors.New("product slug already exists")
)
