package models

import "errors"

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidProduct wraps validation failures of a catalog record.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrDuplicateProduct is returned when two catalog records share an id.
	ErrDuplicateProduct = errors.New("duplicate product id")

	// ErrLineNotFound is returned when a cart line index is out of range.
	ErrLineNotFound = errors.New("cart line not found")
	// ErrInvalidQuantity is returned for negative quantities.
	ErrInvalidQuantity = errors.New("quantity must be zero or positive")
)
