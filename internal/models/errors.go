package models

import "errors"

// Common errors used throughout the application
var (
	ErrBookNotFound      = errors.New("book not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrCartNotFound      = errors.New("cart not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidQuantity   = errors.New("quantity cannot be negative")
	ErrUnknownItem       = errors.New("item is not in the cart")
	ErrBookUnavailable   = errors.New("book is not available")
	ErrDuplicateEntry    = errors.New("duplicate entry")
	ErrInvalidInput      = errors.New("invalid input")
)
