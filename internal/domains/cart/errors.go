package cart

import "errors"

var (
	ErrItemNotFound       = errors.New("cart item not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrProductUnavailable = errors.New("product unavailable")
)
