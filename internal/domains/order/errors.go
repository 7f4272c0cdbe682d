package order

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNotOwner      = errors.New("order belongs to another user")
	// ErrInvalidTransition covers cancel/return attempts on orders no
	// longer in PROCESSING.
	ErrInvalidTransition = errors.New("order status transition not allowed")
)
