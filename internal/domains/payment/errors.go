package payment

import "errors"

var (
	ErrEmptyCart = errors.New("cannot checkout with an empty cart")
	// ErrPaymentNotVerified means session verification is enabled and
	// the gateway did not report the session as paid.
	ErrPaymentNotVerified = errors.New("payment not verified by gateway")
)
