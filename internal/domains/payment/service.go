package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/order"
)

// CheckoutSession is the redirect target for a freshly created hosted
// checkout.
type CheckoutSession struct {
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
}

// SuccessResult reports what the success callback did. AlreadyFulfilled
// means the cart was empty: a duplicate delivery that changed nothing.
type SuccessResult struct {
	Order            *order.Order `json:"order,omitempty"`
	AlreadyFulfilled bool         `json:"already_fulfilled"`
}

type Service interface {
	// InitiateCheckout builds a gateway session from the current cart.
	// It mutates nothing; the cart converts only on the success
	// callback.
	InitiateCheckout(ctx context.Context, userID uuid.UUID) (*CheckoutSession, error)
	// HandleSuccess converts the cart into an order exactly once per
	// payment, under a per-user lock.
	HandleSuccess(ctx context.Context, userID uuid.UUID, sessionID string) (*SuccessResult, error)
}
