package order

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	// FulfillFromCart converts the user's cart into exactly one order
	// and clears the cart, atomically. An empty cart means the callback
	// was already handled: created is false and no error is returned.
	FulfillFromCart(ctx context.Context, userID uuid.UUID, gatewaySessionID string) (o *Order, created bool, err error)

	ListMine(ctx context.Context, userID uuid.UUID) ([]Order, error)
	Cancel(ctx context.Context, userID, orderID uuid.UUID) error
	RequestReturn(ctx context.Context, userID, orderID uuid.UUID) error

	// ListAll and AdminUpdateStatus back the admin order view. The
	// admin override skips the owner and PROCESSING guards.
	ListAll(ctx context.Context) ([]Order, error)
	AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error
}
