package wishlist

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]Entry, error)
	// MoveToCart adds the product to the cart and drops it from the
	// wishlist.
	MoveToCart(ctx context.Context, userID, productID uuid.UUID) error
}
