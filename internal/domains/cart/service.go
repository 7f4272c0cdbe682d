package cart

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	// AddItem puts quantity units in the cart (default 1), folding into
	// an existing row. Fails on unavailable products or insufficient
	// stock.
	AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) error
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, req UpdateQuantityRequest) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
	// Get returns the joined cart with per-line and overall totals.
	Get(ctx context.Context, userID uuid.UUID) (*Cart, error)
}
