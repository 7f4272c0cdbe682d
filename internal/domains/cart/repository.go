package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Repository interface {
	// Upsert adds quantity to the user's existing row for the product,
	// or inserts one.
	Upsert(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error

	FindByUser(ctx context.Context, userID uuid.UUID) ([]CartItem, error)
	// Lines joins cart rows with the catalog for display and checkout.
	Lines(ctx context.Context, userID uuid.UUID) ([]Line, error)

	// LinesForUpdateTx reads the user's lines inside tx with the cart
	// rows locked, serializing concurrent fulfillment attempts.
	LinesForUpdateTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]Line, error)
	ClearTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error
}
