package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Repository interface {
	// CreateTx inserts the order inside the caller's transaction so the
	// insert commits or rolls back together with the cart clear.
	CreateTx(ctx context.Context, tx pgx.Tx, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	FindAll(ctx context.Context) ([]Order, error)
	// UpdateStatus applies a transition guarded by the expected current
	// status; a stale expectation returns ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) error
	// SetStatus overwrites the status unconditionally (admin override).
	SetStatus(ctx context.Context, id uuid.UUID, to string) error
}
