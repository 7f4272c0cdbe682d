package product

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	FindByCategory(ctx context.Context, category string) ([]Product, error)
	// FindLatest returns the newest products, capped at limit.
	FindLatest(ctx context.Context, limit int) ([]Product, error)
	// Delete removes the product and scrubs it from every cart and
	// wishlist in one transaction. Order snapshots are untouched.
	Delete(ctx context.Context, id uuid.UUID) error
}
