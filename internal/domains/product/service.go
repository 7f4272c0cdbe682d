package product

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	// Browse applies the storefront facets. Only available products are
	// returned; admin listing goes through ListAll.
	Browse(ctx context.Context, q FilterQuery) ([]Product, error)
	// Featured returns the newest sellable products for the home page.
	Featured(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id uuid.UUID) (*Product, error)

	// Admin surface.
	ListAll(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, req SaveProductRequest) (*Product, error)
	Update(ctx context.Context, id uuid.UUID, req SaveProductRequest) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
