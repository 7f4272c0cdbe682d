package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/cart"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/product"
)

type cartService struct {
	repo     cart.Repository
	products product.Repository
}

func NewCartService(repo cart.Repository, products product.Repository) cart.Service {
	return &cartService{repo: repo, products: products}
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req cart.AddItemRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return product.ErrProductNotFound
	}

	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}

	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if !p.IsAvailable {
		return cart.ErrProductUnavailable
	}
	if p.StockQuantity < qty {
		return cart.ErrInsufficientStock
	}

	return s.repo.Upsert(ctx, userID, productID, qty)
}

func (s *cartService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, req cart.UpdateQuantityRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.StockQuantity < req.Quantity {
		return cart.ErrInsufficientStock
	}

	return s.repo.SetQuantity(ctx, userID, productID, req.Quantity)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return s.repo.Remove(ctx, userID, productID)
}

func (s *cartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Clear(ctx, userID)
}

func (s *cartService) Get(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	lines, err := s.repo.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}

	if lines == nil {
		lines = []cart.Line{}
	}

	return &cart.Cart{Items: lines, Total: total}, nil
}
