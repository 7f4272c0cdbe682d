package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/cart"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/product"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/wishlist"
)

type wishlistService struct {
	repo     wishlist.Repository
	products product.Repository
	carts    cart.Service
}

func NewWishlistService(repo wishlist.Repository, products product.Repository, carts cart.Service) wishlist.Service {
	return &wishlistService{repo: repo, products: products, carts: carts}
}

func (s *wishlistService) Add(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.repo.Add(ctx, userID, productID)
}

func (s *wishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return s.repo.Remove(ctx, userID, productID)
}

func (s *wishlistService) List(ctx context.Context, userID uuid.UUID) ([]wishlist.Entry, error) {
	entries, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []wishlist.Entry{}
	}
	return entries, nil
}

// MoveToCart keeps the wishlist row if the cart add fails, so a
// sold-out product stays saved for later.
func (s *wishlistService) MoveToCart(ctx context.Context, userID, productID uuid.UUID) error {
	err := s.carts.AddItem(ctx, userID, cart.AddItemRequest{
		ProductID: productID.String(),
		Quantity:  1,
	})
	if err != nil {
		return err
	}

	return s.repo.Remove(ctx, userID, productID)
}
