package service

import (
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/product"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/cache"
)

const (
	featuredCount     = 8
	featuredCacheKey  = "products:featured"
	featuredCacheTTL  = 5 * time.Minute
	lowStockThreshold = 5
)

type productService struct {
	repo  product.Repository
	cache cache.Cache
}

func NewProductService(repo product.Repository, cache cache.Cache) product.Service {
	return &productService{repo: repo, cache: cache}
}

// Browse resolves the category in SQL, then runs the remaining facets
// as predicates and a comparator over the result set.
func (s *productService) Browse(ctx context.Context, q product.FilterQuery) ([]product.Product, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var (
		products []product.Product
		err      error
	)
	if q.Category != "" {
		products, err = s.repo.FindByCategory(ctx, q.Category)
	} else {
		products, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	pred, err := buildPredicate(q)
	if err != nil {
		return nil, err
	}
	products = product.Filter(products, pred)

	product.SortBy(products, comparatorFor(q.SortBy))

	return products, nil
}

func buildPredicate(q product.FilterQuery) (product.Predicate, error) {
	preds := []product.Predicate{product.Available()}

	if q.MinPrice != "" {
		min, err := decimal.NewFromString(q.MinPrice)
		if err != nil {
			return nil, validation.Errors{"min_price": validation.NewError("validation_price", "must be a decimal number")}
		}
		preds = append(preds, product.PriceAtLeast(min))
	}
	if q.MaxPrice != "" {
		max, err := decimal.NewFromString(q.MaxPrice)
		if err != nil {
			return nil, validation.Errors{"max_price": validation.NewError("validation_price", "must be a decimal number")}
		}
		preds = append(preds, product.PriceAtMost(max))
	}
	if q.Color != "" {
		preds = append(preds, product.ColorContains(q.Color))
	}

	switch q.Status {
	case "inStock":
		preds = append(preds, product.InStock())
	case "lowStock":
		preds = append(preds, product.LowStock(lowStockThreshold))
	case "onSale":
		// No sale pricing in the catalog yet.
		preds = append(preds, product.None())
	}

	return product.And(preds...), nil
}

func comparatorFor(sortBy string) product.Comparator {
	switch sortBy {
	case "priceAsc":
		return product.PriceAsc()
	case "priceDesc":
		return product.PriceDesc()
	case "oldest":
		return product.Oldest()
	default:
		return product.Newest()
	}
}

// Featured serves the home page rail from cache; the catalog changes
// far less often than the page is hit.
func (s *productService) Featured(ctx context.Context) ([]product.Product, error) {
	var cached []product.Product
	found, err := s.cache.Get(ctx, featuredCacheKey, &cached)
	if err == nil && found {
		return cached, nil
	}

	latest, err := s.repo.FindLatest(ctx, featuredCount)
	if err != nil {
		return nil, err
	}
	latest = product.Filter(latest, product.Available())

	_ = s.cache.Set(ctx, featuredCacheKey, latest, featuredCacheTTL)

	return latest, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// ========================================
// ADMIN
// ========================================

func (s *productService) ListAll(ctx context.Context) ([]product.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *productService) Create(ctx context.Context, req product.SaveProductRequest) (*product.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	p.ID = uuid.New()

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateFeatured(ctx)
	return p, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req product.SaveProductRequest) (*product.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	p, err := fromRequest(req)
	if err != nil {
		return nil, err
	}
	p.ID = id

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateFeatured(ctx)
	return s.repo.FindByID(ctx, id)
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateFeatured(ctx)
	return nil
}

func (s *productService) invalidateFeatured(ctx context.Context) {
	_ = s.cache.Delete(ctx, featuredCacheKey)
}

func fromRequest(req product.SaveProductRequest) (*product.Product, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, fmt.Errorf("parse price: %w", err)
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	return &product.Product{
		Name:           req.Name,
		Description:    req.Description,
		Price:          price,
		Category:       req.Category,
		ImageURL:       req.ImageURL,
		Color:          req.Color,
		StockQuantity:  req.StockQuantity,
		SKU:            req.SKU,
		SizeOptions:    req.SizeOptions,
		SizeGuideURL:   req.SizeGuideURL,
		EstDelivery:    req.EstDelivery,
		ReturnPolicy:   req.ReturnPolicy,
		AdditionalInfo: req.AdditionalInfo,
		Tags:           req.Tags,
		IsAvailable:    available,
	}, nil
}
