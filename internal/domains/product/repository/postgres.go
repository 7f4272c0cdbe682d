package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	product "github.com/kodalibharatheswar/AnviBoutique/internal/domains/product"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) product.Repository {
	return &postgresRepository{pool: pool}
}

const productColumns = `
	id, name, description, price, category, image_url, color,
	stock_quantity, sku, size_options, size_guide_url,
	estimated_delivery, delivery_return_policy, additional_info,
	tags, is_available, created_at, updated_at
`

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.ImageURL,
		&p.Color,
		&p.StockQuantity,
		&p.SKU,
		&p.SizeOptions,
		&p.SizeGuideURL,
		&p.EstDelivery,
		&p.ReturnPolicy,
		&p.AdditionalInfo,
		&p.Tags,
		&p.IsAvailable,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]product.Product, error) {
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return products, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *product.Product) error {
	query := `
		INSERT INTO products (
			id, name, description, price, category, image_url, color,
			stock_quantity, sku, size_options, size_guide_url,
			estimated_delivery, delivery_return_policy, additional_info,
			tags, is_available, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, NOW(), NOW()
		)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.Color,
		p.StockQuantity, p.SKU, p.SizeOptions, p.SizeGuideURL,
		p.EstDelivery, p.ReturnPolicy, p.AdditionalInfo,
		p.Tags, p.IsAvailable,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return product.ErrSKUTaken
		}
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r *postgresRepository) Update(ctx context.Context, p *product.Product) error {
	query := `
		UPDATE products
		SET
			name = $2, description = $3, price = $4, category = $5,
			image_url = $6, color = $7, stock_quantity = $8, sku = $9,
			size_options = $10, size_guide_url = $11,
			estimated_delivery = $12, delivery_return_policy = $13,
			additional_info = $14, tags = $15, is_available = $16,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Category,
		p.ImageURL, p.Color, p.StockQuantity, p.SKU,
		p.SizeOptions, p.SizeGuideURL,
		p.EstDelivery, p.ReturnPolicy,
		p.AdditionalInfo, p.Tags, p.IsAvailable,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return product.ErrSKUTaken
		}
		return fmt.Errorf("update product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return collectProducts(rows)
}

func (r *postgresRepository) FindByCategory(ctx context.Context, category string) ([]product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}

	return collectProducts(rows)
}

func (r *postgresRepository) FindLatest(ctx context.Context, limit int) ([]product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list latest products: %w", err)
	}

	return collectProducts(rows)
}

// Delete scrubs carts and wishlists before removing the catalog row.
// Order snapshots carry denormalized text, so history survives.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE product_id = $1`, id); err != nil {
			return fmt.Errorf("scrub cart rows: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM wishlist_items WHERE product_id = $1`, id); err != nil {
			return fmt.Errorf("scrub wishlist rows: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		if result.RowsAffected() == 0 {
			return product.ErrProductNotFound
		}

		return nil
	})
}
