package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	cart "github.com/kodalibharatheswar/AnviBoutique/internal/domains/cart"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) cart.Repository {
	return &postgresRepository{pool: pool}
}

// Upsert leans on the (user_id, product_id) unique constraint; a
// duplicate add folds into the existing row's quantity.
func (r *postgresRepository) Upsert(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	query := `
		INSERT INTO cart_items (id, user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
	`

	_, err := r.pool.Exec(ctx, query, uuid.New(), userID, productID, quantity)
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

func (r *postgresRepository) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	query := `
		UPDATE cart_items
		SET quantity = $3, updated_at = NOW()
		WHERE user_id = $1 AND product_id = $2
	`

	result, err := r.pool.Exec(ctx, query, userID, productID, quantity)
	if err != nil {
		return fmt.Errorf("set cart quantity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

func (r *postgresRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	result, err := r.pool.Exec(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

func (r *postgresRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]cart.CartItem, error) {
	query := `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []cart.CartItem
	for rows.Next() {
		var it cart.CartItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return items, nil
}

const lineQuery = `
	SELECT
		ci.product_id, p.name, p.description, p.image_url,
		p.price, ci.quantity, p.stock_quantity
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
	WHERE ci.user_id = $1
	ORDER BY ci.created_at
`

func (r *postgresRepository) Lines(ctx context.Context, userID uuid.UUID) ([]cart.Line, error) {
	rows, err := r.pool.Query(ctx, lineQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	return collectLines(rows)
}

// LinesForUpdateTx locks the user's cart rows so two concurrent
// fulfillment callbacks cannot both observe a non-empty cart.
func (r *postgresRepository) LinesForUpdateTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]cart.Line, error) {
	query := `
		SELECT
			ci.product_id, p.name, p.description, p.image_url,
			p.price, ci.quantity, p.stock_quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at
		FOR UPDATE OF ci
	`

	rows, err := tx.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("lock cart lines: %w", err)
	}
	return collectLines(rows)
}

func (r *postgresRepository) ClearTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func collectLines(rows pgx.Rows) ([]cart.Line, error) {
	defer rows.Close()

	var lines []cart.Line
	for rows.Next() {
		var l cart.Line
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Description, &l.ImageURL, &l.UnitPrice, &l.Quantity, &l.Stock); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return lines, nil
}
