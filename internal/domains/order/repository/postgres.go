package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	order "github.com/kodalibharatheswar/AnviBoutique/internal/domains/order"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) order.Repository {
	return &postgresRepository{pool: pool}
}

const orderColumns = `
	id, user_id, order_date, total_amount, status,
	items_snapshot, shipping_snapshot, gateway_session_id,
	created_at, updated_at
`

func scanOrder(row pgx.Row) (*order.Order, error) {
	var o order.Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.OrderDate,
		&o.TotalAmount,
		&o.Status,
		&o.ItemsSnapshot,
		&o.ShippingSnapshot,
		&o.GatewaySessionID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepository) CreateTx(ctx context.Context, tx pgx.Tx, o *order.Order) error {
	query := `
		INSERT INTO orders (
			id, user_id, order_date, total_amount, status,
			items_snapshot, shipping_snapshot, gateway_session_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		o.ID, o.UserID, o.OrderDate, o.TotalAmount, o.Status,
		o.ItemsSnapshot, o.ShippingSnapshot, o.GatewaySessionID,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find order by id: %w", err)
	}
	return o, nil
}

func (r *postgresRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY order_date DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders by user: %w", err)
	}
	return collectOrders(rows)
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]order.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY order_date DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return collectOrders(rows)
}

// UpdateStatus uses the expected current status as a compare-and-swap
// guard against concurrent transitions.
func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) error {
	query := `
		UPDATE orders
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.pool.Exec(ctx, query, id, from, to)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if result.RowsAffected() == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return order.ErrInvalidTransition
	}

	return nil
}

func (r *postgresRepository) SetStatus(ctx context.Context, id uuid.UUID, to string) error {
	query := `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, to)
	if err != nil {
		return fmt.Errorf("set order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}

	return nil
}

func collectOrders(rows pgx.Rows) ([]order.Order, error) {
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return orders, nil
}
