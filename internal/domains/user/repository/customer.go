package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	user "github.com/kodalibharatheswar/AnviBoutique/internal/domains/user"
)

type customerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) user.CustomerRepository {
	return &customerRepository{pool: pool}
}

func (r *customerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*user.Customer, error) {
	query := `
		SELECT
			id, user_id, first_name, last_name, phone,
			preferred_size, gender, date_of_birth,
			terms_accepted, newsletter_opt_in, created_at, updated_at
		FROM customers
		WHERE user_id = $1
	`

	var c user.Customer
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&c.ID,
		&c.UserID,
		&c.FirstName,
		&c.LastName,
		&c.Phone,
		&c.PreferredSize,
		&c.Gender,
		&c.DateOfBirth,
		&c.TermsAccepted,
		&c.NewsletterOptIn,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer by user id: %w", err)
	}

	return &c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *user.Customer) error {
	query := `
		UPDATE customers
		SET
			first_name = $2,
			last_name = $3,
			phone = $4,
			preferred_size = $5,
			gender = $6,
			newsletter_opt_in = $7,
			updated_at = NOW()
		WHERE user_id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		c.UserID,
		c.FirstName,
		c.LastName,
		c.Phone,
		c.PreferredSize,
		c.Gender,
		c.NewsletterOptIn,
	)
	if err != nil {
		if isUniqueViolation(err, "phone") {
			return user.ErrPhoneTaken
		}
		return fmt.Errorf("update customer: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrCustomerNotFound
	}

	return nil
}
