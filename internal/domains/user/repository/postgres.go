package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	user "github.com/kodalibharatheswar/AnviBoutique/internal/domains/user"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/cache"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/database"
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) user.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const userColumns = `
	id, email, password_hash, role, email_verified,
	must_change_password, token_version, created_at, updated_at
`

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.EmailVerified,
		&u.MustChangePassword,
		&u.TokenVersion,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// isUniqueViolation maps PostgreSQL error 23505 on the named constraint
// column to a domain conflict.
func isUniqueViolation(err error, column string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return strings.Contains(pgErr.ConstraintName, column) || strings.Contains(pgErr.Detail, column)
	}
	return false
}

// ========================================
// BASIC CRUD OPERATIONS
// ========================================

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, role, email_verified,
			must_change_password, token_version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.EmailVerified,
		u.MustChangePassword,
		u.TokenVersion,
	).Scan(&u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "email") {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// CreateWithCustomer inserts the credential record and its customer
// profile atomically. A phone collision rolls back the user row too.
func (r *postgresRepository) CreateWithCustomer(ctx context.Context, u *user.User, c *user.Customer) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		userQuery := `
			INSERT INTO users (
				id, email, password_hash, role, email_verified,
				must_change_password, token_version, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			RETURNING created_at, updated_at
		`
		err := tx.QueryRow(ctx, userQuery,
			u.ID, u.Email, u.PasswordHash, u.Role,
			u.EmailVerified, u.MustChangePassword, u.TokenVersion,
		).Scan(&u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err, "email") {
				return user.ErrEmailTaken
			}
			return fmt.Errorf("insert user: %w", err)
		}

		customerQuery := `
			INSERT INTO customers (
				id, user_id, first_name, last_name, phone,
				preferred_size, gender, date_of_birth,
				terms_accepted, newsletter_opt_in, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		`
		_, err = tx.Exec(ctx, customerQuery,
			c.ID, c.UserID, c.FirstName, c.LastName, c.Phone,
			c.PreferredSize, c.Gender, c.DateOfBirth,
			c.TermsAccepted, c.NewsletterOptIn,
		)
		if err != nil {
			if isUniqueViolation(err, "phone") {
				return user.ErrPhoneTaken
			}
			return fmt.Errorf("insert customer: %w", err)
		}

		return nil
	})
}

// FindByID reads through the cache (cache-aside, 15 minute TTL).
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	cacheKey := fmt.Sprintf("user:%s", id.String())

	var cached user.User
	found, err := r.cache.Get(ctx, cacheKey, &cached)
	if err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, u, 15*time.Minute)

	return u, nil
}

// FindByEmail is uncached; it only runs on login and uniqueness checks.
func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindByPhone resolves a phone-number login identifier through the
// customer profile.
func (r *postgresRepository) FindByPhone(ctx context.Context, phone string) (*user.User, error) {
	query := `
		SELECT
			u.id, u.email, u.password_hash, u.role, u.email_verified,
			u.must_change_password, u.token_version, u.created_at, u.updated_at
		FROM users u
		JOIN customers c ON c.user_id = u.id
		WHERE c.phone = $1
	`

	u, err := scanUser(r.pool.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by phone: %w", err)
	}
	return u, nil
}

// FindAll backs the admin user listing; newest accounts first.
func (r *postgresRepository) FindAll(ctx context.Context) ([]user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return users, nil
}

// ========================================
// CREDENTIAL UPDATES
// ========================================

func (r *postgresRepository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	query := `
		UPDATE users
		SET email = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, email)
	if err != nil {
		if isUniqueViolation(err, "email") {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("update email: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, must_change_password = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) UpdateCredentials(ctx context.Context, id uuid.UUID, email, passwordHash string) error {
	query := `
		UPDATE users
		SET email = $2, password_hash = $3,
		    must_change_password = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, email, passwordHash)
	if err != nil {
		if isUniqueViolation(err, "email") {
			return user.ErrEmailTaken
		}
		return fmt.Errorf("update credentials: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users
		SET email_verified = TRUE, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

// BumpTokenVersion increments token_version so every previously issued
// JWT stops validating at the auth middleware.
func (r *postgresRepository) BumpTokenVersion(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users
		SET token_version = token_version + 1, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("bump token version: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) TokenVersion(ctx context.Context, id uuid.UUID) (int, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return u.TokenVersion, nil
}

// FinalizeEmailChange commits the pending address, invalidates every
// live session and burns the user's codes atomically.
func (r *postgresRepository) FinalizeEmailChange(ctx context.Context, id uuid.UUID, newEmail string) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE users
			SET email = $2, email_verified = TRUE, token_version = token_version + 1, updated_at = NOW()
			WHERE id = $1
		`
		result, err := tx.Exec(ctx, query, id, newEmail)
		if err != nil {
			if isUniqueViolation(err, "email") {
				return user.ErrEmailTaken
			}
			return fmt.Errorf("update email: %w", err)
		}
		if result.RowsAffected() == 0 {
			return user.ErrUserNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM verification_tokens WHERE user_id = $1`, id); err != nil {
			return fmt.Errorf("burn tokens: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	cacheKey := fmt.Sprintf("user:%s", id.String())
	_ = r.cache.Delete(ctx, cacheKey)
}
