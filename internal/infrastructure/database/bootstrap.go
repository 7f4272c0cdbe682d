package database

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/kodalibharatheswar/AnviBoutique/internal/config"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/logger"
)

// schema is applied at startup. Statements are idempotent so repeated boots
// against an existing database are safe.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('CUSTOMER', 'ADMIN')),
		email_verified BOOLEAN NOT NULL DEFAULT FALSE,
		must_change_password BOOLEAN NOT NULL DEFAULT FALSE,
		token_version INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone TEXT NOT NULL UNIQUE,
		preferred_size TEXT,
		gender TEXT,
		date_of_birth DATE,
		terms_accepted BOOLEAN NOT NULL DEFAULT FALSE,
		newsletter_opt_in BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS verification_tokens (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		code CHAR(6) NOT NULL,
		token_type TEXT NOT NULL CHECK (token_type IN ('REGISTRATION', 'PASSWORD_RESET', 'NEW_EMAIL_VERIFICATION')),
		new_email TEXT,
		issued_at TIMESTAMPTZ NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		UNIQUE (user_id, token_type)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		price NUMERIC(12,2) NOT NULL,
		category TEXT NOT NULL,
		image_url TEXT,
		color TEXT,
		stock_quantity INT NOT NULL DEFAULT 0,
		sku TEXT UNIQUE,
		size_options TEXT,
		size_guide_url TEXT,
		estimated_delivery TEXT,
		delivery_return_policy TEXT,
		additional_info TEXT,
		tags TEXT,
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		quantity INT NOT NULL CHECK (quantity > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS wishlist_items (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		product_id UUID NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		order_date TIMESTAMPTZ NOT NULL,
		total_amount NUMERIC(12,2) NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('PROCESSING', 'CANCELLED', 'RETURN_REQUESTED')),
		items_snapshot TEXT NOT NULL,
		shipping_snapshot TEXT NOT NULL,
		gateway_session_id TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user_date ON orders(user_id, order_date DESC)`,
}

// Bootstrap applies the schema and seeds the back-office admin account.
func (db *PostgresDB) Bootstrap(ctx context.Context, adminCfg config.AdminConfig) error {
	for _, stmt := range schema {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	return db.seedAdmin(ctx, adminCfg)
}

// seedAdmin creates the bootstrap admin row on first run. The account uses
// the same login path as any other user; must_change_password forces
// rotation of the documented default.
func (db *PostgresDB) seedAdmin(ctx context.Context, adminCfg config.AdminConfig) error {
	var count int
	err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = 'ADMIN'`).Scan(&count)
	if err != nil {
		return fmt.Errorf("count admin users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminCfg.DefaultPassword), 12)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role, email_verified, must_change_password)
		VALUES (gen_random_uuid(), $1, $2, 'ADMIN', TRUE, TRUE)
		ON CONFLICT (email) DO NOTHING
	`, adminCfg.Email, string(hash))
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	logger.Info("seeded bootstrap admin account", map[string]interface{}{
		"email": adminCfg.Email,
	})
	return nil
}
