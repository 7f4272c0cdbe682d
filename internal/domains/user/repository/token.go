package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	user "github.com/kodalibharatheswar/AnviBoutique/internal/domains/user"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/database"
)

type tokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) user.TokenRepository {
	return &tokenRepository{pool: pool}
}

// Replace wipes every outstanding code for the user, then inserts the
// new one, in a single transaction. Issuing a new code therefore always
// kills older codes of every type.
func (r *tokenRepository) Replace(ctx context.Context, t *user.VerificationToken) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM verification_tokens WHERE user_id = $1`, t.UserID); err != nil {
			return fmt.Errorf("delete outstanding tokens: %w", err)
		}

		query := `
			INSERT INTO verification_tokens (
				id, user_id, code, token_type, new_email, issued_at, expires_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := tx.Exec(ctx, query,
			t.ID, t.UserID, t.Code, t.TokenType, t.NewEmail, t.IssuedAt, t.ExpiresAt,
		)
		if err != nil {
			return fmt.Errorf("insert token: %w", err)
		}

		return nil
	})
}

func (r *tokenRepository) FindByUserAndType(ctx context.Context, userID uuid.UUID, tokenType string) (*user.VerificationToken, error) {
	query := `
		SELECT id, user_id, code, token_type, new_email, issued_at, expires_at
		FROM verification_tokens
		WHERE user_id = $1 AND token_type = $2
	`

	var t user.VerificationToken
	err := r.pool.QueryRow(ctx, query, userID, tokenType).Scan(
		&t.ID,
		&t.UserID,
		&t.Code,
		&t.TokenType,
		&t.NewEmail,
		&t.IssuedAt,
		&t.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrTokenNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}

	return &t, nil
}

func (r *tokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM verification_tokens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (r *tokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM verification_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete tokens for user: %w", err)
	}
	return nil
}
