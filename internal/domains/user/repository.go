package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository covers the credential record.
type Repository interface {
	Create(ctx context.Context, u *User) error
	// CreateWithCustomer inserts the user and its customer profile in one
	// transaction.
	CreateWithCustomer(ctx context.Context, u *User, c *Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	// UpdateCredentials swaps email and password together and clears the
	// must-change flag.
	UpdateCredentials(ctx context.Context, id uuid.UUID, email, passwordHash string) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
	// BumpTokenVersion invalidates every token issued before the bump.
	BumpTokenVersion(ctx context.Context, id uuid.UUID) error
	TokenVersion(ctx context.Context, id uuid.UUID) (int, error)
	// FinalizeEmailChange swaps the email, bumps the token version and
	// burns the outstanding verification code in one transaction.
	FinalizeEmailChange(ctx context.Context, id uuid.UUID, newEmail string) error
}

type CustomerRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
}

// TokenRepository manages one-time verification codes. Replace removes
// every outstanding token for the user before inserting the new one, so a
// user holds at most one live code at a time.
type TokenRepository interface {
	Replace(ctx context.Context, t *VerificationToken) error
	FindByUserAndType(ctx context.Context, userID uuid.UUID, tokenType string) (*VerificationToken, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
