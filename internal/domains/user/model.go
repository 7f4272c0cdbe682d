package user

import (
	"time"

	"github.com/google/uuid"
)

// Roles
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// Verification token purposes
const (
	TokenRegistration  = "REGISTRATION"
	TokenPasswordReset = "PASSWORD_RESET"
	TokenNewEmail      = "NEW_EMAIL_VERIFICATION"
)

// User is the credential record. Email doubles as the login identifier;
// customers may alternatively log in with the phone number on their profile.
type User struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Email              string    `json:"email" db:"email"`
	PasswordHash       string    `json:"-" db:"password_hash"`
	Role               string    `json:"role" db:"role"`
	EmailVerified      bool      `json:"email_verified" db:"email_verified"`
	MustChangePassword bool      `json:"must_change_password" db:"must_change_password"`
	TokenVersion       int       `json:"-" db:"token_version"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// Customer holds the 1:1 profile attached to a user account.
type Customer struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	UserID          uuid.UUID  `json:"user_id" db:"user_id"`
	FirstName       string     `json:"first_name" db:"first_name"`
	LastName        string     `json:"last_name" db:"last_name"`
	Phone           string     `json:"phone" db:"phone"`
	PreferredSize   *string    `json:"preferred_size,omitempty" db:"preferred_size"`
	Gender          *string    `json:"gender,omitempty" db:"gender"`
	DateOfBirth     *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	TermsAccepted   bool       `json:"terms_accepted" db:"terms_accepted"`
	NewsletterOptIn bool       `json:"newsletter_opt_in" db:"newsletter_opt_in"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// VerificationToken is a short-lived one-time code tied to a user and a
// purpose. At most one live token per (user, purpose): issuing a new one
// deletes the priors, silently invalidating any code already in flight.
// NewEmail is set only for NEW_EMAIL_VERIFICATION and carries the address
// the code was sent to.
type VerificationToken struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Code      string    `db:"code"`
	TokenType string    `db:"token_type"`
	NewEmail  *string   `db:"new_email"`
	IssuedAt  time.Time `db:"issued_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

// IsExpired reports whether the token's validity window has passed.
func (t *VerificationToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
