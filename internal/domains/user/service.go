package user

import (
	"context"

	"github.com/google/uuid"
)

// Service is the identity and verification flow.
type Service interface {
	// Register creates an unverified account with its customer profile
	// and mails a registration code.
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)
	// Login authenticates by email or phone identifier. An unverified
	// non-admin account fails with ErrAccountDisabled, not
	// ErrInvalidCredentials.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginResponse, error)

	VerifyRegistration(ctx context.Context, req VerifyOTPRequest) error
	ResendVerification(ctx context.Context, req ResendVerificationRequest) error

	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	// ResetPassword verifies the code and rotates the password in one
	// call; the code is burned whether it was expired or consumed.
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error

	InitiateEmailChange(ctx context.Context, userID uuid.UUID, req InitiateEmailChangeRequest) error
	FinalizeEmailChange(ctx context.Context, userID uuid.UUID, req FinalizeEmailChangeRequest) error

	// UpdateCredentials rotates email and password together and clears
	// the forced-change flag left by the seeded admin row.
	UpdateCredentials(ctx context.Context, userID uuid.UUID, req UpdateCredentialsRequest) (*LoginResponse, error)

	Profile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*ProfileDTO, error)

	// ListAll backs the admin user view.
	ListAll(ctx context.Context) ([]UserDTO, error)

	// TokenVersion feeds the auth middleware's session invalidation
	// check.
	TokenVersion(ctx context.Context, userID uuid.UUID) (int, error)
}
