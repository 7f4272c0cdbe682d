package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCustomerNotFound = errors.New("customer profile not found")
	ErrTokenNotFound    = errors.New("verification token not found")

	ErrEmailTaken = errors.New("email is already registered")
	ErrPhoneTaken = errors.New("phone number is already registered")
)

// Service-level errors
var (
	ErrInvalidCredentials = errors.New("invalid identifier or password")

	// ErrAccountDisabled is deliberately distinct from ErrInvalidCredentials:
	// clients use it to offer a "resend verification code" affordance.
	ErrAccountDisabled = errors.New("account is not yet verified, please confirm your email address")

	ErrInvalidOTP       = errors.New("invalid or expired OTP")
	ErrAlreadyVerified  = errors.New("account is already verified")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrWrongPassword    = errors.New("current password is incorrect")
)
