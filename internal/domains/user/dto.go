package user

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// PhonePattern decides whether a login identifier is treated as a phone
// number and resolved through the customer profile.
var PhonePattern = regexp.MustCompile(`^[+]?[0-9]{10,15}$`)

// ========================================
// AUTH DTOs
// ========================================

type RegisterRequest struct {
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	PreferredSize   string `json:"preferred_size,omitempty"`
	Gender          string `json:"gender,omitempty"`
	DateOfBirth     string `json:"date_of_birth,omitempty"` // yyyy-mm-dd
	TermsAccepted   bool   `json:"terms_accepted"`
	NewsletterOptIn bool   `json:"newsletter_opt_in"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.ConfirmPassword,
			validation.Required.Error("password confirmation is required"),
		),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Phone,
			validation.Required.Error("phone is required"),
			validation.Match(PhonePattern).Error("phone must be 10-15 digits with optional leading +"),
		),
		validation.Field(&r.DateOfBirth,
			validation.When(r.DateOfBirth != "", validation.Date("2006-01-02")),
		),
	)
}

type LoginRequest struct {
	// Identifier is the email address or, when it matches PhonePattern,
	// the phone number on the customer profile.
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         UserDTO   `json:"user"`
}

type VerifyOTPRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Code       string `json:"code" binding:"required"`
}

func (r VerifyOTPRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier, validation.Required),
		validation.Field(&r.Code, validation.Required, validation.Length(6, 6)),
	)
}

type ResendVerificationRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

func (r ResendVerificationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier, validation.Required),
	)
}

type ForgotPasswordRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

func (r ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier, validation.Required),
	)
}

type ResetPasswordRequest struct {
	Identifier      string `json:"identifier" binding:"required"`
	Code            string `json:"code" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier, validation.Required),
		validation.Field(&r.Code, validation.Required, validation.Length(6, 6)),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 128)),
		validation.Field(&r.ConfirmPassword, validation.Required),
	)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 128)),
		validation.Field(&r.ConfirmPassword, validation.Required),
	)
}

// ========================================
// EMAIL CHANGE DTOs
// ========================================

type InitiateEmailChangeRequest struct {
	NewEmail string `json:"new_email" binding:"required"`
}

func (r InitiateEmailChangeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NewEmail, validation.Required, is.Email),
	)
}

type FinalizeEmailChangeRequest struct {
	NewEmail string `json:"new_email" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

func (r FinalizeEmailChangeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NewEmail, validation.Required, is.Email),
		validation.Field(&r.Code, validation.Required, validation.Length(6, 6)),
	)
}

// UpdateCredentialsRequest rotates the admin bootstrap credentials; same
// code path as any other user.
type UpdateCredentialsRequest struct {
	NewEmail    string `json:"new_email" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (r UpdateCredentialsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NewEmail, validation.Required, is.Email),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 128)),
	)
}

// ========================================
// PROFILE DTOs
// ========================================

type UpdateProfileRequest struct {
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Phone           string `json:"phone,omitempty"`
	PreferredSize   string `json:"preferred_size,omitempty"`
	Gender          string `json:"gender,omitempty"`
	NewsletterOptIn *bool  `json:"newsletter_opt_in,omitempty"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.When(r.FirstName != "", validation.Length(1, 100))),
		validation.Field(&r.LastName, validation.When(r.LastName != "", validation.Length(1, 100))),
		validation.Field(&r.Phone,
			validation.When(r.Phone != "",
				validation.Match(PhonePattern).Error("phone must be 10-15 digits with optional leading +"),
			),
		),
	)
}

// UserDTO is the public user representation.
type UserDTO struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	EmailVerified      bool      `json:"email_verified"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:                 u.ID,
		Email:              u.Email,
		Role:               u.Role,
		EmailVerified:      u.EmailVerified,
		MustChangePassword: u.MustChangePassword,
		CreatedAt:          u.CreatedAt,
	}
}

// ProfileDTO joins the credential record with the customer profile.
type ProfileDTO struct {
	User     UserDTO   `json:"user"`
	Customer *Customer `json:"customer,omitempty"`
}
