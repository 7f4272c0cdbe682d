package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/user"
	"github.com/kodalibharatheswar/AnviBoutique/internal/infrastructure/email"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/jwt"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/logger"
)

const bcryptCost = 12

type userService struct {
	repo      user.Repository
	customers user.CustomerRepository
	tokens    user.TokenRepository
	notifier  email.Notifier
	jwt       *jwt.Manager
	otpExpiry time.Duration
}

func NewUserService(
	repo user.Repository,
	customers user.CustomerRepository,
	tokens user.TokenRepository,
	notifier email.Notifier,
	jwtManager *jwt.Manager,
	otpExpiry time.Duration,
) user.Service {
	return &userService{
		repo:      repo,
		customers: customers,
		tokens:    tokens,
		notifier:  notifier,
		jwt:       jwtManager,
		otpExpiry: otpExpiry,
	}
}

// ========================================
// REGISTRATION
// ========================================

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		return nil, user.ErrPasswordMismatch
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("parse date of birth: %w", err)
		}
		dob = &parsed
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         user.RoleCustomer,
	}
	customer := &user.Customer{
		ID:              uuid.New(),
		UserID:          newUser.ID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		PreferredSize:   optional(req.PreferredSize),
		Gender:          optional(req.Gender),
		DateOfBirth:     dob,
		TermsAccepted:   req.TermsAccepted,
		NewsletterOptIn: req.NewsletterOptIn,
	}

	if err := s.repo.CreateWithCustomer(ctx, newUser, customer); err != nil {
		return nil, err
	}

	if err := s.issueOTP(ctx, newUser.ID, newUser.Email, user.TokenRegistration, nil); err != nil {
		// Account exists either way; the user can ask for a resend.
		logger.Error("send registration otp", err)
	}

	dto := newUser.ToDTO()
	return &dto, nil
}

func (s *userService) VerifyRegistration(ctx context.Context, req user.VerifyOTPRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.findByIdentifier(ctx, req.Identifier)
	if err != nil {
		return user.ErrInvalidOTP
	}
	if u.EmailVerified {
		return user.ErrAlreadyVerified
	}

	if err := s.consumeOTP(ctx, u.ID, user.TokenRegistration, req.Code); err != nil {
		return err
	}

	if err := s.repo.MarkVerified(ctx, u.ID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}

	return nil
}

func (s *userService) ResendVerification(ctx context.Context, req user.ResendVerificationRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.findByIdentifier(ctx, req.Identifier)
	if err != nil {
		// Do not reveal whether the account exists.
		return nil
	}
	if u.EmailVerified {
		return user.ErrAlreadyVerified
	}

	return s.issueOTP(ctx, u.ID, u.Email, user.TokenRegistration, nil)
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.findByIdentifier(ctx, req.Identifier)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	// The password was right, so it is safe to tell this caller the
	// account still needs verification. Admins skip the gate.
	if !u.EmailVerified && u.Role != user.RoleAdmin {
		return nil, user.ErrAccountDisabled
	}

	return s.tokenPair(u)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*user.LoginResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}
	if claims.TokenVersion < u.TokenVersion {
		return nil, user.ErrInvalidCredentials
	}

	return s.tokenPair(u)
}

// ========================================
// PASSWORD FLOWS
// ========================================

func (s *userService) ForgotPassword(ctx context.Context, req user.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.findByIdentifier(ctx, req.Identifier)
	if err != nil {
		// Same response whether or not the account exists.
		return nil
	}

	return s.issueOTP(ctx, u.ID, u.Email, user.TokenPasswordReset, nil)
}

func (s *userService) ResetPassword(ctx context.Context, req user.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req.NewPassword != req.ConfirmPassword {
		return user.ErrPasswordMismatch
	}

	u, err := s.findByIdentifier(ctx, req.Identifier)
	if err != nil {
		return user.ErrInvalidOTP
	}

	if err := s.consumeOTP(ctx, u.ID, user.TokenPasswordReset, req.Code); err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, u.ID, string(passwordHash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	// Kick every live session off the old password.
	if err := s.repo.BumpTokenVersion(ctx, u.ID); err != nil {
		return fmt.Errorf("bump token version: %w", err)
	}

	return nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, req user.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req.NewPassword != req.ConfirmPassword {
		return user.ErrPasswordMismatch
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return user.ErrWrongPassword
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(passwordHash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return s.repo.BumpTokenVersion(ctx, userID)
}

// ========================================
// EMAIL CHANGE
// ========================================

func (s *userService) InitiateEmailChange(ctx context.Context, userID uuid.UUID, req user.InitiateEmailChangeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.FindByEmail(ctx, req.NewEmail); err == nil {
		return user.ErrEmailTaken
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return err
	}

	// The code goes to the address being claimed, proving the caller
	// controls it.
	return s.issueOTP(ctx, userID, req.NewEmail, user.TokenNewEmail, &req.NewEmail)
}

func (s *userService) FinalizeEmailChange(ctx context.Context, userID uuid.UUID, req user.FinalizeEmailChangeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	t, err := s.tokens.FindByUserAndType(ctx, userID, user.TokenNewEmail)
	if err != nil {
		return user.ErrInvalidOTP
	}
	if t.NewEmail == nil || *t.NewEmail != req.NewEmail {
		return user.ErrInvalidOTP
	}
	if t.IsExpired() {
		_ = s.tokens.Delete(ctx, t.ID)
		return user.ErrInvalidOTP
	}
	if t.Code != req.Code {
		return user.ErrInvalidOTP
	}

	return s.repo.FinalizeEmailChange(ctx, userID, req.NewEmail)
}

func (s *userService) UpdateCredentials(ctx context.Context, userID uuid.UUID, req user.UpdateCredentialsRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindByEmail(ctx, req.NewEmail); err == nil && existing.ID != userID {
		return nil, user.ErrEmailTaken
	} else if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdateCredentials(ctx, userID, req.NewEmail, string(passwordHash)); err != nil {
		return nil, err
	}
	if err := s.repo.BumpTokenVersion(ctx, userID); err != nil {
		return nil, fmt.Errorf("bump token version: %w", err)
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.tokenPair(u)
}

// ========================================
// PROFILE
// ========================================

func (s *userService) Profile(ctx context.Context, userID uuid.UUID) (*user.ProfileDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &user.ProfileDTO{User: u.ToDTO()}

	c, err := s.customers.FindByUserID(ctx, userID)
	if err == nil {
		profile.Customer = c
	} else if !errors.Is(err, user.ErrCustomerNotFound) {
		return nil, err
	}
	// The seeded admin has no customer row; the profile is just thinner.

	return profile, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req user.UpdateProfileRequest) (*user.ProfileDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.customers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		c.FirstName = req.FirstName
	}
	if req.LastName != "" {
		c.LastName = req.LastName
	}
	if req.Phone != "" {
		c.Phone = req.Phone
	}
	if req.PreferredSize != "" {
		c.PreferredSize = optional(req.PreferredSize)
	}
	if req.Gender != "" {
		c.Gender = optional(req.Gender)
	}
	if req.NewsletterOptIn != nil {
		c.NewsletterOptIn = *req.NewsletterOptIn
	}

	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}

	return s.Profile(ctx, userID)
}

func (s *userService) TokenVersion(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.TokenVersion(ctx, userID)
}

func (s *userService) ListAll(ctx context.Context) ([]user.UserDTO, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]user.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, users[i].ToDTO())
	}
	return dtos, nil
}

// ========================================
// INTERNAL
// ========================================

// findByIdentifier resolves a login identifier. Anything matching the
// phone pattern goes through the customer profile, everything else is
// treated as an email.
func (s *userService) findByIdentifier(ctx context.Context, identifier string) (*user.User, error) {
	if user.PhonePattern.MatchString(identifier) {
		return s.repo.FindByPhone(ctx, identifier)
	}
	return s.repo.FindByEmail(ctx, identifier)
}

func (s *userService) tokenPair(u *user.User) (*user.LoginResponse, error) {
	accessToken, err := s.jwt.GenerateAccessToken(u.ID.String(), u.Email, u.Role, u.TokenVersion)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(u.ID.String(), u.TokenVersion)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.jwt.AccessExpiry()),
		User:         u.ToDTO(),
	}, nil
}

// issueOTP replaces any outstanding code for the user with a fresh
// 6-digit one and mails it. purpose recipient may differ from the
// account email during an email change.
func (s *userService) issueOTP(ctx context.Context, userID uuid.UUID, recipient, tokenType string, newEmail *string) error {
	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	now := time.Now()
	t := &user.VerificationToken{
		ID:        uuid.New(),
		UserID:    userID,
		Code:      code,
		TokenType: tokenType,
		NewEmail:  newEmail,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.otpExpiry),
	}

	if err := s.tokens.Replace(ctx, t); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	purpose := purposeFor(tokenType)
	minutes := int(s.otpExpiry.Minutes())
	go func() {
		if err := s.notifier.SendOTP(context.Background(), recipient, purpose, code, minutes); err != nil {
			logger.Error("send otp email", err)
		}
	}()

	return nil
}

// consumeOTP checks and burns a stored code. An expired code is deleted
// on sight; a wrong code is left in place for the remaining window.
func (s *userService) consumeOTP(ctx context.Context, userID uuid.UUID, tokenType, code string) error {
	t, err := s.tokens.FindByUserAndType(ctx, userID, tokenType)
	if err != nil {
		return user.ErrInvalidOTP
	}

	if t.IsExpired() {
		_ = s.tokens.Delete(ctx, t.ID)
		return user.ErrInvalidOTP
	}
	if t.Code != code {
		return user.ErrInvalidOTP
	}

	if err := s.tokens.Delete(ctx, t.ID); err != nil {
		return fmt.Errorf("burn otp: %w", err)
	}

	return nil
}

// optional maps an empty form value to a NULL column.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func purposeFor(tokenType string) email.OTPPurpose {
	switch tokenType {
	case user.TokenPasswordReset:
		return email.PurposePasswordReset
	case user.TokenNewEmail:
		return email.PurposeNewEmail
	default:
		return email.PurposeRegistration
	}
}

// generateOTP draws a uniform 6-digit code from crypto/rand.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
