package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/user"
	"github.com/kodalibharatheswar/AnviBoutique/internal/infrastructure/email"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/jwt"
)

// --- mocks ---

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserRepo) CreateWithCustomer(ctx context.Context, u *user.User, c *user.Customer) error {
	return m.Called(ctx, u, c).Error(0)
}
func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, _ := args.Get(0).(*user.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, e string) (*user.User, error) {
	args := m.Called(ctx, e)
	if u, _ := args.Get(0).(*user.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) FindByPhone(ctx context.Context, p string) (*user.User, error) {
	args := m.Called(ctx, p)
	if u, _ := args.Get(0).(*user.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) FindAll(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if us, _ := args.Get(0).([]user.User); us != nil {
		return us, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) UpdateEmail(ctx context.Context, id uuid.UUID, e string) error {
	return m.Called(ctx, id, e).Error(0)
}
func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, h string) error {
	return m.Called(ctx, id, h).Error(0)
}
func (m *mockUserRepo) UpdateCredentials(ctx context.Context, id uuid.UUID, e, h string) error {
	return m.Called(ctx, id, e, h).Error(0)
}
func (m *mockUserRepo) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockUserRepo) BumpTokenVersion(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockUserRepo) TokenVersion(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}
func (m *mockUserRepo) FinalizeEmailChange(ctx context.Context, id uuid.UUID, e string) error {
	return m.Called(ctx, id, e).Error(0)
}

type mockCustomerRepo struct{ mock.Mock }

func (m *mockCustomerRepo) FindByUserID(ctx context.Context, id uuid.UUID) (*user.Customer, error) {
	args := m.Called(ctx, id)
	if c, _ := args.Get(0).(*user.Customer); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCustomerRepo) Update(ctx context.Context, c *user.Customer) error {
	return m.Called(ctx, c).Error(0)
}

type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) Replace(ctx context.Context, t *user.VerificationToken) error {
	return m.Called(ctx, t).Error(0)
}
func (m *mockTokenRepo) FindByUserAndType(ctx context.Context, id uuid.UUID, tt string) (*user.VerificationToken, error) {
	args := m.Called(ctx, id, tt)
	if t, _ := args.Get(0).(*user.VerificationToken); t != nil {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockTokenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockTokenRepo) DeleteByUserID(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendOTP(ctx context.Context, to string, purpose email.OTPPurpose, code string, minutes int) error {
	return m.Called(ctx, to, purpose, code, minutes).Error(0)
}
func (m *mockNotifier) SendContact(ctx context.Context, name, from, msg string) error {
	return m.Called(ctx, name, from, msg).Error(0)
}

// --- builder ---

func newService(repo *mockUserRepo, customers *mockCustomerRepo, tokens *mockTokenRepo, notifier *mockNotifier) user.Service {
	return NewUserService(repo, customers, tokens, notifier, jwt.NewManager("test-secret", 15, 168), 5*time.Minute)
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// --- Register ---

func TestRegister_PasswordMismatch(t *testing.T) {
	svc := newService(&mockUserRepo{}, &mockCustomerRepo{}, &mockTokenRepo{}, &mockNotifier{})

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:           "a@b.in",
		Password:        "password123",
		ConfirmPassword: "password124",
		FirstName:       "Anvi",
		LastName:        "K",
		Phone:           "+919876543210",
	})

	assert.ErrorIs(t, err, user.ErrPasswordMismatch)
}

func TestRegister_InvalidPhoneRejected(t *testing.T) {
	svc := newService(&mockUserRepo{}, &mockCustomerRepo{}, &mockTokenRepo{}, &mockNotifier{})

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:           "a@b.in",
		Password:        "password123",
		ConfirmPassword: "password123",
		FirstName:       "Anvi",
		LastName:        "K",
		Phone:           "12345",
	})

	require.Error(t, err)
}

func TestRegister_CreatesUnverifiedAccountAndIssuesCode(t *testing.T) {
	repo := &mockUserRepo{}
	tokens := &mockTokenRepo{}
	notifier := &mockNotifier{}

	repo.On("CreateWithCustomer", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	tokens.On("Replace", mock.Anything, mock.MatchedBy(func(tok *user.VerificationToken) bool {
		return tok.TokenType == user.TokenRegistration && len(tok.Code) == 6
	})).Return(nil)
	notifier.On("SendOTP", mock.Anything, "a@b.in", email.PurposeRegistration, mock.Anything, 5).Return(nil).Maybe()

	svc := newService(repo, &mockCustomerRepo{}, tokens, notifier)

	dto, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:           "a@b.in",
		Password:        "password123",
		ConfirmPassword: "password123",
		FirstName:       "Anvi",
		LastName:        "K",
		Phone:           "+919876543210",
		TermsAccepted:   true,
	})

	require.NoError(t, err)
	assert.False(t, dto.EmailVerified)
	assert.Equal(t, user.RoleCustomer, dto.Role)
	repo.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestRegister_DuplicateEmailCreatesNothing(t *testing.T) {
	repo := &mockUserRepo{}
	tokens := &mockTokenRepo{}

	repo.On("CreateWithCustomer", mock.Anything, mock.Anything, mock.Anything).Return(user.ErrEmailTaken)

	svc := newService(repo, &mockCustomerRepo{}, tokens, &mockNotifier{})

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:           "taken@b.in",
		Password:        "password123",
		ConfirmPassword: "password123",
		FirstName:       "Anvi",
		LastName:        "K",
		Phone:           "+919876543210",
		TermsAccepted:   true,
	})

	assert.ErrorIs(t, err, user.ErrEmailTaken)
	tokens.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

func TestRegister_DuplicatePhoneCreatesNothing(t *testing.T) {
	repo := &mockUserRepo{}
	tokens := &mockTokenRepo{}

	repo.On("CreateWithCustomer", mock.Anything, mock.Anything, mock.Anything).Return(user.ErrPhoneTaken)

	svc := newService(repo, &mockCustomerRepo{}, tokens, &mockNotifier{})

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:           "a@b.in",
		Password:        "password123",
		ConfirmPassword: "password123",
		FirstName:       "Anvi",
		LastName:        "K",
		Phone:           "+919876543210",
		TermsAccepted:   true,
	})

	assert.ErrorIs(t, err, user.ErrPhoneTaken)
	tokens.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}

// --- Resend verification ---

func TestResendVerification_ReissuesFreshCode(t *testing.T) {
	repo := &mockUserRepo{}
	tokens := &mockTokenRepo{}
	notifier := &mockNotifier{}
	userID := uuid.New()

	repo.On("FindByEmail", mock.Anything, "a@b.in").Return(&user.User{
		ID:    userID,
		Email: "a@b.in",
		Role:  user.RoleCustomer,
	}, nil)
	// Replace drops every outstanding code before inserting the new one,
	// so the previous code stops working the moment this returns.
	tokens.On("Replace", mock.Anything, mock.MatchedBy(func(tok *user.VerificationToken) bool {
		return tok.UserID == userID && tok.TokenType == user.TokenRegistration && len(tok.Code) == 6
	})).Return(nil)
	notifier.On("SendOTP", mock.Anything, "a@b.in", email.PurposeRegistration, mock.Anything, 5).Return(nil).Maybe()

	svc := newService(repo, &mockCustomerRepo{}, tokens, notifier)

	err := svc.ResendVerification(context.Background(), user.ResendVerificationRequest{Identifier: "a@b.in"})

	require.NoError(t, err)
	tokens.AssertExpectations(t)
}

func TestResendVerification_AlreadyVerifiedRejected(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("FindByEmail", mock.Anything, "a@b.in").Return(&user.User{
		ID:            uuid.New(),
		Email:         "a@b.in",
		EmailVerified: true,
	}, nil)

	svc := newService(repo, &mockCustomerRepo{}, &mockTokenRepo{}, &mockNotifier{})

	err := svc.ResendVerification(context.Background(), user.ResendVerificationRequest{Identifier: "a@b.in"})

	assert.ErrorIs(t, err, user.ErrAlreadyVerified)
}

// --- Login ---

func TestLogin_UnverifiedCustomerIsDisabledNotInvalid(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("FindByEmail", mock.Anything, "a@b.in").Return(&user.User{
		ID:           uuid.New(),
		Email:        "a@b.in",
		PasswordHash: hash(t, "password123"),
		Role:         user.RoleCustomer,
	}, nil)

	svc := newService(repo, &mockCustomerRepo{}, &mockTokenRepo{}, &mockNotifier{})

	_, err := svc.Login(context.Background(), user.LoginRequest{Identifier: "a@b.in", Password: "password123"})

	assert.ErrorIs(t, err, user.ErrAccountDisabled)
}

func TestLogin_UnverifiedWithWrongPasswordStaysInvalid(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("FindByEmail", mock.Anything, "a@b.in").Return(&user.User{
		ID:           uuid.New(),
		PasswordHash: hash(t, "password123"),
		Role:         user.RoleCustomer,
	}, nil)

	svc := newService(repo, &mockCustomerRepo{}, &mockTokenRepo{}, &mockNotifier{})

	_, err := svc.Login(context.Background(), user.LoginRequest{Identifier: "a@b.in", Password: "wrong"})

	// The verification state must not leak past a failed password check.
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLogin_AdminSkipsVerificationGate(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("FindByEmail", mock.Anything, "admin@anviboutique.in").Return(&user.User{
		ID:           uuid.New(),
		Email:        "admin@anviboutique.in",
		PasswordHash: hash(t, "password123"),
		Role:         user.RoleAdmin,
	}, nil)

	svc := newService(repo, &mockCustomerRepo{}, &mockTokenRepo{}, &mockNotifier{})

	res, err := svc.Login(context.Background(), user.LoginRequest{Identifier: "admin@anviboutique.in", Password: "password123"})

	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
}

func TestLogin_PhoneIdentifierResolvesThroughProfile(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("FindByPhone", mock.Anything, "+919876543210").Return(&user.User{
		ID:            uuid.New(),
		Email:         "a@b.in",
		PasswordHash:  hash(t, "password123"),
		Role:          user.RoleCustomer,
		EmailVerified: true,
	}, nil)

	svc := newService(repo, &mockCustomerRepo{}, &mockTokenRepo{}, &mockNotifier{})

	res, err := svc.Login(context.Background(), user.LoginRequest{Identifier: "+919876543210", Password: "password123"})

	require.NoError(t, err)
	assert.Equal(t, "a@b.in", res.User.Email)
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestLogin_TokensCarryUserIdentity(t *testing.T) {
	userID := uuid.New()
	manager := jwt.NewManager("test-secret", 15, 168)

	repo := &mockUserRepo{}
	repo.On("FindByEmail", mock.Anything, "a@b.in").Return(&user.User{
		ID:            userID,
		Email:         "a@b.in",
		PasswordHash:  hash(t, "password123"),
		Role:          user.RoleCustomer,
		EmailVerified: true,
		TokenVersion:  3,
	}, nil)

	svc := NewUserService(repo, &mockCustomerRepo{}, &mockTokenRepo{}, &mockNotifier{}, manager, 5*time.Minute)

	res, err := svc.Login(context.Background(), user.LoginRequest{Identifier: "a@b.in", Password: "password123"})
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, user.RoleCustomer, claims.Role)
	assert.Equal(t, 3, claims.TokenVersion)

	refresh, err := manager.ValidateRefreshToken(res.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), refresh.UserID)

	// The refresh token must resolve back to the same account.
	repo.On("FindByID", mock.Anything, userID).Return(&user.User{
		ID: userID, Email: "a@b.in", Role: user.RoleCustomer, EmailVerified: true, TokenVersion: 3,
	}, nil)
	rotated, err := svc.Refresh(context.Background(), res.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "a@b.in", rotated.User.Email)
}

func TestRegister_BlankProfileFieldsStoredAsNull(t *testing.T) {
	repo := &mockUserRepo{}
	tokens := &mockTokenRepo{}
	notifier := &mockNotifier{}

	var captured *user.Customer
	repo.On("CreateWithCustomer", mock.Anything, mock.Anything, mock.MatchedBy(func(c *user.Customer) bool {
		captured = c
		return true
	})).Return(nil)
	tokens.On("Replace", mock.Anything, mock.Anything).Return(nil)
	notifier.On("SendOTP", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	svc := newService(repo, &mockCustomerRepo{}, tokens, notifier)

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:           "a@b.in",
		Password:        "password123",
		ConfirmPassword: "password123",
		FirstName:       "Anvi",
		LastName:        "K",
		Phone:           "+919876543210",
		Gender:          "FEMALE",
		TermsAccepted:   true,
	})

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Nil(t, captured.PreferredSize)
	require.NotNil(t, captured.Gender)
	assert.Equal(t, "FEMALE", *captured.Gender)
}

// --- OTP verification ---

func TestVerifyRegistration_HappyPathBurnsCode(t *testing.T) {
	userID := uuid.New()
	tokenID := uuid.New()

	repo := &mockUserRepo{}
	repo.On("FindByEmail", mock.Anything, "a@b.in").Return(&user.User{ID: userID, Email: "a@b.in", Role: user.RoleCustomer}, nil)
	repo.On("MarkVerified", mock.Anything, userID).Return(nil)

	tokens := &mockTokenRepo{}
	tokens.On("FindByUserAndType", mock.Anything, userID, user.TokenRegistration).Return(&user.VerificationToken{
		ID:        tokenID,
		UserID:    userID,
		Code:      "123456",
		TokenType: user.TokenRegistration,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}, nil)
	tokens.On("Delete", mock.Anything, tokenID).Return(nil)

	svc := newService(repo, &mockCustomerRepo{}, tokens, &mockNotifier{})

	err := svc.VerifyRegistration(context.Background(), user.VerifyOTPRequest{Identifier: "a@b.in", Code: "123456"})

	require.NoError(t, err)
	tokens.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestVerifyRegistration_ExpiredCodeIsDeletedAndRejected(t *testing.T) {
	userID := uuid.New()
	tokenID := uuid.New()

	repo := &mockUserRepo{}
	repo.On("FindByEmail", mock.Anything, "a@b.in").Return(&user.User{ID: userID, Email: "a@b.in", Role: user.RoleCustomer}, nil)

	tokens := &mockTokenRepo{}
	tokens.On("FindByUserAndType", mock.Anything, userID, user.TokenRegistration).Return(&user.VerificationToken{
		ID:        tokenID,
		UserID:    userID,
		Code:      "123456",
		TokenType: user.TokenRegistration,
		ExpiresAt: time.Now().Add(-time.Minute),
	}, nil)
	tokens.On("Delete", mock.Anything, tokenID).Return(nil)

	svc := newService(repo, &mockCustomerRepo{}, tokens, &mockNotifier{})

	err := svc.VerifyRegistration(context.Background(), user.VerifyOTPRequest{Identifier: "a@b.in", Code: "123456"})

	assert.ErrorIs(t, err, user.ErrInvalidOTP)
	tokens.AssertCalled(t, "Delete", mock.Anything, tokenID)
	repo.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything)
}

func TestVerifyRegistration_WrongCodeKeepsStoredCode(t *testing.T) {
	userID := uuid.New()

	repo := &mockUserRepo{}
	repo.On("FindByEmail", mock.Anything, "a@b.in").Return(&user.User{ID: userID, Email: "a@b.in", Role: user.RoleCustomer}, nil)

	tokens := &mockTokenRepo{}
	tokens.On("FindByUserAndType", mock.Anything, userID, user.TokenRegistration).Return(&user.VerificationToken{
		ID:        uuid.New(),
		UserID:    userID,
		Code:      "123456",
		TokenType: user.TokenRegistration,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}, nil)

	svc := newService(repo, &mockCustomerRepo{}, tokens, &mockNotifier{})

	err := svc.VerifyRegistration(context.Background(), user.VerifyOTPRequest{Identifier: "a@b.in", Code: "999999"})

	assert.ErrorIs(t, err, user.ErrInvalidOTP)
	tokens.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestVerifyRegistration_AlreadyVerified(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("FindByEmail", mock.Anything, "a@b.in").Return(&user.User{
		ID: uuid.New(), Email: "a@b.in", Role: user.RoleCustomer, EmailVerified: true,
	}, nil)

	svc := newService(repo, &mockCustomerRepo{}, &mockTokenRepo{}, &mockNotifier{})

	err := svc.VerifyRegistration(context.Background(), user.VerifyOTPRequest{Identifier: "a@b.in", Code: "123456"})

	assert.ErrorIs(t, err, user.ErrAlreadyVerified)
}

// --- Password reset ---

func TestForgotPassword_UnknownAccountLooksIdentical(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("FindByEmail", mock.Anything, "ghost@b.in").Return(nil, user.ErrUserNotFound)

	svc := newService(repo, &mockCustomerRepo{}, &mockTokenRepo{}, &mockNotifier{})

	err := svc.ForgotPassword(context.Background(), user.ForgotPasswordRequest{Identifier: "ghost@b.in"})

	assert.NoError(t, err)
}

func TestResetPassword_RotatesPasswordAndInvalidatesSessions(t *testing.T) {
	userID := uuid.New()
	tokenID := uuid.New()

	repo := &mockUserRepo{}
	repo.On("FindByEmail", mock.Anything, "a@b.in").Return(&user.User{ID: userID, Email: "a@b.in", Role: user.RoleCustomer, EmailVerified: true}, nil)
	repo.On("UpdatePassword", mock.Anything, userID, mock.Anything).Return(nil)
	repo.On("BumpTokenVersion", mock.Anything, userID).Return(nil)

	tokens := &mockTokenRepo{}
	tokens.On("FindByUserAndType", mock.Anything, userID, user.TokenPasswordReset).Return(&user.VerificationToken{
		ID:        tokenID,
		UserID:    userID,
		Code:      "654321",
		TokenType: user.TokenPasswordReset,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}, nil)
	tokens.On("Delete", mock.Anything, tokenID).Return(nil)

	svc := newService(repo, &mockCustomerRepo{}, tokens, &mockNotifier{})

	err := svc.ResetPassword(context.Background(), user.ResetPasswordRequest{
		Identifier:      "a@b.in",
		Code:            "654321",
		NewPassword:     "newpassword1",
		ConfirmPassword: "newpassword1",
	})

	require.NoError(t, err)
	repo.AssertCalled(t, "BumpTokenVersion", mock.Anything, userID)
}

// --- Session invalidation via refresh ---

func TestRefresh_StaleTokenVersionRejected(t *testing.T) {
	userID := uuid.New()
	manager := jwt.NewManager("test-secret", 15, 168)

	stale, err := manager.GenerateRefreshToken(userID.String(), 0)
	require.NoError(t, err)

	repo := &mockUserRepo{}
	repo.On("FindByID", mock.Anything, userID).Return(&user.User{
		ID: userID, Role: user.RoleCustomer, EmailVerified: true, TokenVersion: 1,
	}, nil)

	svc := NewUserService(repo, &mockCustomerRepo{}, &mockTokenRepo{}, &mockNotifier{}, manager, 5*time.Minute)

	_, err = svc.Refresh(context.Background(), stale)

	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

// --- OTP generator ---

func TestGenerateOTP_SixDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateOTP()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.Regexp(t, `^[0-9]{6}$`, code)
	}
}
