package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/cart"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/order"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/payment"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/payment/gateway"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/user"
)

// ========================================
// MOCKS
// ========================================

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateSession(ctx context.Context, req gateway.SessionRequest) (*gateway.Session, error) {
	args := m.Called(ctx, req)
	if s, _ := args.Get(0).(*gateway.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockGateway) RetrieveSession(ctx context.Context, sessionID string) (*gateway.Session, error) {
	args := m.Called(ctx, sessionID)
	if s, _ := args.Get(0).(*gateway.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCartRepo struct {
	mock.Mock
}

func (m *mockCartRepo) Upsert(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	return m.Called(ctx, userID, productID, quantity).Error(0)
}
func (m *mockCartRepo) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	return m.Called(ctx, userID, productID, quantity).Error(0)
}
func (m *mockCartRepo) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return m.Called(ctx, userID, productID).Error(0)
}
func (m *mockCartRepo) Clear(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *mockCartRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]cart.CartItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]cart.CartItem)
	return items, args.Error(1)
}
func (m *mockCartRepo) Lines(ctx context.Context, userID uuid.UUID) ([]cart.Line, error) {
	args := m.Called(ctx, userID)
	lines, _ := args.Get(0).([]cart.Line)
	return lines, args.Error(1)
}
func (m *mockCartRepo) LinesForUpdateTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]cart.Line, error) {
	args := m.Called(ctx, tx, userID)
	lines, _ := args.Get(0).([]cart.Line)
	return lines, args.Error(1)
}
func (m *mockCartRepo) ClearTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	return m.Called(ctx, tx, userID).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

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
	us, _ := args.Get(0).([]user.User)
	return us, args.Error(1)
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

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) FulfillFromCart(ctx context.Context, userID uuid.UUID, sessionID string) (*order.Order, bool, error) {
	args := m.Called(ctx, userID, sessionID)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Bool(1), args.Error(2)
}
func (m *mockOrderService) ListMine(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	args := m.Called(ctx, userID)
	os, _ := args.Get(0).([]order.Order)
	return os, args.Error(1)
}
func (m *mockOrderService) Cancel(ctx context.Context, userID, orderID uuid.UUID) error {
	return m.Called(ctx, userID, orderID).Error(0)
}
func (m *mockOrderService) RequestReturn(ctx context.Context, userID, orderID uuid.UUID) error {
	return m.Called(ctx, userID, orderID).Error(0)
}
func (m *mockOrderService) ListAll(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	os, _ := args.Get(0).([]order.Order)
	return os, args.Error(1)
}
func (m *mockOrderService) AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	return m.Called(ctx, orderID, status).Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}
func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}
func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}
func (m *mockCache) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, ttl)
	return args.Bool(0), args.Error(1)
}
func (m *mockCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// ========================================
// HELPERS
// ========================================

type checkoutMocks struct {
	gateway *mockGateway
	carts   *mockCartRepo
	users   *mockUserRepo
	orders  *mockOrderService
	locks   *mockCache
}

func newCheckout(cfg Config) (payment.Service, *checkoutMocks) {
	m := &checkoutMocks{
		gateway: &mockGateway{},
		carts:   &mockCartRepo{},
		users:   &mockUserRepo{},
		orders:  &mockOrderService{},
		locks:   &mockCache{},
	}
	svc := NewCheckoutService(m.gateway, m.carts, m.users, m.orders, m.locks, cfg)
	return svc, m
}

func price(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ========================================
// INITIATE CHECKOUT
// ========================================

func TestInitiateCheckout_EmptyCartRejected(t *testing.T) {
	svc, m := newCheckout(Config{BaseURL: "https://shop.example", Currency: "inr"})
	userID := uuid.New()

	m.users.On("FindByID", mock.Anything, userID).Return(&user.User{ID: userID, Email: "a@b.c"}, nil)
	m.carts.On("Lines", mock.Anything, userID).Return([]cart.Line{}, nil)

	_, err := svc.InitiateCheckout(context.Background(), userID)

	assert.ErrorIs(t, err, payment.ErrEmptyCart)
	m.gateway.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestInitiateCheckout_BuildsSessionFromCart(t *testing.T) {
	svc, m := newCheckout(Config{BaseURL: "https://shop.example", Currency: "inr"})
	userID := uuid.New()
	productID := uuid.New()

	m.users.On("FindByID", mock.Anything, userID).
		Return(&user.User{ID: userID, Email: "meera@example.com"}, nil)
	m.carts.On("Lines", mock.Anything, userID).Return([]cart.Line{
		{
			ProductID: productID,
			Name:      "Banarasi Silk Saree",
			ImageURL:  "/images/saree.jpg",
			UnitPrice: price("199.995"),
			Quantity:  2,
		},
	}, nil)

	m.gateway.On("CreateSession", mock.Anything, mock.MatchedBy(func(req gateway.SessionRequest) bool {
		if len(req.LineItems) != 1 {
			return false
		}
		item := req.LineItems[0]
		return item.UnitAmount == 19999 &&
			item.Quantity == 2 &&
			item.Currency == "inr" &&
			item.ImageURL == "https://shop.example/images/saree.jpg" &&
			req.SuccessURL == "https://shop.example/payment/success?session_id={CHECKOUT_SESSION_ID}" &&
			req.CancelURL == "https://shop.example/payment/cancel" &&
			req.ClientReferenceID == userID.String() &&
			req.CustomerEmail == "meera@example.com"
	})).Return(&gateway.Session{ID: "cs_test_123", URL: "https://pay.example/cs_test_123"}, nil)

	session, err := svc.InitiateCheckout(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", session.SessionID)
	assert.Equal(t, "https://pay.example/cs_test_123", session.RedirectURL)
	m.gateway.AssertExpectations(t)
}

// ========================================
// SUCCESS CALLBACK
// ========================================

func TestHandleSuccess_CreatesOrderOnce(t *testing.T) {
	svc, m := newCheckout(Config{BaseURL: "https://shop.example", Currency: "inr"})
	userID := uuid.New()
	placed := &order.Order{ID: uuid.New(), UserID: userID, Status: order.StatusProcessing}

	m.locks.On("SetNX", mock.Anything, "checkout:fulfill:"+userID.String(), "cs_1", fulfillLockTTL).
		Return(true, nil)
	m.locks.On("Delete", mock.Anything, []string{"checkout:fulfill:" + userID.String()}).
		Return(nil)
	m.orders.On("FulfillFromCart", mock.Anything, userID, "cs_1").Return(placed, true, nil)

	result, err := svc.HandleSuccess(context.Background(), userID, "cs_1")

	require.NoError(t, err)
	assert.False(t, result.AlreadyFulfilled)
	assert.Equal(t, placed.ID, result.Order.ID)
	m.locks.AssertExpectations(t)
}

func TestHandleSuccess_ConcurrentDuplicateReportsAlreadyFulfilled(t *testing.T) {
	svc, m := newCheckout(Config{})
	userID := uuid.New()

	m.locks.On("SetNX", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(false, nil)

	result, err := svc.HandleSuccess(context.Background(), userID, "cs_1")

	require.NoError(t, err)
	assert.True(t, result.AlreadyFulfilled)
	m.orders.AssertNotCalled(t, "FulfillFromCart", mock.Anything, mock.Anything, mock.Anything)
	// The holder's lock must survive: the loser never touches it.
	m.locks.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestHandleSuccess_RedeliveryReportsAlreadyFulfilled(t *testing.T) {
	svc, m := newCheckout(Config{})
	userID := uuid.New()

	m.locks.On("SetNX", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(true, nil)
	m.locks.On("Delete", mock.Anything, mock.Anything).Return(nil)
	m.orders.On("FulfillFromCart", mock.Anything, userID, "cs_1").
		Return((*order.Order)(nil), false, nil)

	result, err := svc.HandleSuccess(context.Background(), userID, "cs_1")

	require.NoError(t, err)
	assert.True(t, result.AlreadyFulfilled)
	assert.Nil(t, result.Order)
}

func TestHandleSuccess_LockErrorStillFulfills(t *testing.T) {
	svc, m := newCheckout(Config{})
	userID := uuid.New()
	placed := &order.Order{ID: uuid.New(), UserID: userID}

	m.locks.On("SetNX", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(false, assert.AnError)
	m.locks.On("Delete", mock.Anything, mock.Anything).Return(nil)
	m.orders.On("FulfillFromCart", mock.Anything, userID, "cs_1").Return(placed, true, nil)

	result, err := svc.HandleSuccess(context.Background(), userID, "cs_1")

	require.NoError(t, err)
	assert.Equal(t, placed.ID, result.Order.ID)
}

func TestHandleSuccess_VerificationRejectsUnpaidSession(t *testing.T) {
	svc, m := newCheckout(Config{VerifySession: true})
	userID := uuid.New()

	m.locks.On("SetNX", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(true, nil)
	m.locks.On("Delete", mock.Anything, mock.Anything).Return(nil)
	m.gateway.On("RetrieveSession", mock.Anything, "cs_1").
		Return(&gateway.Session{ID: "cs_1", PaymentStatus: "unpaid"}, nil)

	_, err := svc.HandleSuccess(context.Background(), userID, "cs_1")

	assert.ErrorIs(t, err, payment.ErrPaymentNotVerified)
	m.orders.AssertNotCalled(t, "FulfillFromCart", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleSuccess_VerificationAcceptsPaidSession(t *testing.T) {
	svc, m := newCheckout(Config{VerifySession: true})
	userID := uuid.New()
	placed := &order.Order{ID: uuid.New(), UserID: userID}

	m.locks.On("SetNX", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(true, nil)
	m.locks.On("Delete", mock.Anything, mock.Anything).Return(nil)
	m.gateway.On("RetrieveSession", mock.Anything, "cs_1").
		Return(&gateway.Session{ID: "cs_1", PaymentStatus: "paid"}, nil)
	m.orders.On("FulfillFromCart", mock.Anything, userID, "cs_1").Return(placed, true, nil)

	result, err := svc.HandleSuccess(context.Background(), userID, "cs_1")

	require.NoError(t, err)
	assert.Equal(t, placed.ID, result.Order.ID)
}
