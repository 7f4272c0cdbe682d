package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/cart"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/order"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/payment"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/payment/gateway"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/user"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/cache"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/logger"
)

// fulfillLockTTL bounds how long a crashed callback can hold the
// per-user fulfillment lock.
const fulfillLockTTL = 30 * time.Second

// Config is the checkout slice of application configuration.
type Config struct {
	BaseURL  string
	Currency string
	// VerifySession turns on server-side session verification before
	// fulfillment. Off by default: the redirect is otherwise trusted.
	VerifySession bool
}

type checkoutService struct {
	gateway gateway.CheckoutGateway
	carts   cart.Repository
	users   user.Repository
	orders  order.Service
	locks   cache.Cache
	cfg     Config
}

func NewCheckoutService(
	gw gateway.CheckoutGateway,
	carts cart.Repository,
	users user.Repository,
	orders order.Service,
	locks cache.Cache,
	cfg Config,
) payment.Service {
	return &checkoutService{
		gateway: gw,
		carts:   carts,
		users:   users,
		orders:  orders,
		locks:   locks,
		cfg:     cfg,
	}
}

func (s *checkoutService) InitiateCheckout(ctx context.Context, userID uuid.UUID) (*payment.CheckoutSession, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, payment.ErrEmptyCart
	}

	items := make([]gateway.LineItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, gateway.LineItem{
			Name:        l.Name,
			Description: l.Description,
			ImageURL:    payment.AbsoluteImageURL(s.cfg.BaseURL, l.ImageURL),
			UnitAmount:  payment.MinorUnits(l.UnitPrice),
			Currency:    s.cfg.Currency,
			Quantity:    int64(l.Quantity),
		})
	}

	session, err := s.gateway.CreateSession(ctx, gateway.SessionRequest{
		LineItems:         items,
		SuccessURL:        s.cfg.BaseURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:         s.cfg.BaseURL + "/payment/cancel",
		ClientReferenceID: userID.String(),
		CustomerEmail:     u.Email,
	})
	if err != nil {
		return nil, err
	}

	return &payment.CheckoutSession{
		SessionID:   session.ID,
		RedirectURL: session.URL,
	}, nil
}

// HandleSuccess holds a short per-user lock for the whole callback, so
// two concurrent deliveries cannot interleave. The second delivery
// either waits out as locked or finds the cart already empty.
func (s *checkoutService) HandleSuccess(ctx context.Context, userID uuid.UUID, sessionID string) (*payment.SuccessResult, error) {
	lockKey := fmt.Sprintf("checkout:fulfill:%s", userID)

	acquired, err := s.locks.SetNX(ctx, lockKey, sessionID, fulfillLockTTL)
	if err != nil {
		// Degraded cache: the row locks inside fulfillment still
		// prevent duplicate orders.
		logger.Error("acquire fulfillment lock", err)
	} else if !acquired {
		// Another delivery of the same callback is mid-fulfillment.
		// Report it as already handled; the holder keeps its lock.
		return &payment.SuccessResult{AlreadyFulfilled: true}, nil
	}
	defer func() {
		_ = s.locks.Delete(context.Background(), lockKey)
	}()

	if s.cfg.VerifySession {
		session, err := s.gateway.RetrieveSession(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if !session.Paid() {
			return nil, payment.ErrPaymentNotVerified
		}
	}

	o, created, err := s.orders.FulfillFromCart(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if !created {
		return &payment.SuccessResult{AlreadyFulfilled: true}, nil
	}

	return &payment.SuccessResult{Order: o}, nil
}
