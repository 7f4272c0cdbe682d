package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/cart"
	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/order"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/database"
	"github.com/kodalibharatheswar/AnviBoutique/pkg/logger"
)

// shippingPlaceholder stands in until address selection joins checkout.
const shippingPlaceholder = "Shipping Address: Pending Address Selection - Mock Data for Demo"

type orderService struct {
	pool  *pgxpool.Pool
	repo  order.Repository
	carts cart.Repository
}

func NewOrderService(pool *pgxpool.Pool, repo order.Repository, carts cart.Repository) order.Service {
	return &orderService{pool: pool, repo: repo, carts: carts}
}

// FulfillFromCart runs read-cart, compute-total, insert-order and
// clear-cart in one transaction with the cart rows locked. Two
// concurrent callbacks for the same user serialize on the row locks;
// the loser finds an empty cart and no-ops.
func (s *orderService) FulfillFromCart(ctx context.Context, userID uuid.UUID, gatewaySessionID string) (*order.Order, bool, error) {
	var created *order.Order

	err := database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		lines, err := s.carts.LinesForUpdateTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		if len(lines) == 0 {
			// Duplicate callback delivery: the first one already
			// converted this cart.
			return nil
		}

		var sessionID *string
		if gatewaySessionID != "" {
			sessionID = &gatewaySessionID
		}

		o := &order.Order{
			ID:               uuid.New(),
			UserID:           userID,
			OrderDate:        time.Now(),
			TotalAmount:      order.Total(lines),
			Status:           order.StatusProcessing,
			ItemsSnapshot:    order.Snapshot(lines),
			ShippingSnapshot: shippingPlaceholder,
			GatewaySessionID: sessionID,
		}

		if err := s.repo.CreateTx(ctx, tx, o); err != nil {
			return err
		}
		if err := s.carts.ClearTx(ctx, tx, userID); err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if created == nil {
		logger.Info("duplicate fulfillment callback ignored", map[string]interface{}{
			"user_id":    userID.String(),
			"session_id": gatewaySessionID,
		})
		return nil, false, nil
	}

	return created, true, nil
}

func (s *orderService) ListMine(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	orders, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []order.Order{}
	}
	return orders, nil
}

func (s *orderService) Cancel(ctx context.Context, userID, orderID uuid.UUID) error {
	return s.transition(ctx, userID, orderID, order.StatusCancelled)
}

func (s *orderService) RequestReturn(ctx context.Context, userID, orderID uuid.UUID) error {
	return s.transition(ctx, userID, orderID, order.StatusReturnRequested)
}

// transition moves an order out of PROCESSING on behalf of its owner.
// No inventory or refund side effects are attached.
func (s *orderService) transition(ctx context.Context, userID, orderID uuid.UUID, to string) error {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o.UserID != userID {
		return order.ErrNotOwner
	}

	return s.repo.UpdateStatus(ctx, orderID, order.StatusProcessing, to)
}

func (s *orderService) ListAll(ctx context.Context) ([]order.Order, error) {
	return s.repo.FindAll(ctx)
}

func (s *orderService) AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	if err := (order.UpdateStatusRequest{Status: status}).Validate(); err != nil {
		return err
	}
	return s.repo.SetStatus(ctx, orderID, status)
}
