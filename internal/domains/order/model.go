package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusProcessing      = "PROCESSING"
	StatusCancelled       = "CANCELLED"
	StatusReturnRequested = "RETURN_REQUESTED"
)

// Order is an append-mostly fulfillment record. ItemsSnapshot is
// denormalized text, so later catalog edits and deletions never change
// what a past order says was bought.
type Order struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	OrderDate        time.Time       `json:"order_date"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Status           string          `json:"status"`
	ItemsSnapshot    string          `json:"items_snapshot"`
	ShippingSnapshot string          `json:"shipping_snapshot"`
	GatewaySessionID *string         `json:"gateway_session_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
