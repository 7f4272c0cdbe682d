package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Cart and wishlist rows reference it;
// order snapshots copy its text so catalog edits never rewrite history.
type Product struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	Category       string          `json:"category"`
	ImageURL       string          `json:"image_url"`
	Color          string          `json:"color"`
	StockQuantity  int             `json:"stock_quantity"`
	SKU            *string         `json:"sku,omitempty"`
	SizeOptions    string          `json:"size_options,omitempty"`
	SizeGuideURL   string          `json:"size_guide_url,omitempty"`
	EstDelivery    string          `json:"estimated_delivery,omitempty"`
	ReturnPolicy   string          `json:"delivery_return_policy,omitempty"`
	AdditionalInfo string          `json:"additional_info,omitempty"`
	Tags           string          `json:"tags,omitempty"`
	IsAvailable    bool            `json:"is_available"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// InStock reports whether customers can add the product to a cart.
func (p *Product) InStock() bool {
	return p.IsAvailable && p.StockQuantity > 0
}
