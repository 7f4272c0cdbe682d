package product

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// FilterQuery carries the storefront facet parameters. Category is
// resolved in SQL; the rest become predicates over the result set.
type FilterQuery struct {
	Category string `form:"category"`
	Color    string `form:"color"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
	Status   string `form:"status"`  // inStock | lowStock | onSale
	SortBy   string `form:"sort_by"` // priceAsc | priceDesc | latest | oldest
}

func (q FilterQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Status, validation.In("", "inStock", "lowStock", "onSale")),
		validation.Field(&q.SortBy, validation.In("", "priceAsc", "priceDesc", "latest", "oldest")),
	)
}

type SaveProductRequest struct {
	Name           string  `json:"name" binding:"required"`
	Description    string  `json:"description" binding:"required"`
	Price          string  `json:"price" binding:"required"`
	Category       string  `json:"category" binding:"required"`
	ImageURL       string  `json:"image_url"`
	Color          string  `json:"color"`
	StockQuantity  int     `json:"stock_quantity"`
	SKU            *string `json:"sku,omitempty"`
	SizeOptions    string  `json:"size_options"`
	SizeGuideURL   string  `json:"size_guide_url"`
	EstDelivery    string  `json:"estimated_delivery"`
	ReturnPolicy   string  `json:"delivery_return_policy"`
	AdditionalInfo string  `json:"additional_info"`
	Tags           string  `json:"tags"`
	IsAvailable    *bool   `json:"is_available,omitempty"`
}

func (r SaveProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Price, validation.Required, validation.By(validPrice)),
		validation.Field(&r.Category, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.StockQuantity, validation.Min(0)),
	)
}

func validPrice(value interface{}) error {
	s, _ := value.(string)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return validation.NewError("validation_price", "must be a decimal number")
	}
	if d.IsNegative() {
		return validation.NewError("validation_price", "must not be negative")
	}
	return nil
}
