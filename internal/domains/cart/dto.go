package cart

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required),
		validation.Field(&r.Quantity, validation.Min(0), validation.Max(99)),
	)
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (r UpdateQuantityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.Required, validation.Min(1), validation.Max(99)),
	)
}
