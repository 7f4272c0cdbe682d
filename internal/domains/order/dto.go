package order

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required,
			validation.In(StatusProcessing, StatusCancelled, StatusReturnRequested),
		),
	)
}
