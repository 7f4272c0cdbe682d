package contact

import "context"

// Service forwards contact-form submissions to the support inbox.
// Delivery failure is surfaced: the mail is the action itself, not a
// side effect.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) error
}
