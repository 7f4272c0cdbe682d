package gateway

import "context"

// LineItem is one purchasable row sent to the hosted checkout page.
// UnitAmount is in the currency's minor unit (paise for INR).
type LineItem struct {
	Name        string
	Description string
	ImageURL    string
	UnitAmount  int64
	Currency    string
	Quantity    int64
}

// SessionRequest describes a hosted checkout session to create.
type SessionRequest struct {
	LineItems         []LineItem
	SuccessURL        string
	CancelURL         string
	ClientReferenceID string
	CustomerEmail     string
}

// Session is the gateway's view of a checkout. PaymentStatus is only
// populated on retrieval.
type Session struct {
	ID                string `json:"id"`
	URL               string `json:"url"`
	PaymentStatus     string `json:"payment_status"`
	AmountTotal       int64  `json:"amount_total"`
	Currency          string `json:"currency"`
	ClientReferenceID string `json:"client_reference_id"`
}

// Paid reports whether the gateway recorded a completed payment.
func (s *Session) Paid() bool {
	return s.PaymentStatus == "paid"
}

// CheckoutGateway is the hosted payment boundary. The storefront only
// creates sessions and, when verification is enabled, reads them back.
type CheckoutGateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
}
