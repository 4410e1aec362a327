package service

import "context"

// CreateIntentInput carries the parameters for a payment intent.
type CreateIntentInput struct {
	AmountCents   int64  // Amount in the currency's smallest unit.
	Currency      string // ISO currency code, e.g. "usd".
	PaymentMethod string // Provider-side payment method reference.
	Description   string
}

// PaymentIntent is the provider's view of a created intent. The system only
// records the ID and flips the appointment's payment status; refunds and
// webhooks are the provider's concern.
type PaymentIntent struct {
	ID     string
	Status string
}

// PaymentProcessor defines the interface for third-party payment capture.
type PaymentProcessor interface {
	// CreateIntent creates and confirms a payment intent with the provider.
	CreateIntent(ctx context.Context, input CreateIntentInput) (*PaymentIntent, error)
}
