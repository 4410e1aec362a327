package service

import "context"

// Message is a single outbound transactional email.
type Message struct {
	To      string // Recipient address.
	Subject string
	Text    string // Plain-text body.
	HTML    string // Optional HTML body, empty when text-only.
}

// Notifier defines the interface for outbound transactional mail.
// Callers treat delivery as fire-and-forget: a failed send is logged by the
// caller and never propagated or allowed to fail the primary operation.
type Notifier interface {
	// Send delivers a single message.
	Send(ctx context.Context, msg Message) error
}
