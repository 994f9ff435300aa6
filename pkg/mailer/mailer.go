// Package mailer delivers plain-text notification email. Delivery is
// fire-and-forget from the caller's perspective; senders report errors but
// the engine never retries or rolls back on failure.
package mailer

import "context"

// Message is a single outbound email.
type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// Mailer sends notification messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
