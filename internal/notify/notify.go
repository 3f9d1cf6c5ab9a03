// Package notify delivers best-effort text messages to an operator channel.
package notify

import "context"

// Sink sends a text message to an external notification channel. Delivery is
// best effort: callers log failures and move on, they never retry or
// propagate them.
type Sink interface {
	Send(ctx context.Context, text string) error
}
