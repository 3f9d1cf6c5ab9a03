package notify

import "context"

// NoOpSink discards every message. It is the test double for Sink.
type NoOpSink struct{}

// NewNoOp creates a new no-op sink.
func NewNoOp() Sink {
	return &NoOpSink{}
}

// Send discards the message.
func (s *NoOpSink) Send(ctx context.Context, text string) error {
	return nil
}
