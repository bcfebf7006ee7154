package events

import "context"

// NoOpPublisher is a publisher that does nothing. It is used when no queue is configured.
type NoOpPublisher struct{}

// Publish does nothing.
func (p NoOpPublisher) Publish(ctx context.Context, message Message) error {
	return nil
}
