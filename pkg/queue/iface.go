package queue

import "context"

// Publisher sends messages to a single pre-configured topic. Delivery to
// consumers is at-least-once; callers must tolerate duplicate processing.
type Publisher interface {
	// Publish sends data and blocks until the broker acknowledges
	// acceptance, returning the broker-assigned message id.
	Publish(ctx context.Context, data []byte) (string, error)
}
