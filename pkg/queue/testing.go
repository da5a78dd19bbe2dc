package queue

import (
	"context"
	"strconv"
	"sync"
)

// TestPublisher is an in-memory Publisher for tests.
type TestPublisher struct {
	Err error

	mu       sync.Mutex
	messages [][]byte
}

func NewTestPublisher() *TestPublisher {
	return &TestPublisher{}
}

func (p *TestPublisher) Publish(_ context.Context, data []byte) (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	p.mu.Lock()
	p.messages = append(p.messages, append([]byte(nil), data...))
	id := strconv.Itoa(len(p.messages))
	p.mu.Unlock()
	return id, nil
}

// Messages returns all published payloads in order.
func (p *TestPublisher) Messages() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]byte, len(p.messages))
	copy(out, p.messages)
	return out
}
