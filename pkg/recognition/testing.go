package recognition

import (
	"context"
	"sync"
	"time"
)

// TestRecognizer is a canned Recognizer for tests. If Delay is set it waits
// that long before answering, honoring context cancellation.
type TestRecognizer struct {
	Segments []Segment
	Err      error
	Delay    time.Duration

	mu   sync.Mutex
	uris []string
}

func (r *TestRecognizer) Recognize(ctx context.Context, audioURI string) ([]Segment, error) {
	r.mu.Lock()
	r.uris = append(r.uris, audioURI)
	r.mu.Unlock()

	if r.Delay > 0 {
		select {
		case <-time.After(r.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Segments, nil
}

// Calls returns the audio URIs recognized so far.
func (r *TestRecognizer) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.uris...)
}
