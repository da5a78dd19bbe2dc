package recognition

import "context"

// Segment is one recognized portion of an audio stream, carrying only the
// top alternative for that portion.
type Segment struct {
	Transcript string
	Confidence float32
}

// Recognizer transcribes a stored audio object referenced by URI. The call
// may block for a long time; callers bound it with a context deadline.
type Recognizer interface {
	Recognize(ctx context.Context, audioURI string) ([]Segment, error)
}
