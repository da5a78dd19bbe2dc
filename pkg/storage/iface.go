package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNoObject = errors.New("storage: no object")

// Store is a key-addressed binary object store scoped to a single bucket.
type Store interface {
	// Put writes data under key with the given content type, overwriting
	// any existing object.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Exists reports whether an object is present under key.
	Exists(ctx context.Context, key string) (bool, error)
	// Get returns the full object contents, or ErrNoObject.
	Get(ctx context.Context, key string) ([]byte, error)
	// SignedURL returns a time-limited read URL for key that requires no
	// further authentication.
	SignedURL(key string, ttl time.Duration) (string, error)
	// Bucket returns the bucket identifier the store is bound to.
	Bucket() string
}
