package storage

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type TestObject struct {
	Data        []byte
	ContentType string
}

// TestStore is an in-memory Store for tests.
type TestStore struct {
	bucket  string
	mu      sync.Mutex
	objects map[string]*TestObject
	puts    map[string]int
}

func NewTestStore(bucket string) *TestStore {
	return &TestStore{
		bucket:  bucket,
		objects: make(map[string]*TestObject),
		puts:    make(map[string]int),
	}
}

func (s *TestStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	s.objects[key] = &TestObject{Data: append([]byte(nil), data...), ContentType: contentType}
	s.puts[key]++
	s.mu.Unlock()
	return nil
}

func (s *TestStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	_, ok := s.objects[key]
	s.mu.Unlock()
	return ok, nil
}

func (s *TestStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	o := s.objects[key]
	s.mu.Unlock()
	if o == nil {
		return nil, ErrNoObject
	}
	return append([]byte(nil), o.Data...), nil
}

func (s *TestStore) SignedURL(key string, ttl time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/%s/%s?expires=%d", s.bucket, key, int64(ttl.Seconds())), nil
}

func (s *TestStore) Bucket() string {
	return s.bucket
}

// Object returns the stored object for key, or nil.
func (s *TestStore) Object(key string) *TestObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[key]
}

// PutCount returns how many times key has been written.
func (s *TestStore) PutCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts[key]
}

// Len returns the number of stored objects.
func (s *TestStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
