// Package storage puts uploaded files into object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// ObjectStore stores an object and returns the URL it can be fetched from.
type ObjectStore interface {
	Put(ctx context.Context, name string, body io.Reader, size int64, contentType string) (string, error)
}

// MemoryStore keeps objects in process. It backs tests and the memory store backend.
type MemoryStore struct {
	mu      sync.RWMutex
	bucket  string
	objects map[string][]byte
	types   map[string]string
}

func NewMemoryStore(bucket string) *MemoryStore {
	return &MemoryStore{
		bucket:  bucket,
		objects: map[string][]byte{},
		types:   map[string]string{},
	}
}

func (s *MemoryStore) Put(ctx context.Context, name string, body io.Reader, size int64, contentType string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", fmt.Errorf("read object %s: %w", name, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = buf.Bytes()
	s.types[name] = contentType
	return fmt.Sprintf("memory://%s/%s", s.bucket, name), nil
}

// Get returns a stored object and its content type.
func (s *MemoryStore) Get(name string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[name]
	return data, s.types[name], ok
}
