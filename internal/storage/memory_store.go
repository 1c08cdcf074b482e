package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStore is an in-process AssetStore used in development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

func NewMemoryStore(baseURL string) *MemoryStore {
	if baseURL == "" {
		baseURL = "http://localhost/assets"
	}
	return &MemoryStore{baseURL: baseURL, objects: make(map[string]memoryObject)}
}

func (s *MemoryStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (Asset, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return Asset{}, fmt.Errorf("read upload: %w", err)
	}
	s.mu.Lock()
	s.objects[key] = memoryObject{data: buf.Bytes(), contentType: contentType}
	s.mu.Unlock()
	return Asset{URL: JoinURL(s.baseURL, "memory", key), ID: key}, nil
}

// Delete is idempotent, like RemoveObject on a missing key.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.objects, id)
	s.mu.Unlock()
	return nil
}

// Has reports whether an object is stored under key.
func (s *MemoryStore) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok
}

// Len returns the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
