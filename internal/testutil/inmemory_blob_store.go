package testutil

import (
	"context"
	"fmt"
	"sync"

	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/s3"
)

var _ s3.Service = (*InMemoryBlobStore)(nil)

// InMemoryBlobStore implements s3.Service against a map, producing the
// same s3://bucket/key location format as the real store.
type InMemoryBlobStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewInMemoryBlobStore creates a map-backed blob store
func NewInMemoryBlobStore() *InMemoryBlobStore {
	return &InMemoryBlobStore{
		objects: make(map[string][]byte),
	}
}

func (s *InMemoryBlobStore) Upload(ctx context.Context, obj *s3.Object) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	location := fmt.Sprintf("s3://%s/%s", obj.Category, obj.Key)
	s.objects[location] = obj.Data
	return location, nil
}

func (s *InMemoryBlobStore) Get(ctx context.Context, location string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.objects[location]
	if !exists {
		return nil, ierr.NewErrorf("object not found: %s", location).
			Mark(ierr.ErrNotFound)
	}
	return data, nil
}

func (s *InMemoryBlobStore) GetPresignedUrl(ctx context.Context, location string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.objects[location]; !exists {
		return "", ierr.NewErrorf("object not found: %s", location).
			Mark(ierr.ErrNotFound)
	}
	return fmt.Sprintf("https://blob.test/%s", location), nil
}

func (s *InMemoryBlobStore) Exists(ctx context.Context, location string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.objects[location]
	return exists, nil
}

// Clear drops every stored object
func (s *InMemoryBlobStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = make(map[string][]byte)
}
