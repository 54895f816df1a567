package testutil

import (
	"context"
	"sync"
)

// InMemorySequenceStore implements sequence.Repository. The single
// mutex serializes Next per store, which matches the linearizability
// contract of the registry.
type InMemorySequenceStore struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewInMemorySequenceStore creates a new in-memory sequence registry
func NewInMemorySequenceStore() *InMemorySequenceStore {
	return &InMemorySequenceStore{
		counters: make(map[string]int64),
	}
}

func (s *InMemorySequenceStore) Next(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters[key]++
	return s.counters[key], nil
}

func (s *InMemorySequenceStore) Current(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counters[key], nil
}

// Clear resets all counters
func (s *InMemorySequenceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters = make(map[string]int64)
}
