package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/assurly/assurly/internal/domain/quote"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/types"
)

// InMemoryQuoteStore implements quote.Repository
type InMemoryQuoteStore struct {
	*InMemoryStore[*quote.Quote]
	mu sync.Mutex
}

// NewInMemoryQuoteStore creates a new in-memory quote repository
func NewInMemoryQuoteStore() *InMemoryQuoteStore {
	return &InMemoryQuoteStore{
		InMemoryStore: NewInMemoryStore[*quote.Quote](),
	}
}

func (m *InMemoryQuoteStore) Create(ctx context.Context, q *quote.Quote) error {
	if q == nil {
		return ierr.NewError("quote cannot be nil").Mark(ierr.ErrValidation)
	}

	if err := m.InMemoryStore.Create(ctx, q.ID, q); err != nil {
		return ierr.NewErrorf("quote %s already exists", q.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (m *InMemoryQuoteStore) Get(ctx context.Context, id string) (*quote.Quote, error) {
	q, err := m.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("quote %s not found", id).Mark(ierr.ErrNotFound)
	}
	return q, nil
}

// Update applies the write only when the stored status still equals
// expected, mirroring the guarded UPDATE of the real repository.
func (m *InMemoryQuoteStore) Update(ctx context.Context, q *quote.Quote, expected types.QuoteStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, err := m.InMemoryStore.Get(ctx, q.ID)
	if err != nil {
		return ierr.NewErrorf("quote %s not found", q.ID).Mark(ierr.ErrNotFound)
	}

	if stored.Status != expected {
		return ierr.NewErrorf("quote %s was modified concurrently", q.ID).
			Mark(ierr.ErrVersionConflict)
	}

	q.UpdatedAt = time.Now().UTC()
	return m.InMemoryStore.Update(ctx, q.ID, q)
}

func (m *InMemoryQuoteStore) ListByOwner(ctx context.Context, ownerID string) ([]*quote.Quote, error) {
	return m.InMemoryStore.List(ctx, ownerID,
		func(_ context.Context, q *quote.Quote, filter interface{}) bool {
			return q.OwnerID == filter.(string)
		},
		func(i, j *quote.Quote) bool {
			return i.CreatedAt.After(j.CreatedAt)
		})
}
