package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/assurly/assurly/internal/domain/document"
	ierr "github.com/assurly/assurly/internal/errors"
)

// InMemoryDocumentStore implements document.Repository
type InMemoryDocumentStore struct {
	*InMemoryStore[*document.Document]
	mu sync.Mutex
}

// NewInMemoryDocumentStore creates a new in-memory document repository
func NewInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		InMemoryStore: NewInMemoryStore[*document.Document](),
	}
}

func (m *InMemoryDocumentStore) Create(ctx context.Context, d *document.Document) error {
	if d == nil {
		return ierr.NewError("document cannot be nil").Mark(ierr.ErrValidation)
	}

	if err := m.InMemoryStore.Create(ctx, d.ID, d); err != nil {
		return ierr.NewErrorf("document %s already exists", d.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (m *InMemoryDocumentStore) Get(ctx context.Context, id string) (*document.Document, error) {
	d, err := m.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("document %s not found", id).Mark(ierr.ErrNotFound)
	}
	return d, nil
}

func (m *InMemoryDocumentStore) GetByNumber(ctx context.Context, number string) (*document.Document, error) {
	docs, err := m.InMemoryStore.List(ctx, number,
		func(_ context.Context, d *document.Document, filter interface{}) bool {
			return d.Number == filter.(string)
		}, nil)
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return nil, ierr.NewErrorf("document %s not found", number).
			Mark(ierr.ErrNotFound)
	}
	return docs[0], nil
}

func (m *InMemoryDocumentStore) ListByPolicy(ctx context.Context, policyID string) ([]*document.Document, error) {
	return m.InMemoryStore.List(ctx, policyID,
		func(_ context.Context, d *document.Document, filter interface{}) bool {
			return d.PolicyID == filter.(string)
		},
		func(i, j *document.Document) bool {
			return i.CreatedAt.Before(j.CreatedAt)
		})
}

func (m *InMemoryDocumentStore) ListActiveByPolicy(ctx context.Context, policyID string) ([]*document.Document, error) {
	return m.InMemoryStore.List(ctx, policyID,
		func(_ context.Context, d *document.Document, filter interface{}) bool {
			return d.PolicyID == filter.(string) && d.IsActive && d.Kind.IsIssued()
		},
		func(i, j *document.Document) bool {
			return i.CreatedAt.Before(j.CreatedAt)
		})
}

func (m *InMemoryDocumentStore) DeactivateByPolicy(ctx context.Context, policyID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	active, err := m.ListActiveByPolicy(ctx, policyID)
	if err != nil {
		return 0, err
	}

	for _, d := range active {
		d.IsActive = false
		d.UpdatedAt = time.Now().UTC()
		if err := m.InMemoryStore.Update(ctx, d.ID, d); err != nil {
			return 0, err
		}
	}
	return len(active), nil
}
