package testutil

import (
	"context"
	"time"

	"github.com/assurly/assurly/internal/domain/product"
	ierr "github.com/assurly/assurly/internal/errors"
)

// InMemoryProductStore implements product.Repository
type InMemoryProductStore struct {
	*InMemoryStore[*product.Product]
}

// NewInMemoryProductStore creates a new in-memory product repository
func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{
		InMemoryStore: NewInMemoryStore[*product.Product](),
	}
}

func (m *InMemoryProductStore) Create(ctx context.Context, p *product.Product) error {
	if p == nil {
		return ierr.NewError("product cannot be nil").Mark(ierr.ErrValidation)
	}

	if err := m.InMemoryStore.Create(ctx, p.ID, p); err != nil {
		return ierr.NewErrorf("product %s already exists", p.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (m *InMemoryProductStore) Get(ctx context.Context, id string) (*product.Product, error) {
	p, err := m.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("product %s not found", id).Mark(ierr.ErrNotFound)
	}
	return p, nil
}

func (m *InMemoryProductStore) Update(ctx context.Context, p *product.Product) error {
	p.UpdatedAt = time.Now().UTC()
	if err := m.InMemoryStore.Update(ctx, p.ID, p); err != nil {
		return ierr.NewErrorf("product %s not found", p.ID).Mark(ierr.ErrNotFound)
	}
	return nil
}

func (m *InMemoryProductStore) List(ctx context.Context) ([]*product.Product, error) {
	return m.InMemoryStore.List(ctx, nil, nil,
		func(i, j *product.Product) bool {
			return i.Name < j.Name
		})
}
