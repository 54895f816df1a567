package testutil

import (
	"context"
	"time"

	"github.com/assurly/assurly/internal/domain/vehicle"
	ierr "github.com/assurly/assurly/internal/errors"
)

// InMemoryVehicleStore implements vehicle.Repository
type InMemoryVehicleStore struct {
	*InMemoryStore[*vehicle.Vehicle]
}

// NewInMemoryVehicleStore creates a new in-memory vehicle repository
func NewInMemoryVehicleStore() *InMemoryVehicleStore {
	return &InMemoryVehicleStore{
		InMemoryStore: NewInMemoryStore[*vehicle.Vehicle](),
	}
}

func (m *InMemoryVehicleStore) Create(ctx context.Context, v *vehicle.Vehicle) error {
	if v == nil {
		return ierr.NewError("vehicle cannot be nil").Mark(ierr.ErrValidation)
	}

	if err := m.InMemoryStore.Create(ctx, v.ID, v); err != nil {
		return ierr.NewErrorf("vehicle %s already exists", v.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (m *InMemoryVehicleStore) Get(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	v, err := m.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("vehicle %s not found", id).Mark(ierr.ErrNotFound)
	}
	return v, nil
}

func (m *InMemoryVehicleStore) Update(ctx context.Context, v *vehicle.Vehicle) error {
	v.UpdatedAt = time.Now().UTC()
	if err := m.InMemoryStore.Update(ctx, v.ID, v); err != nil {
		return ierr.NewErrorf("vehicle %s not found", v.ID).Mark(ierr.ErrNotFound)
	}
	return nil
}

func (m *InMemoryVehicleStore) ListByOwner(ctx context.Context, ownerID string) ([]*vehicle.Vehicle, error) {
	return m.InMemoryStore.List(ctx, ownerID,
		func(_ context.Context, v *vehicle.Vehicle, filter interface{}) bool {
			return v.OwnerID == filter.(string)
		},
		func(i, j *vehicle.Vehicle) bool {
			return i.CreatedAt.After(j.CreatedAt)
		})
}
