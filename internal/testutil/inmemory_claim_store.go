package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/assurly/assurly/internal/domain/claim"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/types"
)

// InMemoryClaimStore implements claim.Repository
type InMemoryClaimStore struct {
	*InMemoryStore[*claim.Claim]
	mu sync.Mutex
}

// NewInMemoryClaimStore creates a new in-memory claim repository
func NewInMemoryClaimStore() *InMemoryClaimStore {
	return &InMemoryClaimStore{
		InMemoryStore: NewInMemoryStore[*claim.Claim](),
	}
}

func (m *InMemoryClaimStore) Create(ctx context.Context, c *claim.Claim) error {
	if c == nil {
		return ierr.NewError("claim cannot be nil").Mark(ierr.ErrValidation)
	}

	if err := m.InMemoryStore.Create(ctx, c.ID, c); err != nil {
		return ierr.NewErrorf("claim %s already exists", c.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (m *InMemoryClaimStore) Get(ctx context.Context, id string) (*claim.Claim, error) {
	c, err := m.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("claim %s not found", id).Mark(ierr.ErrNotFound)
	}
	return c, nil
}

// Update applies the write only when the stored status still equals
// expected, so the status change and the history entry land together.
func (m *InMemoryClaimStore) Update(ctx context.Context, c *claim.Claim, expected types.ClaimStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, err := m.InMemoryStore.Get(ctx, c.ID)
	if err != nil {
		return ierr.NewErrorf("claim %s not found", c.ID).Mark(ierr.ErrNotFound)
	}

	if stored.Status != expected {
		return ierr.NewErrorf("claim %s was modified concurrently", c.ID).
			Mark(ierr.ErrVersionConflict)
	}

	c.UpdatedAt = time.Now().UTC()
	return m.InMemoryStore.Update(ctx, c.ID, c)
}

func (m *InMemoryClaimStore) ListByPolicy(ctx context.Context, policyID string) ([]*claim.Claim, error) {
	return m.InMemoryStore.List(ctx, policyID,
		func(_ context.Context, c *claim.Claim, filter interface{}) bool {
			return c.PolicyID == filter.(string)
		},
		func(i, j *claim.Claim) bool {
			return i.CreatedAt.After(j.CreatedAt)
		})
}

func (m *InMemoryClaimStore) ListByOwner(ctx context.Context, ownerID string) ([]*claim.Claim, error) {
	return m.InMemoryStore.List(ctx, ownerID,
		func(_ context.Context, c *claim.Claim, filter interface{}) bool {
			return c.OwnerID == filter.(string)
		},
		func(i, j *claim.Claim) bool {
			return i.CreatedAt.After(j.CreatedAt)
		})
}

func (m *InMemoryClaimStore) ListByStatusUpdatedBefore(ctx context.Context, statuses []types.ClaimStatus, before time.Time) ([]*claim.Claim, error) {
	return m.InMemoryStore.List(ctx, nil,
		func(_ context.Context, c *claim.Claim, _ interface{}) bool {
			return lo.Contains(statuses, c.Status) && c.UpdatedAt.Before(before)
		},
		func(i, j *claim.Claim) bool {
			return i.UpdatedAt.Before(j.UpdatedAt)
		})
}
