package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/assurly/assurly/internal/domain/policy"
	ierr "github.com/assurly/assurly/internal/errors"
	"github.com/assurly/assurly/internal/types"
)

// InMemoryPolicyStore implements policy.Repository
type InMemoryPolicyStore struct {
	*InMemoryStore[*policy.Policy]
	mu sync.Mutex
}

// NewInMemoryPolicyStore creates a new in-memory policy repository
func NewInMemoryPolicyStore() *InMemoryPolicyStore {
	return &InMemoryPolicyStore{
		InMemoryStore: NewInMemoryStore[*policy.Policy](),
	}
}

func (m *InMemoryPolicyStore) Create(ctx context.Context, p *policy.Policy) error {
	if p == nil {
		return ierr.NewError("policy cannot be nil").Mark(ierr.ErrValidation)
	}

	if err := m.InMemoryStore.Create(ctx, p.ID, p); err != nil {
		return ierr.NewErrorf("policy %s already exists", p.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	return nil
}

func (m *InMemoryPolicyStore) Get(ctx context.Context, id string) (*policy.Policy, error) {
	p, err := m.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewErrorf("policy %s not found", id).Mark(ierr.ErrNotFound)
	}
	return p, nil
}

// Update applies the write only when the stored status still equals
// expected, mirroring the guarded UPDATE of the real repository.
func (m *InMemoryPolicyStore) Update(ctx context.Context, p *policy.Policy, expected types.PolicyStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, err := m.InMemoryStore.Get(ctx, p.ID)
	if err != nil {
		return ierr.NewErrorf("policy %s not found", p.ID).Mark(ierr.ErrNotFound)
	}

	if stored.Status != expected {
		return ierr.NewErrorf("policy %s was modified concurrently", p.ID).
			Mark(ierr.ErrVersionConflict)
	}

	p.UpdatedAt = time.Now().UTC()
	return m.InMemoryStore.Update(ctx, p.ID, p)
}

func (m *InMemoryPolicyStore) GetByQuoteID(ctx context.Context, quoteID string) (*policy.Policy, error) {
	policies, err := m.InMemoryStore.List(ctx, quoteID,
		func(_ context.Context, p *policy.Policy, filter interface{}) bool {
			return p.QuoteID == filter.(string)
		}, nil)
	if err != nil {
		return nil, err
	}

	if len(policies) == 0 {
		return nil, ierr.NewErrorf("no policy found for quote %s", quoteID).
			Mark(ierr.ErrNotFound)
	}
	return policies[0], nil
}

func (m *InMemoryPolicyStore) ListByOwner(ctx context.Context, ownerID string) ([]*policy.Policy, error) {
	return m.InMemoryStore.List(ctx, ownerID,
		func(_ context.Context, p *policy.Policy, filter interface{}) bool {
			return p.OwnerID == filter.(string)
		},
		func(i, j *policy.Policy) bool {
			return i.CreatedAt.After(j.CreatedAt)
		})
}

func (m *InMemoryPolicyStore) ListActiveEndedBefore(ctx context.Context, ts time.Time) ([]*policy.Policy, error) {
	return m.InMemoryStore.List(ctx, ts,
		func(_ context.Context, p *policy.Policy, filter interface{}) bool {
			return p.Status == types.PolicyStatusActive && p.EndDate.Before(filter.(time.Time))
		},
		func(i, j *policy.Policy) bool {
			return i.EndDate.Before(j.EndDate)
		})
}

func (m *InMemoryPolicyStore) ListActiveEndingBetween(ctx context.Context, from, to time.Time) ([]*policy.Policy, error) {
	return m.InMemoryStore.List(ctx, nil,
		func(_ context.Context, p *policy.Policy, _ interface{}) bool {
			return p.Status == types.PolicyStatusActive &&
				!p.EndDate.Before(from) && !p.EndDate.After(to)
		},
		func(i, j *policy.Policy) bool {
			return i.EndDate.Before(j.EndDate)
		})
}
