package policy

import (
	"context"
	"time"

	"github.com/assurly/assurly/internal/types"
)

// Repository defines the interface for policy persistence operations
type Repository interface {
	Create(ctx context.Context, p *Policy) error
	Get(ctx context.Context, id string) (*Policy, error)

	// Update persists p if the stored status still equals expected
	// (optimistic check-then-set on the status field).
	Update(ctx context.Context, p *Policy, expected types.PolicyStatus) error

	// GetByQuoteID returns the policy referencing the quote, or a
	// not-found error when none exists.
	GetByQuoteID(ctx context.Context, quoteID string) (*Policy, error)

	ListByOwner(ctx context.Context, ownerID string) ([]*Policy, error)

	// ListActiveEndedBefore returns ACTIVE policies whose end date is
	// strictly before ts. Used by the expiry sweep.
	ListActiveEndedBefore(ctx context.Context, ts time.Time) ([]*Policy, error)

	// ListActiveEndingBetween returns ACTIVE policies whose end date
	// falls within [from, to]. Used by the pre-expiry notice sweep.
	ListActiveEndingBetween(ctx context.Context, from, to time.Time) ([]*Policy, error)
}
