package claim

import (
	"context"
	"time"

	"github.com/assurly/assurly/internal/types"
)

// Repository defines the interface for claim persistence operations.
// Update is guarded by the expected current status so that the status
// field and the appended history entry are committed together against
// the same observed state (both or neither).
type Repository interface {
	Create(ctx context.Context, c *Claim) error
	Get(ctx context.Context, id string) (*Claim, error)

	// Update persists c if the stored status still equals expected;
	// otherwise nothing is written and a conflict error is returned.
	Update(ctx context.Context, c *Claim, expected types.ClaimStatus) error

	ListByPolicy(ctx context.Context, policyID string) ([]*Claim, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Claim, error)

	// ListByStatusUpdatedBefore returns claims whose status is one of
	// statuses and whose last update is older than before. Used by the
	// stale claim sweep.
	ListByStatusUpdatedBefore(ctx context.Context, statuses []types.ClaimStatus, before time.Time) ([]*Claim, error)
}
