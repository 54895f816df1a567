package quote

import (
	"context"

	"github.com/assurly/assurly/internal/types"
)

// Repository defines the interface for quote persistence operations.
// Update is guarded by the expected current status so that a
// transition validated against a status value is applied against that
// same value.
type Repository interface {
	Create(ctx context.Context, q *Quote) error
	Get(ctx context.Context, id string) (*Quote, error)

	// Update persists q if the stored status still equals expected;
	// otherwise it fails with a database conflict error and persists
	// nothing.
	Update(ctx context.Context, q *Quote, expected types.QuoteStatus) error

	ListByOwner(ctx context.Context, ownerID string) ([]*Quote, error)
}
