package document

import "context"

// Repository defines the interface for document metadata persistence.
// There is deliberately no delete operation.
type Repository interface {
	Create(ctx context.Context, d *Document) error
	Get(ctx context.Context, id string) (*Document, error)
	GetByNumber(ctx context.Context, number string) (*Document, error)

	// ListByPolicy returns every generation of documents for a policy
	ListByPolicy(ctx context.Context, policyID string) ([]*Document, error)

	// ListActiveByPolicy returns the currently active issued set of
	// the policy. Supplementary kinds are excluded; use ListByPolicy
	// to see them.
	ListActiveByPolicy(ctx context.Context, policyID string) ([]*Document, error)

	// DeactivateByPolicy flags every active issued document of the
	// policy as superseded and returns how many were affected.
	// Supplementary documents are left untouched.
	DeactivateByPolicy(ctx context.Context, policyID string) (int, error)
}
