package vehicle

import "context"

// Repository defines the interface for vehicle persistence operations
type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	Get(ctx context.Context, id string) (*Vehicle, error)
	Update(ctx context.Context, v *Vehicle) error
	ListByOwner(ctx context.Context, ownerID string) ([]*Vehicle, error)
}
