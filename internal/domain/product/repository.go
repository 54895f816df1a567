package product

import "context"

// Repository defines the interface for product persistence operations
type Repository interface {
	Create(ctx context.Context, p *Product) error
	Get(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, p *Product) error
	List(ctx context.Context) ([]*Product, error)
}
