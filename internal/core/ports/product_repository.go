package ports

import (
	"context"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

// ProductFilter carries the optional inventory filters.
type ProductFilter struct {
	Category string // exact match when non-empty
	Supplier string // exact match when non-empty
	MaxStock *int   // quantity <= MaxStock when set
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	// DecrementStock atomically subtracts qty when at least qty units are in
	// stock and returns the updated product. It returns ErrProductNotFound or
	// ErrInsufficientStock otherwise.
	DecrementStock(ctx context.Context, id string, qty int) (*domain.Product, error)
	// IncrementStock returns qty units to stock; used to compensate a failed
	// sale insert.
	IncrementStock(ctx context.Context, id string, qty int) error
}
