package ports

import (
	"context"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

// ProductInput is the writable part of a product.
type ProductInput struct {
	ProductName string
	Category    string
	Quantity    int
	Price       float64
	Supplier    string
	ImageURL    string
}

// ProductService defines inventory use cases.
type ProductService interface {
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
