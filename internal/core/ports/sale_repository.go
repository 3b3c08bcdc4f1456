package ports

import (
	"context"
	"time"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

// SaleRepository persists sale records.
type SaleRepository interface {
	Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error)
	// FindBetween returns sales with start <= sale_date <= end. Zero bounds
	// are open.
	FindBetween(ctx context.Context, start, end time.Time) ([]*domain.Sale, error)
}
