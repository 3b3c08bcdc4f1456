package ports

import (
	"context"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

// ForecastService predicts next-week demand per product.
type ForecastService interface {
	Forecast(ctx context.Context) ([]domain.ForecastItem, error)
}

// ForecastCache stores the last computed forecast. Entries are versioned:
// Get reports the current version even on a miss, Set stores under the
// version the caller read before computing, and Invalidate moves to a new
// version so a result computed before a write is never served after it.
type ForecastCache interface {
	Get(ctx context.Context) (items []domain.ForecastItem, version int64, ok bool, err error)
	Set(ctx context.Context, version int64, items []domain.ForecastItem) error
	Invalidate(ctx context.Context) error
}
