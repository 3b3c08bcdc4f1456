package ports

import (
	"context"
	"time"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

// RecordSaleInput is the DTO passed from the transport layer to SaleService.
type RecordSaleInput struct {
	ProductID      string
	QuantitySold   int
	IdempotencyKey string
}

// SalesReportInput bounds the report. When either date is zero the whole
// history is returned.
type SalesReportInput struct {
	StartDate time.Time
	EndDate   time.Time
}

// SaleService records sales and reports on them.
type SaleService interface {
	Record(ctx context.Context, input RecordSaleInput) (*domain.Sale, error)
	Report(ctx context.Context, input SalesReportInput) ([]*domain.Sale, error)
}
