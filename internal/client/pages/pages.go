// Package pages holds one controller per client page. Each keeps its own
// view state; nothing is shared between pages except the session.
package pages

import (
	"context"
	"errors"
	"time"

	"github.com/smartshelf/inventory-system/internal/client/gateway"
	"github.com/smartshelf/inventory-system/internal/core/domain"
)

type ProductAPI interface {
	ListProducts(ctx context.Context, f gateway.ProductFilter) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in gateway.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in gateway.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type SaleAPI interface {
	RecordSale(ctx context.Context, productID string, qty int, idempotencyKey string) (*domain.Sale, error)
}

type ReportAPI interface {
	SalesReport(ctx context.Context, start, end time.Time) ([]domain.Sale, error)
}

type ForecastAPI interface {
	Forecast(ctx context.Context) ([]domain.ForecastItem, error)
}

type UserAPI interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	PromoteUser(ctx context.Context, id string) (string, error)
	DemoteUser(ctx context.Context, id string) (string, error)
}

// status is the message line every page renders.
type status struct {
	Error  string
	Notice string
}

func (s *status) reset() {
	s.Error = ""
	s.Notice = ""
}

// fail records err for display and returns it. Rejections the caller can act
// on are shown verbatim; server faults fall back to the page's own text. An
// invalidated session sets no message: the navigator has already moved to
// the login page.
func (s *status) fail(err error, fallback string) error {
	s.Error = message(err, fallback)
	return err
}

func message(err error, fallback string) string {
	var apiErr *gateway.APIError
	var connErr *gateway.ConnectivityError
	switch {
	case errors.Is(err, gateway.ErrSessionInvalidated):
		return ""
	case errors.As(err, &apiErr) && apiErr.Status < 500:
		return apiErr.Message
	case errors.As(err, &connErr):
		return connErr.Error()
	}
	return fallback
}
