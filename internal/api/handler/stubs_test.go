package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/smartshelf/inventory-system/internal/core/domain"
	"github.com/smartshelf/inventory-system/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

type stubSaleService struct {
	recordFn func(ctx context.Context, in ports.RecordSaleInput) (*domain.Sale, error)
	reportFn func(ctx context.Context, in ports.SalesReportInput) ([]*domain.Sale, error)
}

func (s *stubSaleService) Record(ctx context.Context, in ports.RecordSaleInput) (*domain.Sale, error) {
	return s.recordFn(ctx, in)
}

func (s *stubSaleService) Report(ctx context.Context, in ports.SalesReportInput) ([]*domain.Sale, error) {
	return s.reportFn(ctx, in)
}

type stubProductService struct {
	listFn   func(ctx context.Context, f ports.ProductFilter) ([]*domain.Product, error)
	createFn func(ctx context.Context, in ports.ProductInput) (*domain.Product, error)
}

func (s *stubProductService) List(ctx context.Context, f ports.ProductFilter) ([]*domain.Product, error) {
	return s.listFn(ctx, f)
}

func (s *stubProductService) Get(context.Context, string) (*domain.Product, error) {
	return nil, domain.ErrProductNotFound
}

func (s *stubProductService) Create(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	return s.createFn(ctx, in)
}

func (s *stubProductService) Update(context.Context, string, ports.ProductInput) (*domain.Product, error) {
	return nil, domain.ErrProductNotFound
}

func (s *stubProductService) Delete(context.Context, string) error {
	return domain.ErrProductNotFound
}

// newJSONContext builds an echo context for a JSON request with the project
// validator installed.
func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// httpCode returns the status of an *echo.HTTPError, or 0.
func httpCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}
