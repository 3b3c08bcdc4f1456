package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smartshelf/inventory-system/internal/core/domain"
	"github.com/smartshelf/inventory-system/internal/core/ports"
	"github.com/smartshelf/inventory-system/internal/core/service"
)

const testSecret = "test-secret"

// memProducts is a minimal in-memory ProductRepository for router tests.
type memProducts struct {
	items map[string]*domain.Product
}

func (m *memProducts) List(context.Context, ports.ProductFilter) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(m.items))
	for _, p := range m.items {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (m *memProducts) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *memProducts) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	clone := *p
	clone.ID = "new"
	m.items[clone.ID] = &clone
	return &clone, nil
}

func (m *memProducts) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if _, ok := m.items[p.ID]; !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	m.items[p.ID] = &clone
	return &clone, nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memProducts) DecrementStock(_ context.Context, id string, qty int) (*domain.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if p.Quantity < qty {
		return nil, domain.ErrInsufficientStock
	}
	p.Quantity -= qty
	clone := *p
	return &clone, nil
}

func (m *memProducts) IncrementStock(_ context.Context, id string, qty int) error {
	m.items[id].Quantity += qty
	return nil
}

type memSales struct{ sales []*domain.Sale }

func (m *memSales) Create(_ context.Context, s *domain.Sale) (*domain.Sale, error) {
	clone := *s
	clone.ID = "s1"
	m.sales = append(m.sales, &clone)
	return &clone, nil
}

func (m *memSales) FindBetween(context.Context, time.Time, time.Time) ([]*domain.Sale, error) {
	return m.sales, nil
}

type memUsers struct{}

func (memUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (memUsers) FindByID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) { return u, nil }
func (memUsers) List(context.Context) ([]*domain.User, error)                   { return []*domain.User{}, nil }
func (memUsers) UpdateRole(context.Context, string, domain.Role) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func newTestRouter(t *testing.T) (*echo.Echo, *memProducts) {
	t.Helper()
	log := zerolog.Nop()
	products := &memProducts{items: map[string]*domain.Product{
		"p1": {ID: "p1", ProductName: "Widget X", Quantity: 2, Price: 3},
	}}
	sales := &memSales{}
	users := memUsers{}

	e := NewRouter(RouterConfig{
		Services: Services{
			Auth:     service.NewAuthService(users, testSecret, time.Hour),
			Products: service.NewProductService(products, nil, log),
			Sales:    service.NewSaleService(products, sales, nil, nil, log),
			Users:    service.NewUserService(users, log),
			Forecast: service.NewForecastService(products, sales, nil, log),
		},
		JWTSecret:      testSecret,
		Logger:         log,
		DisableMetrics: true,
	})
	return e, products
}

func tokenFor(t *testing.T, role domain.Role) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "someone@example.com",
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func do(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func TestRouter_AccessMatrix(t *testing.T) {
	e, _ := newTestRouter(t)

	cases := []struct {
		method, path string
		role         domain.Role
		body         string
		want         int
	}{
		{http.MethodGet, "/api/products", "", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/products", domain.RoleUser, "", http.StatusOK},
		{http.MethodPost, "/api/products", domain.RoleUser, `{"productName":"Tea"}`, http.StatusForbidden},
		{http.MethodPost, "/api/products", domain.RoleStoreManager, `{"productName":"Tea"}`, http.StatusCreated},
		{http.MethodDelete, "/api/products/missing", domain.RoleAdmin, "", http.StatusNotFound},
		{http.MethodGet, "/api/sales/report", domain.RoleUser, "", http.StatusForbidden},
		{http.MethodGet, "/api/sales/report", domain.RoleStoreManager, "", http.StatusOK},
		{http.MethodGet, "/api/forecast", domain.RoleUser, "", http.StatusForbidden},
		{http.MethodGet, "/api/forecast", domain.RoleAdmin, "", http.StatusOK},
		{http.MethodGet, "/api/users", domain.RoleStoreManager, "", http.StatusForbidden},
		{http.MethodGet, "/api/users", domain.RoleAdmin, "", http.StatusOK},
		{http.MethodPut, "/api/users/42/promote", domain.RoleAdmin, "", http.StatusNotFound},
	}

	for _, tc := range cases {
		token := ""
		if tc.role != "" {
			token = tokenFor(t, tc.role)
		}
		rec := do(e, tc.method, tc.path, token, tc.body)
		if rec.Code != tc.want {
			t.Errorf("%s %s as %q: expected %d, got %d (%s)", tc.method, tc.path, tc.role, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestRouter_InsufficientStockMessage(t *testing.T) {
	e, products := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/sales", tokenFor(t, domain.RoleUser), `{"productId":"p1","quantitySold":5}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Insufficient stock for product Widget X" {
		t.Fatalf("unexpected message %q", msg)
	}
	if products.items["p1"].Quantity != 2 {
		t.Fatalf("stock must be unchanged")
	}
}

func TestRouter_SaleAnyRole(t *testing.T) {
	e, products := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/sales", tokenFor(t, domain.RoleUser), `{"productId":"p1","quantitySold":1}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if products.items["p1"].Quantity != 1 {
		t.Fatalf("expected stock 1, got %d", products.items["p1"].Quantity)
	}
}

func TestRouter_UnknownRoleInTokenIsForbidden(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/api/products", tokenFor(t, domain.Role("SUPERUSER")), "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRouter_RegisterPrivilegedRoleIsForbidden(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/auth/register", "",
		`{"fullName":"Eve","email":"eve@example.com","password":"secret1","role":"ADMIN"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
	if msg := errorMessage(t, rec); !strings.Contains(msg, "ADMIN") {
		t.Fatalf("unexpected message %q", msg)
	}

	rec = do(e, http.MethodPost, "/api/auth/register", "",
		`{"fullName":"Eve","email":"eve@example.com","password":"secret1","role":"OWNER"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown role: expected 400, got %d", rec.Code)
	}

	rec = do(e, http.MethodPost, "/api/auth/register", "",
		`{"fullName":"Eve","email":"eve@example.com","password":"secret1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("plain sign-up: expected 201, got %d", rec.Code)
	}
}

func TestRouter_LoginBadCredentials(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/auth/login", "", `{"email":"ghost@example.com","password":"x"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Invalid credentials" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRouter_Health(t *testing.T) {
	e, _ := newTestRouter(t)

	if rec := do(e, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}
	if rec := do(e, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness without checks: expected 200, got %d", rec.Code)
	}
}
