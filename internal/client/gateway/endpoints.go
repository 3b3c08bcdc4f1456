package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

// Resource keys for last-request-wins reads.
const (
	KeyProducts    = "products"
	KeySalesReport = "sales-report"
	KeyForecast    = "forecast"
	KeyUsers       = "users"
)

type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

type Registration struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Contact  string `json:"contact,omitempty"`
	Location string `json:"location,omitempty"`
}

type ProductInput struct {
	ProductName string  `json:"productName"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Supplier    string  `json:"supplier"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// ProductFilter narrows a product listing. Zero fields are not sent.
type ProductFilter struct {
	Category string
	Supplier string
	MaxStock *int
}

func (f ProductFilter) values() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Supplier != "" {
		q.Set("supplier", f.Supplier)
	}
	if f.MaxStock != nil {
		q.Set("maxStock", strconv.Itoa(*f.MaxStock))
	}
	return q
}

type messageResult struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// Login is sent without a token even when a session exists.
func (g *Gateway) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var out LoginResult
	err := g.Do(ctx, Request{
		Method:    http.MethodPost,
		Path:      "/auth/login",
		Body:      map[string]string{"email": email, "password": password},
		Anonymous: true,
	}, &out)
	return out, err
}

// Register returns the server's confirmation message.
func (g *Gateway) Register(ctx context.Context, r Registration) (string, error) {
	var out messageResult
	err := g.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/register", Body: r, Anonymous: true}, &out)
	return out.Message, err
}

func (g *Gateway) ListProducts(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	var out []domain.Product
	err := g.Do(ctx, Request{Path: "/products", Query: f.values(), Key: KeyProducts}, &out)
	return out, err
}

func (g *Gateway) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	var out domain.Product
	if err := g.Do(ctx, Request{Method: http.MethodPost, Path: "/products", Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	var out domain.Product
	if err := g.Do(ctx, Request{Method: http.MethodPut, Path: "/products/" + url.PathEscape(id), Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) DeleteProduct(ctx context.Context, id string) error {
	return g.Do(ctx, Request{Method: http.MethodDelete, Path: "/products/" + url.PathEscape(id)}, nil)
}

// RecordSale submits one sale line. idempotencyKey may be empty; callers
// retrying the same submission must reuse it.
func (g *Gateway) RecordSale(ctx context.Context, productID string, qty int, idempotencyKey string) (*domain.Sale, error) {
	var out domain.Sale
	err := g.Do(ctx, Request{
		Method:         http.MethodPost,
		Path:           "/sales",
		Body:           map[string]any{"productId": productID, "quantitySold": qty},
		IdempotencyKey: idempotencyKey,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SalesReport lists sales between start and end. Zero times are omitted and
// the server applies its defaults.
func (g *Gateway) SalesReport(ctx context.Context, start, end time.Time) ([]domain.Sale, error) {
	q := url.Values{}
	if !start.IsZero() {
		q.Set("startDate", start.Format(time.RFC3339))
	}
	if !end.IsZero() {
		q.Set("endDate", end.Format(time.RFC3339))
	}

	var out []domain.Sale
	err := g.Do(ctx, Request{Path: "/sales/report", Query: q, Key: KeySalesReport}, &out)
	return out, err
}

func (g *Gateway) Forecast(ctx context.Context) ([]domain.ForecastItem, error) {
	var out []domain.ForecastItem
	err := g.Do(ctx, Request{Path: "/forecast", Key: KeyForecast}, &out)
	return out, err
}

func (g *Gateway) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := g.Do(ctx, Request{Path: "/users", Key: KeyUsers}, &out)
	return out, err
}

func (g *Gateway) PromoteUser(ctx context.Context, id string) (string, error) {
	return g.changeRole(ctx, id, "promote")
}

func (g *Gateway) DemoteUser(ctx context.Context, id string) (string, error) {
	return g.changeRole(ctx, id, "demote")
}

func (g *Gateway) changeRole(ctx context.Context, id, action string) (string, error) {
	var out messageResult
	err := g.Do(ctx, Request{Method: http.MethodPut, Path: "/users/" + url.PathEscape(id) + "/" + action}, &out)
	return out.Message, err
}
