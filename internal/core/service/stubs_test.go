package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartshelf/inventory-system/internal/core/domain"
	"github.com/smartshelf/inventory-system/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubProductRepo struct {
	byID         map[string]*domain.Product
	seq          int
	createErr    error
	decrementErr error // if set, DecrementStock returns this error
	incremented  []string
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) seed(name string, qty int, price float64) *domain.Product {
	r.seq++
	p := &domain.Product{ID: "p" + strconv.Itoa(r.seq), ProductName: name, Quantity: qty, Price: price}
	r.byID[p.ID] = p
	return p
}

// List applies the same filters the real Mongo repo would use.
func (r *stubProductRepo) List(_ context.Context, f ports.ProductFilter) ([]*domain.Product, error) {
	var out []*domain.Product
	for i := 1; i <= r.seq; i++ {
		p, ok := r.byID["p"+strconv.Itoa(i)]
		if !ok {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Supplier != "" && p.Supplier != f.Supplier {
			continue
		}
		if f.MaxStock != nil && p.Quantity > *f.MaxStock {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	clone := *p
	clone.ID = "p" + strconv.Itoa(r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if _, ok := r.byID[p.ID]; !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubProductRepo) DecrementStock(_ context.Context, id string, qty int) (*domain.Product, error) {
	if r.decrementErr != nil {
		return nil, r.decrementErr
	}
	p, ok := r.byID[id]
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

func (r *stubProductRepo) IncrementStock(_ context.Context, id string, qty int) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Quantity += qty
	r.incremented = append(r.incremented, id)
	return nil
}

type stubSaleRepo struct {
	sales     []*domain.Sale
	createErr error
	lastStart time.Time
	lastEnd   time.Time
	onFind    func()
}

func (r *stubSaleRepo) Create(_ context.Context, s *domain.Sale) (*domain.Sale, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *s
	clone.ID = "s" + strconv.Itoa(len(r.sales)+1)
	r.sales = append(r.sales, &clone)
	out := clone
	return &out, nil
}

func (r *stubSaleRepo) FindBetween(_ context.Context, start, end time.Time) ([]*domain.Sale, error) {
	r.lastStart, r.lastEnd = start, end
	if r.onFind != nil {
		r.onFind()
	}
	var out []*domain.Sale
	for _, s := range r.sales {
		if !start.IsZero() && s.SaleDate.Before(start) {
			continue
		}
		if !end.IsZero() && s.SaleDate.After(end) {
			continue
		}
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

type stubReplays struct {
	byKey   map[string]*domain.Sale
	findErr error
}

func newStubReplays() *stubReplays {
	return &stubReplays{byKey: make(map[string]*domain.Sale)}
}

func (r *stubReplays) Find(_ context.Context, key string) (*domain.Sale, bool, error) {
	if r.findErr != nil {
		return nil, false, r.findErr
	}
	s, ok := r.byKey[key]
	return s, ok, nil
}

func (r *stubReplays) Remember(_ context.Context, key string, sale *domain.Sale) error {
	r.byKey[key] = sale
	return nil
}

// stubForecastCache keeps one entry for the current version. Set for an
// older version is counted but dropped, as the Redis cache would never read
// it back.
type stubForecastCache struct {
	items       []domain.ForecastItem
	cached      bool
	version     int64
	getErr      error
	sets        int
	invalidated int
}

func (c *stubForecastCache) Get(_ context.Context) ([]domain.ForecastItem, int64, bool, error) {
	if c.getErr != nil {
		return nil, 0, false, c.getErr
	}
	return c.items, c.version, c.cached, nil
}

func (c *stubForecastCache) Set(_ context.Context, version int64, items []domain.ForecastItem) error {
	c.sets++
	if version == c.version {
		c.items, c.cached = items, true
	}
	return nil
}

func (c *stubForecastCache) Invalidate(_ context.Context) error {
	c.items, c.cached = nil, false
	c.version++
	c.invalidated++
	return nil
}

var errDB = errors.New("db unavailable")
