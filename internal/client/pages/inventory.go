package pages

import (
	"context"

	"github.com/smartshelf/inventory-system/internal/client/gateway"
	"github.com/smartshelf/inventory-system/internal/core/domain"
)

// Stats are the dashboard summary cards.
type Stats struct {
	Products   int
	LowStock   int
	TotalValue float64
}

func ComputeStats(products []domain.Product) Stats {
	s := Stats{Products: len(products)}
	for _, p := range products {
		if p.LowStock() {
			s.LowStock++
		}
		s.TotalValue += p.Price * float64(p.Quantity)
	}
	return s
}

// InventoryAPI is what the store manager dashboard calls.
type InventoryAPI interface {
	ProductAPI
	SaleAPI
}

// Inventory is the store manager dashboard.
type Inventory struct {
	status

	Filter   gateway.ProductFilter
	Products []domain.Product
	Stats    Stats

	api InventoryAPI
}

func NewInventory(api InventoryAPI) *Inventory {
	return &Inventory{api: api}
}

func (p *Inventory) Load(ctx context.Context) error {
	p.reset()
	products, err := p.api.ListProducts(ctx, p.Filter)
	if err != nil {
		return p.fail(err, "Failed to load inventory.")
	}
	p.Products = products
	p.Stats = ComputeStats(products)
	return nil
}

func (p *Inventory) Create(ctx context.Context, in gateway.ProductInput) (*domain.Product, error) {
	p.reset()
	created, err := p.api.CreateProduct(ctx, in)
	if err != nil {
		return nil, p.fail(err, "Failed to create product.")
	}
	return created, p.reload(ctx, "Product added.")
}

func (p *Inventory) Update(ctx context.Context, id string, in gateway.ProductInput) (*domain.Product, error) {
	p.reset()
	updated, err := p.api.UpdateProduct(ctx, id, in)
	if err != nil {
		return nil, p.fail(err, "Failed to update product.")
	}
	return updated, p.reload(ctx, "Product updated.")
}

func (p *Inventory) Delete(ctx context.Context, id string) error {
	p.reset()
	if err := p.api.DeleteProduct(ctx, id); err != nil {
		return p.fail(err, "Failed to delete product.")
	}
	return p.reload(ctx, "Product deleted.")
}

// RecordSale books qty units of productID. A stock rejection is shown as the
// server worded it.
func (p *Inventory) RecordSale(ctx context.Context, productID string, qty int) (*domain.Sale, error) {
	p.reset()
	sale, err := p.api.RecordSale(ctx, productID, qty, gateway.NewIdempotencyKey())
	if err != nil {
		return nil, p.fail(err, "Failed to record sale.")
	}
	return sale, p.reload(ctx, "Sale recorded.")
}

func (p *Inventory) reload(ctx context.Context, notice string) error {
	if err := p.Load(ctx); err != nil {
		return err
	}
	p.Notice = notice
	return nil
}

// AdminInventory is the admin dashboard: listing and edits only.
type AdminInventory struct {
	status

	Filter   gateway.ProductFilter
	Products []domain.Product
	Stats    Stats

	api ProductAPI
}

func NewAdminInventory(api ProductAPI) *AdminInventory {
	return &AdminInventory{api: api}
}

func (p *AdminInventory) Load(ctx context.Context) error {
	p.reset()
	products, err := p.api.ListProducts(ctx, p.Filter)
	if err != nil {
		return p.fail(err, "Failed to load inventory.")
	}
	p.Products = products
	p.Stats = ComputeStats(products)
	return nil
}

func (p *AdminInventory) Update(ctx context.Context, id string, in gateway.ProductInput) (*domain.Product, error) {
	p.reset()
	updated, err := p.api.UpdateProduct(ctx, id, in)
	if err != nil {
		return nil, p.fail(err, "Failed to update product.")
	}
	if err := p.Load(ctx); err != nil {
		return updated, err
	}
	p.Notice = "Product updated."
	return updated, nil
}
