package pages

import (
	"context"
	"fmt"

	"github.com/smartshelf/inventory-system/internal/client/gateway"
	"github.com/smartshelf/inventory-system/internal/core/domain"
)

// CartLine is one product in a purchase.
type CartLine struct {
	ProductID string
	Quantity  int
}

type StorefrontAPI interface {
	ListProducts(ctx context.Context, f gateway.ProductFilter) ([]domain.Product, error)
	SaleAPI
}

// Storefront is the end-user shop page.
type Storefront struct {
	status

	Filter   gateway.ProductFilter
	Products []domain.Product

	api StorefrontAPI
}

func NewStorefront(api StorefrontAPI) *Storefront {
	return &Storefront{api: api}
}

func (p *Storefront) Load(ctx context.Context) error {
	p.reset()
	products, err := p.api.ListProducts(ctx, p.Filter)
	if err != nil {
		return p.fail(err, "Failed to load products.")
	}
	p.Products = products
	return nil
}

// Purchase records one sale per line, in order, and stops at the first
// rejection. It returns the sales that went through.
func (p *Storefront) Purchase(ctx context.Context, cart []CartLine) ([]domain.Sale, error) {
	p.reset()
	if len(cart) == 0 {
		p.Error = "Your cart is empty."
		return nil, fmt.Errorf("purchase: empty cart")
	}

	sales := make([]domain.Sale, 0, len(cart))
	for _, line := range cart {
		sale, err := p.api.RecordSale(ctx, line.ProductID, line.Quantity, gateway.NewIdempotencyKey())
		if err != nil {
			return sales, p.fail(err, "Checkout failed. Please try again.")
		}
		sales = append(sales, *sale)
	}

	if err := p.Load(ctx); err != nil {
		return sales, err
	}
	p.Notice = "Purchase successful! Thank you!"
	return sales, nil
}
