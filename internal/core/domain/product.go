package domain

// LowStockThreshold is the quantity under which a product is flagged as
// running low on the dashboards.
const LowStockThreshold = 20

// Product is a stocked item.
type Product struct {
	ID          string  `json:"id"`
	ProductName string  `json:"productName"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Supplier    string  `json:"supplier"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// LowStock reports whether the product is under LowStockThreshold.
func (p Product) LowStock() bool {
	return p.Quantity < LowStockThreshold
}
