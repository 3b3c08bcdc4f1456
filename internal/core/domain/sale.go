package domain

import "time"

// Sale records units of a product leaving inventory.
type Sale struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	QuantitySold int       `json:"quantitySold"`
	SaleDate     time.Time `json:"saleDate"`
}
