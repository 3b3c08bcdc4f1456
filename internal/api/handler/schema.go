package handler

import "github.com/smartshelf/inventory-system/internal/core/domain"

// --- Auth ---

type registerRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Contact  string `json:"contact"`
	Location string `json:"location"`
	Role     string `json:"role"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// --- Products ---

type productRequest struct {
	ProductName string  `json:"productName" validate:"required"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Supplier    string  `json:"supplier"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,url"`
}

// --- Sales ---

type saleRequest struct {
	ProductID    string `json:"productId" validate:"required"`
	QuantitySold int    `json:"quantitySold" validate:"gt=0"`
}

// --- Users ---

type roleChangeResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
}
