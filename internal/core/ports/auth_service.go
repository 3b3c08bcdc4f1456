package ports

import (
	"context"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Contact  string
	Location string
	// Role is optional. Only empty or USER is accepted at sign-up.
	Role string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
