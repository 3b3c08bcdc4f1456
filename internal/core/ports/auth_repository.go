package ports

import (
	"context"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
}
