package ports

import (
	"context"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

// UserService backs the admin user management screen.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Promote(ctx context.Context, id string) (*domain.User, error)
	Demote(ctx context.Context, id string) (*domain.User, error)
}
