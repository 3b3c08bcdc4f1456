package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/smartshelf/inventory-system/internal/core/domain"
	"github.com/smartshelf/inventory-system/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// Promote makes the user a store manager.
func (s *UserService) Promote(ctx context.Context, id string) (*domain.User, error) {
	return s.setRole(ctx, id, domain.RoleStoreManager)
}

// Demote moves the user back to the USER role.
func (s *UserService) Demote(ctx context.Context, id string) (*domain.User, error) {
	return s.setRole(ctx, id, domain.RoleUser)
}

func (s *UserService) setRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	u, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Str("role", string(role)).Msg("user role changed")
	return u, nil
}
