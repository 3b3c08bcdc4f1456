package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/smartshelf/inventory-system/internal/core/domain"
	"github.com/smartshelf/inventory-system/internal/core/ports"
)

type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.ForecastCache
	logger zerolog.Logger
}

// NewProductService wires the inventory use cases. cache may be a nil
// interface to disable forecast invalidation.
func NewProductService(repo ports.ProductRepository, cache ports.ForecastCache, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, logger: logger}
}

func (s *ProductService) List(ctx context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Supplier = strings.TrimSpace(filter.Supplier)
	return s.repo.List(ctx, filter)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, toProduct("", in))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.invalidateForecast(ctx)
	s.logger.Info().Str("product_id", created.ID).Str("product_name", created.ProductName).Msg("product created")
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in ports.ProductInput) (*domain.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, toProduct(id, in))
	if err != nil {
		return nil, err
	}

	s.invalidateForecast(ctx)
	s.logger.Info().Str("product_id", id).Msg("product updated")
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateForecast(ctx)
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *ProductService) invalidateForecast(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate forecast cache")
	}
}

func validateProduct(in ports.ProductInput) error {
	switch {
	case strings.TrimSpace(in.ProductName) == "":
		return &domain.ValidationError{Msg: "productName is required"}
	case in.Quantity < 0:
		return &domain.ValidationError{Msg: "quantity must not be negative"}
	case in.Price < 0:
		return &domain.ValidationError{Msg: fmt.Sprintf("price must not be negative, got %.2f", in.Price)}
	}
	return nil
}

func toProduct(id string, in ports.ProductInput) *domain.Product {
	return &domain.Product{
		ID:          id,
		ProductName: strings.TrimSpace(in.ProductName),
		Category:    strings.TrimSpace(in.Category),
		Quantity:    in.Quantity,
		Price:       in.Price,
		Supplier:    strings.TrimSpace(in.Supplier),
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
}
