package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartshelf/inventory-system/internal/core/domain"
	"github.com/smartshelf/inventory-system/internal/core/ports"
)

// SaleReplayStore abstracts the idempotency store (Redis) for sale
// submissions carrying an Idempotency-Key.
type SaleReplayStore interface {
	Find(ctx context.Context, key string) (*domain.Sale, bool, error)
	Remember(ctx context.Context, key string, sale *domain.Sale) error
}

type saleService struct {
	products ports.ProductRepository
	sales    ports.SaleRepository
	replays  SaleReplayStore
	cache    ports.ForecastCache
	log      zerolog.Logger
	now      func() time.Time
}

// NewSaleService returns a SaleService implementation. replays and cache may
// be nil interfaces; a typed nil pointer is not treated as absent.
func NewSaleService(
	products ports.ProductRepository,
	sales ports.SaleRepository,
	replays SaleReplayStore,
	cache ports.ForecastCache,
	log zerolog.Logger,
) ports.SaleService {
	return &saleService{
		products: products,
		sales:    sales,
		replays:  replays,
		cache:    cache,
		log:      log,
		now:      time.Now,
	}
}

// Record checks stock, decrements it and persists the sale.
func (s *saleService) Record(ctx context.Context, in ports.RecordSaleInput) (*domain.Sale, error) {
	if in.QuantitySold <= 0 {
		return nil, &domain.ValidationError{Msg: "quantitySold must be greater than 0"}
	}

	// 1. Idempotent replay: return the sale recorded under the same key.
	if in.IdempotencyKey != "" && s.replays != nil {
		prev, found, err := s.replays.Find(ctx, in.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("replay lookup failed, recording anyway")
		} else if found {
			s.log.Info().Str("idempotency_key", in.IdempotencyKey).Str("sale_id", prev.ID).Msg("idempotent replay")
			return prev, nil
		}
	}

	// 2. Resolve the product so stock errors can name it.
	product, err := s.products.FindByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("record sale: %w", err)
	}

	// 3. Conditional decrement; a concurrent sale may still win the race.
	if _, err := s.products.DecrementStock(ctx, product.ID, in.QuantitySold); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return nil, &domain.ValidationError{
				Msg: fmt.Sprintf("Insufficient stock for product %s", product.ProductName),
				Err: domain.ErrInsufficientStock,
			}
		}
		return nil, fmt.Errorf("record sale: %w", err)
	}

	// 4. Persist the sale, giving the stock back if that fails.
	sale, err := s.sales.Create(ctx, &domain.Sale{
		ProductID:    product.ID,
		ProductName:  product.ProductName,
		QuantitySold: in.QuantitySold,
		SaleDate:     s.now().UTC(),
	})
	if err != nil {
		if rbErr := s.products.IncrementStock(ctx, product.ID, in.QuantitySold); rbErr != nil {
			s.log.Error().Err(rbErr).Str("product_id", product.ID).Int("quantity", in.QuantitySold).Msg("failed to restore stock")
		}
		return nil, fmt.Errorf("record sale: insert: %w", err)
	}

	// 5. Best-effort bookkeeping.
	if in.IdempotencyKey != "" && s.replays != nil {
		if err := s.replays.Remember(ctx, in.IdempotencyKey, sale); err != nil {
			s.log.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to store replay key")
		}
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("failed to invalidate forecast cache")
		}
	}

	s.log.Info().
		Str("sale_id", sale.ID).
		Str("product_id", sale.ProductID).
		Int("quantity", sale.QuantitySold).
		Msg("sale recorded")

	return sale, nil
}

// Report lists sales in [StartDate, EndDate], or every sale when either bound
// is missing.
func (s *saleService) Report(ctx context.Context, in ports.SalesReportInput) ([]*domain.Sale, error) {
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return s.sales.FindBetween(ctx, time.Time{}, time.Time{})
	}
	if in.StartDate.After(in.EndDate) {
		return nil, &domain.ValidationError{Msg: "startDate must not be after endDate"}
	}
	return s.sales.FindBetween(ctx, in.StartDate, in.EndDate)
}
