package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartshelf/inventory-system/internal/core/domain"
	"github.com/smartshelf/inventory-system/internal/core/ports"
)

const (
	forecastWindowDays  = 30
	forecastHorizonDays = 7
	overstockFactor     = 4
)

type forecastService struct {
	products ports.ProductRepository
	sales    ports.SaleRepository
	cache    ports.ForecastCache
	log      zerolog.Logger
	now      func() time.Time
}

// NewForecastService returns a ForecastService computing a simple moving
// average over the last 30 days of sales. cache may be a nil interface to
// disable caching.
func NewForecastService(products ports.ProductRepository, sales ports.SaleRepository, cache ports.ForecastCache, log zerolog.Logger) ports.ForecastService {
	return &forecastService{products: products, sales: sales, cache: cache, log: log, now: time.Now}
}

func (s *forecastService) Forecast(ctx context.Context) ([]domain.ForecastItem, error) {
	// Only a successful read yields the version to store under; without it
	// the result is served but not cached.
	cacheable := false
	var version int64
	if s.cache != nil {
		items, v, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("forecast cache read failed, recomputing")
		} else if ok {
			return items, nil
		} else {
			cacheable, version = true, v
		}
	}

	items, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.Set(ctx, version, items); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache forecast")
		}
	}
	return items, nil
}

func (s *forecastService) compute(ctx context.Context) ([]domain.ForecastItem, error) {
	products, err := s.products.List(ctx, ports.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("forecast: list products: %w", err)
	}

	end := s.now().UTC()
	start := end.AddDate(0, 0, -forecastWindowDays)
	recent, err := s.sales.FindBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("forecast: list sales: %w", err)
	}

	sold := make(map[string]int, len(products))
	for _, sale := range recent {
		sold[sale.ProductID] += sale.QuantitySold
	}

	items := make([]domain.ForecastItem, 0, len(products))
	for _, p := range products {
		demand := weeklyDemand(sold[p.ID])
		items = append(items, domain.ForecastItem{
			ProductID:       p.ID,
			ProductName:     p.ProductName,
			CurrentStock:    p.Quantity,
			PredictedDemand: roundDemand(demand),
			Status:          recommend(p.Quantity, demand),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PredictedDemand > items[j].PredictedDemand
	})
	return items, nil
}

// weeklyDemand scales the window's daily average to the horizon.
func weeklyDemand(soldInWindow int) float64 {
	return float64(soldInWindow) / forecastWindowDays * forecastHorizonDays
}

// roundDemand is the displayed value, to one decimal.
func roundDemand(demand float64) float64 {
	return math.Round(demand*10) / 10
}

// recommend compares stock with the unrounded demand.
func recommend(stock int, predicted float64) domain.ForecastStatus {
	switch {
	case float64(stock) < predicted:
		return domain.ForecastRestock
	case float64(stock) > predicted*overstockFactor:
		return domain.ForecastOverstocked
	default:
		return domain.ForecastSufficient
	}
}
