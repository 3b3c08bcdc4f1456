package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

const (
	forecastKeyPrefix = "forecast:weekly:"
	forecastVersion   = "forecast:version"
	forecastTTL       = 5 * time.Minute
)

// ForecastCache keeps the last computed forecast under forecast:weekly:<v>.
// Sales and product writes bump forecast:version; entries for older versions
// are never read again and expire with their TTL.
type ForecastCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewForecastCache(client redis.Cmdable) *ForecastCache {
	return &ForecastCache{client: client, ttl: forecastTTL}
}

func forecastKey(version int64) string {
	return forecastKeyPrefix + strconv.FormatInt(version, 10)
}

func (c *ForecastCache) version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, forecastVersion).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("forecast cache version: %w", err)
	}
	return v, nil
}

func (c *ForecastCache) Get(ctx context.Context) ([]domain.ForecastItem, int64, bool, error) {
	version, err := c.version(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := c.client.Get(ctx, forecastKey(version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, version, false, fmt.Errorf("forecast cache get: %w", err)
	}

	var items []domain.ForecastItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, version, false, fmt.Errorf("forecast cache decode: %w", err)
	}
	return items, version, true, nil
}

func (c *ForecastCache) Set(ctx context.Context, version int64, items []domain.ForecastItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("forecast cache encode: %w", err)
	}
	return c.client.Set(ctx, forecastKey(version), raw, c.ttl).Err()
}

func (c *ForecastCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, forecastVersion).Err()
}
