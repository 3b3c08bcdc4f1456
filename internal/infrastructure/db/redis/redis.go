package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

type Config struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// Store owns the Redis client behind the sale replay store and the forecast
// cache.
type Store struct {
	client *redis.Client

	Replays   *SaleReplayStore
	Forecasts *ForecastCache
}

// Open connects and pings. Dial, read and write deadlines all use the
// configured timeout.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Store{
		client:    client,
		Replays:   NewSaleReplayStore(client),
		Forecasts: NewForecastCache(client),
	}, nil
}

// Ping is the readiness check.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
