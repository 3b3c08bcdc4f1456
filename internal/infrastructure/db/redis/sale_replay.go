package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

const replayTTL = 24 * time.Hour

// SaleReplayStore remembers the sale created for each Idempotency-Key so a
// retried submission returns the original sale instead of selling twice.
// Key format: sale:idem:<key>
type SaleReplayStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewSaleReplayStore creates a SaleReplayStore wrapping the given Redis client.
func NewSaleReplayStore(client redis.Cmdable) *SaleReplayStore {
	return &SaleReplayStore{client: client, ttl: replayTTL}
}

// Find reports whether a sale was already recorded under key.
func (s *SaleReplayStore) Find(ctx context.Context, key string) (*domain.Sale, bool, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("replay lookup: %w", err)
	}

	var sale domain.Sale
	if err := json.Unmarshal(raw, &sale); err != nil {
		return nil, false, fmt.Errorf("replay decode: %w", err)
	}
	return &sale, true, nil
}

// Remember stores the sale under key (expires after replayTTL).
func (s *SaleReplayStore) Remember(ctx context.Context, key string, sale *domain.Sale) error {
	raw, err := json.Marshal(sale)
	if err != nil {
		return fmt.Errorf("replay encode: %w", err)
	}
	return s.client.Set(ctx, s.key(key), raw, s.ttl).Err()
}

func (s *SaleReplayStore) key(k string) string {
	return fmt.Sprintf("sale:idem:%s", k)
}
