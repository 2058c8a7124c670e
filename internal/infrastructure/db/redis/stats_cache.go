package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/recipehub/recipe-api/internal/core/domain"
)

const statsKey = "stats:platform"

// StatsCache keeps the latest platform stats snapshot in Redis as JSON.
type StatsCache struct {
	client *redis.Client
	key    string
}

func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client, key: statsKey}
}

// Get returns the cached snapshot. A missing key is reported as ok=false.
func (c *StatsCache) Get(ctx context.Context) (*domain.PlatformStats, bool, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("stats cache get: %w", err)
	}

	stats, err := decodeStats(raw)
	if err != nil {
		return nil, false, err
	}
	return stats, true, nil
}

// Set stores the snapshot; it expires after ttl.
func (c *StatsCache) Set(ctx context.Context, stats *domain.PlatformStats, ttl time.Duration) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key, raw, ttl).Err()
}

func decodeStats(raw []byte) (*domain.PlatformStats, error) {
	var stats domain.PlatformStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, nil
}
