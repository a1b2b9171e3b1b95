package cache

import (
	"collection-route-service/internal/domain"
	"collection-route-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisFillCache is a read-through cache in front of another
// FillLevelProvider. Cached readings expire after TTL so a stale sensor
// value cannot linger past its usefulness.
type RedisFillCache struct {
	client *redis.Client
	next   ports.FillLevelProvider
	ttl    time.Duration
}

func NewRedisFillCache(client *redis.Client, next ports.FillLevelProvider, ttl time.Duration) (*RedisFillCache, error) {
	if client == nil {
		return nil, errors.New("redis fill cache: client is nil")
	}
	if next == nil {
		return nil, errors.New("redis fill cache: next provider is nil")
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisFillCache{client: client, next: next, ttl: ttl}, nil
}

func fillKey(floor domain.FloorTag, binID string) string {
	return "fill:" + string(floor) + ":" + binID
}

func (c *RedisFillCache) GetFillLevels(
	ctx context.Context,
	floor domain.FloorTag,
	binIDs []string,
) (map[string]float64, error) {
	if len(binIDs) == 0 {
		return map[string]float64{}, nil
	}

	keys := make([]string, len(binIDs))
	for i, id := range binIDs {
		keys[i] = fillKey(floor, id)
	}

	out := make(map[string]float64, len(binIDs))
	misses := make([]string, 0, len(binIDs))

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("fill cache: mget: %w", err)
	}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			misses = append(misses, binIDs[i])
			continue
		}
		level, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// Corrupt entry: treat as a miss and let the write below
			// replace it.
			misses = append(misses, binIDs[i])
			continue
		}
		out[binIDs[i]] = level
	}

	if len(misses) == 0 {
		return out, nil
	}

	fresh, err := c.next.GetFillLevels(ctx, floor, misses)
	if err != nil {
		return nil, fmt.Errorf("fill cache: upstream provider: %w", err)
	}

	pipe := c.client.Pipeline()
	for id, level := range fresh {
		out[id] = level
		pipe.Set(ctx, fillKey(floor, id), strconv.FormatFloat(level, 'f', -1, 64), c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("fill cache: store fresh readings: %w", err)
	}

	return out, nil
}
