package cache

import (
	"context"
	"dvpr-route-scheduler/internal/platform/obs"
	"dvpr-route-scheduler/internal/ports"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/atomic"
)

// RedisDistanceCache fronts a SQL-backed ports.DistanceCache with a
// Redis tier, for deployments that run more than one instance against
// a shared distance-oracle cache. A miss on Redis falls through to the
// SQL tier and backfills Redis; a miss on both falls through to the
// caller, exactly as a single-tier SQLDistanceCache does.
type RedisDistanceCache struct {
	Client   *redis.Client
	Fallback ports.DistanceCache
	TTLHint  string // informational only; never read, keys are written with no expiry

	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewRedisDistanceCache(client *redis.Client, fallback ports.DistanceCache) *RedisDistanceCache {
	return &RedisDistanceCache{Client: client, Fallback: fallback}
}

// CacheStats reports cumulative hit/miss counts since process start.
type CacheStats struct {
	Hits   uint64
	Misses uint64
}

// Stats returns the current hit/miss counters, for surfacing on /health.
func (c *RedisDistanceCache) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

func redisKey(origin, destination string) string {
	return "dist:" + origin + ">" + destination
}

func (c *RedisDistanceCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "distance.cache.redis.GetMany")(&err)

	if c.Client == nil {
		return nil, errors.New("redis distance cache: client is nil")
	}
	if len(destinations) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	keys := make([]string, len(destinations))
	for i, d := range destinations {
		keys[i] = redisKey(origin, d)
	}

	raw, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis distance cache: mget: %w", err)
	}

	out := make(map[string]ports.DistanceResult, len(destinations))
	missing := make([]string, 0, len(destinations))
	for i, v := range raw {
		dest := destinations[i]
		s, ok := v.(string)
		if !ok {
			missing = append(missing, dest)
			continue
		}
		var r ports.DistanceResult
		if err := json.Unmarshal([]byte(s), &r); err != nil {
			missing = append(missing, dest)
			continue
		}
		out[dest] = r
	}

	c.hits.Add(uint64(len(out)))
	c.misses.Add(uint64(len(missing)))

	if len(missing) == 0 || c.Fallback == nil {
		return out, nil
	}

	fromFallback, err := c.Fallback.GetMany(ctx, origin, missing)
	if err != nil {
		return nil, fmt.Errorf("redis distance cache: fallback get: %w", err)
	}
	if len(fromFallback) > 0 {
		if err := c.putRedis(ctx, origin, fromFallback); err != nil {
			return nil, fmt.Errorf("redis distance cache: backfill: %w", err)
		}
	}
	for dest, r := range fromFallback {
		out[dest] = r
	}

	return out, nil
}

func (c *RedisDistanceCache) PutMany(ctx context.Context, origin string, results map[string]ports.DistanceResult) error {
	if c.Client == nil {
		return errors.New("redis distance cache: client is nil")
	}
	if len(results) == 0 {
		return nil
	}

	if err := c.putRedis(ctx, origin, results); err != nil {
		return err
	}

	if c.Fallback != nil {
		if err := c.Fallback.PutMany(ctx, origin, results); err != nil {
			return fmt.Errorf("redis distance cache: fallback put: %w", err)
		}
	}

	return nil
}

func (c *RedisDistanceCache) putRedis(ctx context.Context, origin string, results map[string]ports.DistanceResult) error {
	pipe := c.Client.Pipeline()
	for dest, r := range results {
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal distance result for %q: %w", dest, err)
		}
		pipe.Set(ctx, redisKey(origin, dest), payload, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("pipeline set: %w", err)
	}
	return nil
}
