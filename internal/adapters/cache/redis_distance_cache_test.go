package cache

import (
	"context"
	"dvpr-route-scheduler/internal/ports"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type fakeFallback struct {
	get map[string]ports.DistanceResult
	put map[string]ports.DistanceResult
}

func (f *fakeFallback) GetMany(ctx context.Context, origin string, destinations []string) (map[string]ports.DistanceResult, error) {
	out := make(map[string]ports.DistanceResult)
	for _, d := range destinations {
		if r, ok := f.get[d]; ok {
			out[d] = r
		}
	}
	return out, nil
}

func (f *fakeFallback) PutMany(ctx context.Context, origin string, results map[string]ports.DistanceResult) error {
	if f.put == nil {
		f.put = make(map[string]ports.DistanceResult)
	}
	for k, v := range results {
		f.put[k] = v
	}
	return nil
}

func newTestRedisCache(t *testing.T, fallback ports.DistanceCache) *RedisDistanceCache {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisDistanceCache(client, fallback)
}

func TestRedisDistanceCachePutThenGet(t *testing.T) {
	cache := newTestRedisCache(t, nil)
	ctx := context.Background()

	err := cache.PutMany(ctx, "A", map[string]ports.DistanceResult{
		"B": {DistanceMeters: 100, DurationSeconds: 60},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := cache.GetMany(ctx, "A", []string{"B"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["B"].DistanceMeters != 100 {
		t.Fatalf("got %+v, want DistanceMeters=100", got["B"])
	}

	stats := cache.Stats()
	if stats.Hits != 1 {
		t.Fatalf("hits = %d, want 1", stats.Hits)
	}
}

func TestRedisDistanceCacheMissFallsThroughAndBackfills(t *testing.T) {
	fallback := &fakeFallback{get: map[string]ports.DistanceResult{
		"B": {DistanceMeters: 42, DurationSeconds: 10},
	}}
	cache := newTestRedisCache(t, fallback)
	ctx := context.Background()

	got, err := cache.GetMany(ctx, "A", []string{"B"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["B"].DistanceMeters != 42 {
		t.Fatalf("got %+v, want DistanceMeters=42 from fallback", got["B"])
	}

	stats := cache.Stats()
	if stats.Misses != 1 {
		t.Fatalf("misses = %d, want 1", stats.Misses)
	}

	// Second lookup should now hit Redis directly (backfilled).
	got2, err := cache.GetMany(ctx, "A", []string{"B"})
	if err != nil {
		t.Fatalf("get (2nd): %v", err)
	}
	if got2["B"].DistanceMeters != 42 {
		t.Fatalf("backfilled value mismatch: %+v", got2["B"])
	}
}

func TestRedisDistanceCacheMissWithNoFallback(t *testing.T) {
	cache := newTestRedisCache(t, nil)
	ctx := context.Background()

	got, err := cache.GetMany(ctx, "A", []string{"B"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := got["B"]; ok {
		t.Fatalf("expected no result for uncached pair, got %+v", got["B"])
	}
}
