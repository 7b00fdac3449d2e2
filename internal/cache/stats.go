// Package cache stores the dashboard statistics snapshot in Redis so the
// aggregate SQL runs at most once per TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/tourvisto/backend/internal/domain"
)

// StatsKey is the Redis key holding the JSON-encoded snapshot.
const StatsKey = "tourvisto:dashboard:stats:v1"

// Recorder observes cache lookups. *metrics.Collectors satisfies it.
type Recorder interface {
	CacheHit()
	CacheMiss()
}

type nopRecorder struct{}

func (nopRecorder) CacheHit()  {}
func (nopRecorder) CacheMiss() {}

// StatsCache reads and writes the dashboard statistics snapshot.
type StatsCache struct {
	client redis.Cmdable
	ttl    time.Duration
	rec    Recorder
}

// NewStatsCache returns a cache whose entries expire after ttl.
// rec may be nil.
func NewStatsCache(client redis.Cmdable, ttl time.Duration, rec Recorder) *StatsCache {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &StatsCache{client: client, ttl: ttl, rec: rec}
}

// Get returns the cached snapshot. ok is false on a miss, including when the
// stored value can no longer be decoded.
func (c *StatsCache) Get(ctx context.Context) (snap domain.StatsSnapshot, ok bool, err error) {
	raw, err := c.client.Get(ctx, StatsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		c.rec.CacheMiss()
		return domain.StatsSnapshot{}, false, nil
	}
	if err != nil {
		return domain.StatsSnapshot{}, false, fmt.Errorf("cache.StatsCache.Get: %w", err)
	}

	if err := json.Unmarshal(raw, &snap); err != nil {
		c.rec.CacheMiss()
		return domain.StatsSnapshot{}, false, nil
	}
	c.rec.CacheHit()
	return snap, true, nil
}

// Set stores snap for the configured TTL.
func (c *StatsCache) Set(ctx context.Context, snap domain.StatsSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cache.StatsCache.Set: marshal: %w", err)
	}
	if err := c.client.Set(ctx, StatsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache.StatsCache.Set: %w", err)
	}
	return nil
}

// NewClient parses a redis:// URL, connects and pings.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache.NewClient: parse url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache.NewClient: ping: %w", err)
	}
	return client, nil
}
