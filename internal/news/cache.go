package news

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-aliyah/internal/metrics"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
)

// Cache backends, used as the metrics label.
const (
	backendMemory = "memory"
	backendRedis  = "redis"
)

// maxMemoryEntries bounds the in-process cache.
const maxMemoryEntries = 10_000

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *metrics.CacheMetrics
}

// NewMemoryCache returns an in-process [TranslationCache] whose entries
// expire after ttl.
func NewMemoryCache(ttl time.Duration, clock clockwork.Clock, m *metrics.CacheMetrics) TranslationCache {
	return &memoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		clock:   clock,
		metrics: m,
	}
}

// Get implements [TranslationCache].
func (c *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.clock.Now().Before(entry.expiresAt) {
		c.metrics.Misses.WithLabelValues(backendMemory).Inc()
		return "", false, nil
	}

	c.metrics.Hits.WithLabelValues(backendMemory).Inc()
	return entry.value, true, nil
}

// Set implements [TranslationCache].
func (c *memoryCache) Set(_ context.Context, key, value string) error {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= maxMemoryEntries {
		c.evictExpiredLocked(now)
	}
	if len(c.entries) >= maxMemoryEntries {
		// still full: drop an arbitrary entry
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}

	c.entries[key] = memoryEntry{value: value, expiresAt: now.Add(c.ttl)}
	return nil
}

func (c *memoryCache) evictExpiredLocked(now time.Time) {
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

const redisKeyPrefix = "translation:"

type redisCache struct {
	rdb     goredis.Cmdable
	ttl     time.Duration
	metrics *metrics.CacheMetrics
}

// NewRedisCache returns a [TranslationCache] stored in Redis with ttl.
func NewRedisCache(rdb goredis.Cmdable, ttl time.Duration, m *metrics.CacheMetrics) TranslationCache {
	return &redisCache{rdb: rdb, ttl: ttl, metrics: m}
}

// Get implements [TranslationCache].
func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.rdb.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		c.metrics.Misses.WithLabelValues(backendRedis).Inc()
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
	}

	c.metrics.Hits.WithLabelValues(backendRedis).Inc()
	return value, true, nil
}

// Set implements [TranslationCache].
func (c *redisCache) Set(ctx context.Context, key, value string) error {
	if err := c.rdb.Set(ctx, redisKeyPrefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
	}
	return nil
}

// NewRedisClient parses a redis:// URL into a client.
func NewRedisClient(redisURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	return goredis.NewClient(opts), nil
}
