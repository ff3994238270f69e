package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateCache stores rate tables by base currency.
type RateCache interface {
	Get(ctx context.Context, base string) (RateTable, bool)
	Set(ctx context.Context, table RateTable) error
}

type cacheEntry struct {
	table     RateTable
	expiresAt time.Time
}

// MemoryCache is an in-process RateCache whose entries expire after a TTL.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewMemoryCache creates an in-process cache.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached table for base if it has not expired.
func (c *MemoryCache) Get(_ context.Context, base string) (RateTable, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := NormalizeCode(base)
	entry, ok := c.entries[key]
	if !ok {
		return RateTable{}, false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return RateTable{}, false
	}
	return entry.table, true
}

// Set stores table under its base currency.
func (c *MemoryCache) Set(_ context.Context, table RateTable) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[NormalizeCode(table.Base)] = cacheEntry{table: table, expiresAt: c.now().Add(c.ttl)}
	return nil
}

// CleanExpired removes expired entries and returns how many were dropped.
func (c *MemoryCache) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// StartCleanup drops expired entries every interval until ctx is done.
func (c *MemoryCache) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.CleanExpired()
		case <-ctx.Done():
			return
		}
	}
}

// Size returns the number of cached tables, including expired ones not yet cleaned.
func (c *MemoryCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// RedisCache shares rate tables between server instances through Redis.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

// NewRedisCache connects a RedisCache to addr.
func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: addr}), ttl)
}

// NewRedisCacheWithClient wraps an existing redis client.
func NewRedisCacheWithClient(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, prefix: "finance-toolkit:rates:"}
}

func (r *RedisCache) key(base string) string {
	return r.prefix + NormalizeCode(base)
}

// Get returns the cached table for base. Redis errors and misses both report false.
func (r *RedisCache) Get(ctx context.Context, base string) (RateTable, bool) {
	val, err := r.client.Get(ctx, r.key(base)).Result()
	if err != nil {
		return RateTable{}, false
	}
	var table RateTable
	if err := json.Unmarshal([]byte(val), &table); err != nil {
		return RateTable{}, false
	}
	return table, !table.Empty()
}

// Set stores table with the cache TTL.
func (r *RedisCache) Set(ctx context.Context, table RateTable) error {
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encoding rate table: %w", err)
	}
	if err := r.client.Set(ctx, r.key(table.Base), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("storing rate table: %w", err)
	}
	return nil
}
