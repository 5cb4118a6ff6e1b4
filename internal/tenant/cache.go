// internal/tenant/cache.go
//
// Redis-backed tenant snapshot cache.
//
// Context
// -------
// Cached snapshots sit in Redis under “tenant:<subdomain>” with a fixed
// TTL (one hour by default).  The cache is strictly best-effort: any
// Redis failure degrades the operation to a miss (Get) or a no-op
// (Set, Delete), is logged, and never escapes this boundary.  The
// resolver always has the store as fallback source of truth, so a dead
// Redis node costs latency, not availability.
//
// The client is constructed once at startup and injected; there is no
// lazy package-level connection.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package tenant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/brainplaykids/platform/internal/metrics"
)

// DefaultTTL is the snapshot lifetime absent explicit invalidation.
const DefaultTTL = time.Hour

const keyPrefix = "tenant:"

// Cache is the read-through/write-invalidate layer in front of the
// store.  Implementations must swallow their own I/O errors; ok == false
// covers miss, expiry, and connectivity failure alike.
type Cache interface {
	Get(ctx context.Context, subdomain string) (*Tenant, bool)
	Set(ctx context.Context, t *Tenant, ttl time.Duration)
	Delete(ctx context.Context, subdomain string)
}

// RedisCache implements Cache on a go-redis client.
type RedisCache struct {
	rdb *redis.Client
}

// NewRedisCache wraps an already-constructed client.  Callers own the
// client's lifetime (Ping at startup, Close at shutdown).
func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func cacheKey(subdomain string) string { return keyPrefix + subdomain }

// Get returns the cached snapshot, or ok == false on miss, expiry, a
// connectivity failure, or a corrupt payload.
func (c *RedisCache) Get(ctx context.Context, subdomain string) (*Tenant, bool) {
	val, err := c.rdb.Get(ctx, cacheKey(subdomain)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		metrics.CacheErrorsTotal.Inc()
		zap.S().Warnw("tenant cache get failed", "subdomain", subdomain, "err", err)
		return nil, false
	}

	var t Tenant
	if err := json.Unmarshal([]byte(val), &t); err != nil {
		// Corrupt entry; drop it so the next resolve repopulates.
		metrics.CacheErrorsTotal.Inc()
		zap.S().Warnw("tenant cache entry corrupt", "subdomain", subdomain, "err", err)
		c.Delete(ctx, subdomain)
		return nil, false
	}
	return &t, true
}

// Set writes the snapshot with the given TTL.  Failing to cache never
// fails the resolving request.
func (c *RedisCache) Set(ctx context.Context, t *Tenant, ttl time.Duration) {
	raw, err := json.Marshal(t)
	if err != nil {
		zap.S().Errorw("tenant cache marshal failed", "subdomain", t.Subdomain, "err", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(t.Subdomain), raw, ttl).Err(); err != nil {
		metrics.CacheErrorsTotal.Inc()
		zap.S().Warnw("tenant cache set failed", "subdomain", t.Subdomain, "err", err)
	}
}

// Delete evicts the snapshot immediately.  On failure the stale entry
// may persist up to its TTL, an accepted bounded-staleness window.
func (c *RedisCache) Delete(ctx context.Context, subdomain string) {
	if err := c.rdb.Del(ctx, cacheKey(subdomain)).Err(); err != nil {
		metrics.CacheErrorsTotal.Inc()
		zap.S().Warnw("tenant cache delete failed", "subdomain", subdomain, "err", err)
	}
}
