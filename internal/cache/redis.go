// internal/cache/redis.go
//
// Redis client construction and lifecycle.
//
// Context
// -------
// The tenant snapshot cache runs over one process-wide Redis client,
// constructed here at startup and closed by the shutdown hook — never
// lazily on first use, so failure modes are visible at boot.  A Redis
// node that is down at startup is logged and tolerated: every cache
// operation degrades to a miss and the resolver keeps answering from
// the store.

package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// pingTimeout bounds the startup connectivity probe.  A hung Redis must
// not block boot.
const pingTimeout = 2 * time.Second

// Connect builds the client and probes it once.  The client is returned
// even when the probe fails; go-redis reconnects on demand, and the
// cache layer tolerates a dead node.
func Connect(addr, password string, db int) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		zap.S().Warnw("redis unreachable at startup, cache degraded to miss",
			"addr", addr, "err", err)
	} else {
		zap.S().Infow("redis online", "addr", addr)
	}
	return rdb
}

// Close releases the client.  Called from the shutdown hook.
func Close(rdb *redis.Client) {
	if err := rdb.Close(); err != nil {
		zap.S().Warnw("redis close failed", "err", err)
	}
}
