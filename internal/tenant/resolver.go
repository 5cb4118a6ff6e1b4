// internal/tenant/resolver.go
//
// Subdomain → tenant resolution.
//
// Context
// -------
// Resolve is the request hot path: cache first, store on miss, populate
// on hit-from-store.  Concurrent misses for the same subdomain are
// collapsed through singleflight so a cold key costs one store query,
// not one per in-flight request.  Two requests racing past the barrier
// and both writing the cache remains harmless: both write the same
// snapshot, and Redis SET is last-writer-wins.
//
// Negative results are deliberately never cached.  A subdomain that
// does not exist yet may be claimed moments later by onboarding, and a
// cached absence would mask the fresh signup until the TTL ran out.
//
// The resolver never filters on Active; it returns whatever the data
// path holds.  Routability policy (active == routable) belongs to the
// gate, exposed here only through the Routable convenience.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package tenant

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/brainplaykids/platform/internal/metrics"
)

// Resolver orchestrates parser output → cache → store.
type Resolver struct {
	store Store
	cache Cache
	ttl   time.Duration
	sfg   singleflight.Group
}

// NewResolver constructs a Resolver.  ttl <= 0 falls back to DefaultTTL.
func NewResolver(store Store, cache Cache, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Resolver{store: store, cache: cache, ttl: ttl}
}

// Resolve maps a subdomain label to its tenant snapshot.  An empty or
// blank label (the apex case) resolves to (nil, nil).  ErrNotFound
// means the store answered definitively; any other error means tenant
// existence could not be determined this attempt.
func (r *Resolver) Resolve(ctx context.Context, subdomain string) (*Tenant, error) {
	key := strings.ToLower(strings.TrimSpace(subdomain))
	if key == "" {
		return nil, nil
	}

	if t, ok := r.cache.Get(ctx, key); ok {
		metrics.ResolveCacheHitTotal.Inc()
		return t, nil
	}
	metrics.ResolveCacheMissTotal.Inc()

	v, err, _ := r.sfg.Do(key, func() (interface{}, error) {
		t, err := r.store.BySubdomain(ctx, key)
		if err != nil {
			return nil, err
		}
		// Best-effort populate; a failed write costs the next request
		// one more store round-trip, nothing else.
		r.cache.Set(ctx, t, r.ttl)
		return t, nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			metrics.ResolveStoreErrorsTotal.Inc()
			zap.S().Errorw("tenant store lookup failed", "subdomain", key, "err", err)
		}
		return nil, err
	}
	return v.(*Tenant), nil
}

// IsRoutable reports whether subdomain maps to an existing, active
// tenant.  Store errors count as not routable; the caller has already
// committed to fail-toward-apex semantics.
func (r *Resolver) IsRoutable(ctx context.Context, subdomain string) bool {
	t, err := r.Resolve(ctx, subdomain)
	return err == nil && t.Routable()
}

// Invalidate evicts the cached snapshot for subdomain.  Mutation
// endpoints must call this synchronously, before writing their HTTP
// response, keyed by the old subdomain value (and the new one on a
// rename).
func (r *Resolver) Invalidate(ctx context.Context, subdomain string) {
	key := strings.ToLower(strings.TrimSpace(subdomain))
	if key == "" {
		return
	}
	metrics.InvalidateTotal.Inc()
	r.cache.Delete(ctx, key)
}
