// internal/tenant/context.go
//
// Request-scoped tenant context plus the propagated header names.  The
// gate attaches the resolved tenant after a successful resolution;
// downstream handlers read it back without reparsing the Host header.

package tenant

import "context"

// Headers injected by the gate on rewritten requests, mirrored by the
// context value below for in-process consumers.
const (
	HeaderTenantID        = "X-Tenant-ID"
	HeaderTenantSubdomain = "X-Tenant-Subdomain"
)

// ctxKey is unexported to avoid context-key collisions.
type ctxKey struct{}

// WithTenant returns a new context carrying the resolved tenant.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext extracts the tenant attached by the gate.  ok == false on
// apex requests or when the gate has not run.
func FromContext(ctx context.Context) (*Tenant, bool) {
	t, ok := ctx.Value(ctxKey{}).(*Tenant)
	return t, ok
}
