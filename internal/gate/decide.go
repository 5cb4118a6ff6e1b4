// internal/gate/decide.go
//
// Routing decision for one inbound request.
//
// Context
// -------
// The gate runs once per request, before any business logic.  Decide is
// a plain function over a plain request struct so the routing policy is
// testable without an HTTP server; the middleware in middleware.go only
// applies its outcome.
//
// Outcomes:
//
//   • Pass     – apex traffic (or a foreign host); handled by the apex
//     router unmodified.
//   • Rewrite  – live tenant; path gains a “/<subdomain>” prefix and the
//     tenant identity headers are injected.
//   • Redirect – unknown, inactive, or undeterminable tenant; the user
//     lands on the apex root.  A store outage produces this same
//     outcome, never a 500: apex availability must not depend on
//     tenant-store health.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package gate

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/brainplaykids/platform/internal/hostname"
	"github.com/brainplaykids/platform/internal/tenant"
)

// Request is the request projection the gate decides on.
type Request struct {
	Method   string
	Host     string
	Path     string
	RawQuery string
}

// Kind tags the Outcome variant.
type Kind int

const (
	Pass Kind = iota
	Rewrite
	Redirect
)

// Outcome is the gate's verdict.  Path, Headers, and Tenant are set for
// Rewrite; URL for Redirect.
type Outcome struct {
	Kind    Kind
	Path    string
	Headers map[string]string
	URL     string
	Tenant  *tenant.Tenant
}

// Resolver is the slice of tenant.Resolver the gate consumes.
type Resolver interface {
	Resolve(ctx context.Context, subdomain string) (*tenant.Tenant, error)
}

// Gate decides routing per inbound request.
type Gate struct {
	resolver   Resolver
	rootDomain string
}

// New constructs a Gate for the given platform root domain.
func New(resolver Resolver, rootDomain string) *Gate {
	return &Gate{resolver: resolver, rootDomain: rootDomain}
}

// Decide maps one request to its terminal outcome.
func (g *Gate) Decide(ctx context.Context, req Request) Outcome {
	sub, ok := hostname.ExtractSubdomain(req.Host, g.rootDomain)
	if !ok {
		// Apex or foreign host.  Unrecognized apex paths pass through
		// as well; the page-routing layer owns the final 404.
		return Outcome{Kind: Pass}
	}

	t, err := g.resolver.Resolve(ctx, sub)
	if err != nil || !t.Routable() {
		if err != nil && !errors.Is(err, tenant.ErrNotFound) {
			zap.S().Warnw("tenant resolution degraded to redirect",
				"subdomain", sub, "err", err)
		}
		return Outcome{Kind: Redirect, URL: g.apexURL(req.Host)}
	}

	path := req.Path
	if path == "" {
		path = "/"
	}
	return Outcome{
		Kind: Rewrite,
		Path: "/" + sub + path,
		Headers: map[string]string{
			tenant.HeaderTenantID:        t.ID,
			tenant.HeaderTenantSubdomain: t.Subdomain,
		},
		Tenant: t,
	}
}

// apexURL builds the redirect target: https on production hosts, http
// for the *.localhost dev convention (port preserved).
func (g *Gate) apexURL(host string) string {
	if hostname.IsLocal(host) {
		apex := "localhost"
		if h := hostname.StripPort(host); h != host {
			apex += host[len(h):] // reattach :port
		}
		return "http://" + apex + "/"
	}
	return "https://" + g.rootDomain + "/"
}
