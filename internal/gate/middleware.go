// internal/gate/middleware.go
//
// HTTP middleware applying the gate's outcome.
//
// Context
// -------
// Middleware sits at the top of the chi chain.  It translates the
// incoming request into a gate.Request, decides, and either forwards
// unmodified, rewrites the URL path in place (prefixing the subdomain
// segment, query string untouched), or issues the redirect.  Rewritten
// requests additionally carry the tenant identity as headers and as a
// context value for in-process handlers.
//
// The gate runs exactly once per inbound request, so an already
// rewritten path is never re-prefixed.

package gate

import (
	"net/http"

	"github.com/brainplaykids/platform/internal/hostname"
	"github.com/brainplaykids/platform/internal/tenant"
)

// Middleware wraps next with the per-request routing decision.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		out := g.Decide(r.Context(), Request{
			Method:   r.Method,
			Host:     r.Host,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
		})

		switch out.Kind {
		case Redirect:
			http.Redirect(w, r, out.URL, http.StatusTemporaryRedirect)
		case Rewrite:
			r.URL.Path = out.Path
			r.URL.RawPath = ""
			for k, v := range out.Headers {
				r.Header.Set(k, v)
			}
			next.ServeHTTP(w, r.WithContext(tenant.WithTenant(r.Context(), out.Tenant)))
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// ForceHTTPS wraps h.  If the request arrived over plain HTTP and the
// host is not a *.localhost dev host, it issues a 308 Permanent
// Redirect to the HTTPS version of the same URL.
func ForceHTTPS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.TLS != nil || hostname.IsLocal(r.Host) {
			h.ServeHTTP(w, r)
			return
		}
		target := "https://" + r.Host + r.URL.RequestURI()
		http.Redirect(w, r, target, http.StatusPermanentRedirect)
	})
}
