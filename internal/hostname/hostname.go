// internal/hostname/hostname.go
//
// Host-header → subdomain extraction.
//
// Context
// -------
// Every inbound request carries a Host header such as
// “smith.brainplaykids.com:443”.  The gate needs the bare subdomain label
// (“smith”) or a definitive “this is the apex domain” answer before any
// tenant lookup runs.  This package is a pure function over strings: no
// I/O, no logging, and malformed input degrades to “no subdomain”.
//
// Local development uses the *.localhost convention: a trailing
// “localhost” label is treated as the apex regardless of the configured
// root domain, so “smith.localhost:3000” resolves the same tenant as
// “smith.brainplaykids.com” in production.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package hostname

import "strings"

// localLabel is the apex label used by the *.localhost dev convention.
const localLabel = "localhost"

// ExtractSubdomain returns the subdomain label of host relative to
// rootDomain, and ok == false when the host targets the apex, an
// unrecognized domain, or is empty/malformed.  The comparison is
// case-insensitive, and any :port suffix is ignored.
func ExtractSubdomain(host, rootDomain string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(StripPort(host)))
	if h == "" {
		return "", false
	}

	// Dev convention: a final “localhost” label wins over rootDomain.
	if h == localLabel {
		return "", false
	}
	if strings.HasSuffix(h, "."+localLabel) {
		sub := strings.TrimSuffix(h, "."+localLabel)
		if sub == "" {
			return "", false
		}
		return sub, true
	}

	root := strings.ToLower(strings.TrimSpace(rootDomain))
	if h == root {
		return "", false // apex
	}
	if strings.HasSuffix(h, "."+root) {
		sub := strings.TrimSuffix(h, "."+root)
		if sub == "" {
			return "", false
		}
		return sub, true
	}

	// Foreign host; the caller decides how to route it.
	return "", false
}

// IsLocal reports whether host follows the *.localhost dev convention.
// Redirect targets use http for local hosts and https otherwise.
func IsLocal(host string) bool {
	h := strings.ToLower(strings.TrimSpace(StripPort(host)))
	return h == localLabel || strings.HasSuffix(h, "."+localLabel)
}

// StripPort removes the :port suffix from a Host header when present.
func StripPort(h string) string {
	if i := strings.IndexByte(h, ':'); i != -1 {
		return h[:i]
	}
	return h
}
