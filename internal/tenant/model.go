// internal/tenant/model.go
//
// Tenant record and cache snapshot.
//
// Context
// -------
// A Tenant is one isolated family workspace, addressed by a unique
// subdomain.  The struct below is the flat snapshot that flows through
// the resolver and the Redis cache: identity plus display attributes,
// never the nested family/child graph.  Deactivation (Active == false)
// is the soft-delete path; rows are not hard-deleted in normal
// operation.
//
// Notes
// -----
// • JSON tags define the cache wire format; db tags map the `tenant`
//   table.  Oxford commas, two spaces after periods.

package tenant

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no tenant row matches the lookup key.
var ErrNotFound = errors.New("tenant not found")

// Tenant mirrors one row in the `tenant` table, minus relations.
type Tenant struct {
	ID        string    `db:"id"         json:"id"`
	Subdomain string    `db:"subdomain"  json:"subdomain"`
	Name      string    `db:"name"       json:"name"`
	Emoji     *string   `db:"emoji"      json:"emoji,omitempty"`
	Active    bool      `db:"active"     json:"active"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Routable reports whether subdomain traffic may reach this tenant.  A
// suspended workspace is indistinguishable from a missing one for every
// caller past the resolver boundary.
func (t *Tenant) Routable() bool {
	return t != nil && t.Active
}
