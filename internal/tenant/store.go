// internal/tenant/store.go
//
// Persistent tenant store on sqlx/Postgres.
//
// Context
// -------
// The resolver only needs BySubdomain; the remaining methods serve the
// admin provisioning surface (list, create, update, deactivate).  Every
// method takes a context so lookups respect request deadlines.  The
// Store interface exists so the resolver and handlers can run against
// call-counting fakes in tests.
//
// Notes
// -----
// • BySubdomain does NOT filter on active; routability policy lives in
//   the gate, not the data path.
// • Oxford commas, two spaces after periods.

package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Store is the durable source of truth for tenant records.
type Store interface {
	BySubdomain(ctx context.Context, subdomain string) (*Tenant, error)
	ByID(ctx context.Context, id string) (*Tenant, error)
	All(ctx context.Context) ([]Tenant, error)
	Create(ctx context.Context, subdomain, name string, emoji *string) (*Tenant, error)
	Update(ctx context.Context, id string, fields UpdateFields) (*Tenant, error)
	Deactivate(ctx context.Context, id string) (*Tenant, error)
}

// UpdateFields carries the optional mutation set for Update.  Nil means
// “leave unchanged”.
type UpdateFields struct {
	Subdomain *string
	Name      *string
	Emoji     *string
	Active    *bool
}

// SQLStore implements Store against the platform Postgres database.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps an open pool.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

const tenantCols = `id, subdomain, name, emoji, active, created_at, updated_at`

// BySubdomain fetches a single row by its unique subdomain key.
func (s *SQLStore) BySubdomain(ctx context.Context, subdomain string) (*Tenant, error) {
	const q = `SELECT ` + tenantCols + ` FROM tenant WHERE subdomain = $1 LIMIT 1`
	var t Tenant
	if err := s.db.GetContext(ctx, &t, q, subdomain); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tenant by subdomain %q: %w", subdomain, err)
	}
	return &t, nil
}

// ByID fetches a single row by primary key.
func (s *SQLStore) ByID(ctx context.Context, id string) (*Tenant, error) {
	const q = `SELECT ` + tenantCols + ` FROM tenant WHERE id = $1 LIMIT 1`
	var t Tenant
	if err := s.db.GetContext(ctx, &t, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("tenant by id %q: %w", id, err)
	}
	return &t, nil
}

// All returns every tenant, newest first.  Used by the admin dashboard,
// never by the request hot path.
func (s *SQLStore) All(ctx context.Context) ([]Tenant, error) {
	const q = `SELECT ` + tenantCols + ` FROM tenant ORDER BY created_at DESC`
	var rows []Tenant
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return rows, nil
}

// Create inserts a new active tenant with a fresh UUID.
func (s *SQLStore) Create(ctx context.Context, subdomain, name string, emoji *string) (*Tenant, error) {
	const q = `
		INSERT INTO tenant (id, subdomain, name, emoji, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, $5, $5)
		RETURNING ` + tenantCols
	var t Tenant
	now := time.Now().UTC()
	err := s.db.GetContext(ctx, &t, q, uuid.NewString(), subdomain, name, emoji, now)
	if err != nil {
		return nil, fmt.Errorf("create tenant %q: %w", subdomain, err)
	}
	return &t, nil
}

// Update applies the non-nil fields and returns the updated row.
func (s *SQLStore) Update(ctx context.Context, id string, fields UpdateFields) (*Tenant, error) {
	const q = `
		UPDATE tenant SET
			subdomain  = COALESCE($2, subdomain),
			name       = COALESCE($3, name),
			emoji      = COALESCE($4, emoji),
			active     = COALESCE($5, active),
			updated_at = $6
		WHERE id = $1
		RETURNING ` + tenantCols
	var t Tenant
	err := s.db.GetContext(ctx, &t, q,
		id, fields.Subdomain, fields.Name, fields.Emoji, fields.Active, time.Now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update tenant %q: %w", id, err)
	}
	return &t, nil
}

// Deactivate is the soft-delete path: the row stays, routing stops.
func (s *SQLStore) Deactivate(ctx context.Context, id string) (*Tenant, error) {
	off := false
	return s.Update(ctx, id, UpdateFields{Active: &off})
}
