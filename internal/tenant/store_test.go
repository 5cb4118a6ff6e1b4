// internal/tenant/store_test.go
//
// Unit-tests for SQLStore using sqlmock.
//
// Run: go test ./internal/tenant -v

package tenant

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	return NewSQLStore(sqlx.NewDb(db, "sqlmock")), mock, func() { db.Close() }
}

func tenantRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "subdomain", "name", "emoji", "active", "created_at", "updated_at",
	})
}

func TestBySubdomain(t *testing.T) {
	store, mock, done := newMockStore(t)
	defer done()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, subdomain, name, emoji, active, created_at, updated_at FROM tenant WHERE subdomain = $1 LIMIT 1`,
	)).
		WithArgs("acme").
		WillReturnRows(tenantRows().AddRow("t1", "acme", "Acme Family", nil, true, now, now))

	got, err := store.BySubdomain(context.Background(), "acme")
	if err != nil {
		t.Fatalf("BySubdomain error: %v", err)
	}
	if got.ID != "t1" || got.Subdomain != "acme" || !got.Active {
		t.Fatalf("unexpected tenant: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestBySubdomain_NotFound(t *testing.T) {
	store, mock, done := newMockStore(t)
	defer done()

	mock.ExpectQuery(`SELECT .+ FROM tenant WHERE subdomain = \$1`).
		WithArgs("ghost").
		WillReturnRows(tenantRows())

	_, err := store.BySubdomain(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreate(t *testing.T) {
	store, mock, done := newMockStore(t)
	defer done()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO tenant`).
		WithArgs(sqlmock.AnyArg(), "smith", "Smith Family", nil, sqlmock.AnyArg()).
		WillReturnRows(tenantRows().AddRow("t2", "smith", "Smith Family", nil, true, now, now))

	got, err := store.Create(context.Background(), "smith", "Smith Family", nil)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "t2" || !got.Active {
		t.Fatalf("unexpected tenant: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	store, mock, done := newMockStore(t)
	defer done()

	now := time.Now()
	name := "Renamed Family"
	mock.ExpectQuery(`UPDATE tenant SET`).
		WithArgs("t1", nil, &name, nil, nil, sqlmock.AnyArg()).
		WillReturnRows(tenantRows().AddRow("t1", "acme", name, nil, true, now, now))

	got, err := store.Update(context.Background(), "t1", UpdateFields{Name: &name})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Name != name {
		t.Fatalf("unexpected tenant: %+v", got)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	store, mock, done := newMockStore(t)
	defer done()

	mock.ExpectQuery(`UPDATE tenant SET`).
		WillReturnRows(tenantRows())

	_, err := store.Update(context.Background(), "nope", UpdateFields{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeactivate(t *testing.T) {
	store, mock, done := newMockStore(t)
	defer done()

	now := time.Now()
	mock.ExpectQuery(`UPDATE tenant SET`).
		WillReturnRows(tenantRows().AddRow("t1", "acme", "Acme Family", nil, false, now, now))

	got, err := store.Deactivate(context.Background(), "t1")
	if err != nil {
		t.Fatalf("Deactivate error: %v", err)
	}
	if got.Active {
		t.Fatal("tenant still active after Deactivate")
	}
}
