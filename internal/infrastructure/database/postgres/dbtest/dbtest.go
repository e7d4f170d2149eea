// Package dbtest opens migrated in-memory databases for tests of packages that
// sit on top of the postgres repositories.
package dbtest

import (
	"testing"

	"food-delivery-backend/internal/infrastructure/database/postgres"

	"github.com/glebarez/sqlite"
)

// New returns a migrated in-memory database that is closed when the test ends.
func New(t testing.TB) *postgres.DB {
	t.Helper()

	db, err := postgres.Open(sqlite.Open(":memory:"), "test")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// one connection so every query sees the same in-memory schema
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}
