package postgres

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a migrated in-memory database. A single connection keeps
// every query on the same in-memory schema.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(sqlite.Open(":memory:"), "test")
	require.NoError(t, err)

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	return db
}
