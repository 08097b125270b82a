// internal/library/testutil_test.go
package library

import (
	"database/sql"
	_ "embed"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

//go:embed testdata/schema.sql
var testSchema string

// setupTestDB opens an in-memory database with the full schema applied.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return db
}

func ptr[T any](v T) *T {
	return &v
}
