package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/reyhanturkkal/Task-Management/internal/database"
)

// newTestDB opens a throwaway SQLite database with the real schema.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("database.Migrate: %v", err)
	}
	return db
}
