package db

import "testing"

func TestMigrateIdempotent(t *testing.T) {
	database := NewTestDB(t)

	// NewTestDB already migrated once; running again must be a no-op.
	if err := Migrate(database); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestTestDatabaseIncludesMigrations(t *testing.T) {
	database := NewTestDB(t)

	// The test helper must apply the same migrations as the server so the
	// two entry points cannot drift.
	var name string
	err := database.QueryRow(
		`SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_items_available'`,
	).Scan(&name)
	if err != nil {
		t.Fatalf("expected migration index idx_items_available to exist: %v", err)
	}
}
