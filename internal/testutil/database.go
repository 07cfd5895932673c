// Package testutil provides testing utilities for database-backed tests.
//
// Database Setup:
//
//	db := testutil.SetupSQLiteDB(t)
//	defer testutil.TeardownDB(t, db)
//
// Each call returns a fresh, fully migrated in-memory SQLite database that is
// private to the calling test.
//
// Migration Path:
//
// Migrations are automatically discovered by walking up from the current
// working directory until a "migrations/sqlite" directory is found.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/allisson/dispatcher/internal/database"
)

// SetupSQLiteDB creates a new in-memory SQLite database and runs migrations.
func SetupSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver:           database.DriverSQLite,
		ConnectionString: ":memory:",
	})
	require.NoError(t, err, "failed to open sqlite database")

	path, err := database.FindMigrationsPath(database.DriverSQLite)
	require.NoError(t, err, "failed to find sqlite migrations")

	err = database.Migrate(db, database.DriverSQLite, path)
	require.NoError(t, err, "failed to run sqlite migrations")

	return db
}

// TeardownDB closes the database connection and cleans up.
func TeardownDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db != nil {
		err := db.Close()
		require.NoError(t, err, "failed to close database connection")
	}
}

// CleanupDB removes every row from the application tables.
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()

	for _, table := range []string{"dispatch_records", "queued_jobs"} {
		_, err := db.Exec("DELETE FROM " + table) //nolint:gosec // fixed table names
		require.NoError(t, err, "failed to clean %s table", table)
	}
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count) //nolint:gosec // test helper
	require.NoError(t, err)
	return count
}
