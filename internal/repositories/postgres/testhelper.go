package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/lib/pq"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/infrastructure/config"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/infrastructure/database"
)

// SetupTestDB creates a test database connection and runs migrations.
// Tests that need a live database are skipped when none is reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	if err := config.InitConfig("test"); err != nil {
		t.Skipf("Skipping: failed to init test config: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Skipf("Skipping: failed to load test config: %v", err)
	}

	pg, err := database.NewPostgres(&cfg.Database)
	if err != nil {
		t.Skipf("Skipping: test database not available: %v", err)
	}

	if err := pg.RunMigrations("../../../internal/infrastructure/database/migrations/postgres"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return pg.DB
}

// CleanupTestDB closes the database connection and cleans up test data
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	// Clean up all tables
	tables := []string{"project_members", "projects", "users"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("Warning: Failed to clean up table %s: %v", table, err)
		}
	}

	if err := db.Close(); err != nil {
		t.Logf("Warning: Failed to close database: %v", err)
	}
}
