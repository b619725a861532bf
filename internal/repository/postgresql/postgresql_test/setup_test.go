package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/lckh-guru/lckh-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL, migrates it and empties every table.
// The test is skipped when no database is configured.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, database.RunMigrations(db))
	require.NoError(t, truncateAllTables(context.Background(), db))
	return db
}

func truncateAllTables(ctx context.Context, db *database.DB) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"one_time_tokens",
		"refresh_tokens",
		"activities",
		"schedules",
		"holidays",
		"school_settings",
		"users",
	}

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}
