package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed sqlite/*.sql
var sqliteFS embed.FS

// SQLiteMigrations lists the embedded .up.sql files in execution order.
func SQLiteMigrations() ([]string, error) {
	entries, err := sqliteFS.ReadDir("sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)
	return upFiles, nil
}

// RunSQLiteMigrations executes all SQLite migrations in order. Every
// statement is idempotent, so running twice is harmless.
func RunSQLiteMigrations(ctx context.Context, db *sql.DB) error {
	upFiles, err := SQLiteMigrations()
	if err != nil {
		return err
	}

	for _, file := range upFiles {
		migration, err := sqliteFS.ReadFile("sqlite/" + file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}
		if _, err := db.ExecContext(ctx, string(migration)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}

	return nil
}
