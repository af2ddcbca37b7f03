// Package migrations applies the embedded SQL schema migrations with goose.
// Each supported database dialect has its own migration directory because
// the DDL differs between PostgreSQL and SQLite (serial columns, timestamp
// types), while the seed data is shared logic expressed per dialect.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Migrate runs all pending migrations for the given goose dialect
// ("pgx" or "sqlite3") against db.
func Migrate(db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	var dir string
	switch dialect {
	case "pgx", "postgres":
		dir = "postgres"
		dialect = "pgx"
	case "sqlite3", "sqlite":
		dir = "sqlite"
		dialect = "sqlite3"
	default:
		return fmt.Errorf("migration error: unsupported dialect %q", dialect)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
