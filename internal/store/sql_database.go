package store

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/aimplatform/reviewintel/internal/config"
	"github.com/aimplatform/reviewintel/internal/logger"
	"github.com/aimplatform/reviewintel/migrations"
)

// DB wraps the shared database connection together with the dialect that
// produced it. Repositories embed *DB and consult the dialect for
// placeholder style and constraint-error classification.
type DB struct {
	*sql.DB
	dialect Dialect
	logger  *logger.Logger
}

// Migrate applies all pending schema migrations for the connection's
// dialect, including the idempotent admin seed.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect.Name())
}

// builder returns a squirrel statement builder configured with the
// dialect's placeholder format.
func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.dialect.Placeholder())
}

// Connect opens the durable store. PostgreSQL is preferred when a DSN is
// configured; if the connection cannot be established the function falls
// back to a local SQLite file so the platform stays usable without a
// database server.
func Connect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if cfg.DSN != "" {
		db, err := NewConnectPostgres(ctx, cfg, log)
		if err == nil {
			return db, nil
		}

		log.Warn().Err(err).
			Str("func", "Connect").
			Msg("postgres unavailable, falling back to sqlite")
	}

	return NewConnectSQLite(ctx, cfg, log)
}
