package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aimplatform/reviewintel/internal/config"
	"github.com/aimplatform/reviewintel/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

// NewConnectSQLite opens the fallback SQLite database file. Foreign keys are
// enabled in the DSN because the cascade and set-null delete actions depend
// on them.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	path := cfg.FallbackPath
	if path == "" {
		path = "aim_fallback.db"
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", path))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error opening sqlite database")
		return nil, fmt.Errorf("error opening sqlite database: %w", err)
	}

	// sqlite serializes writers; a single connection avoids database-locked
	// errors under concurrent callers.
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting sqlite database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectSQLite").Str("path", path).Msg("connected to sqlite fallback")

	return &DB{
		DB:      conn,
		dialect: sqliteDialect{},
		logger:  log,
	}, nil
}
