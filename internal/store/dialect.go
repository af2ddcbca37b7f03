package store

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Dialect abstracts the differences between the supported database engines:
// the SQL placeholder style and the classification of constraint-violation
// errors into the domain taxonomy. Everything else the repositories emit is
// engine-neutral SQL.
type Dialect interface {
	// Name is the goose dialect identifier ("pgx" or "sqlite3").
	Name() string

	// Placeholder is the squirrel placeholder format for this engine.
	Placeholder() sq.PlaceholderFormat

	IsUniqueViolation(err error) bool
	IsForeignKeyViolation(err error) bool
	IsCheckViolation(err error) bool
}

// postgresDialect classifies errors via the pgx driver's pgconn error codes.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
type postgresDialect struct{}

func (postgresDialect) Name() string                    { return "pgx" }
func (postgresDialect) Placeholder() sq.PlaceholderFormat { return sq.Dollar }

func (postgresDialect) IsUniqueViolation(err error) bool {
	return pgCode(err) == pgerrcode.UniqueViolation
}

func (postgresDialect) IsForeignKeyViolation(err error) bool {
	return pgCode(err) == pgerrcode.ForeignKeyViolation
}

func (postgresDialect) IsCheckViolation(err error) bool {
	return pgCode(err) == pgerrcode.CheckViolation
}

// pgCode extracts the PostgreSQL error code from err, or "" when err is not
// a pgconn error.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// sqliteDialect classifies errors via the go-sqlite3 extended result codes.
type sqliteDialect struct{}

func (sqliteDialect) Name() string                      { return "sqlite3" }
func (sqliteDialect) Placeholder() sq.PlaceholderFormat { return sq.Question }

func (sqliteDialect) IsUniqueViolation(err error) bool {
	return sqliteCode(err) == sqlite3.ErrConstraintUnique
}

func (sqliteDialect) IsForeignKeyViolation(err error) bool {
	return sqliteCode(err) == sqlite3.ErrConstraintForeignKey
}

func (sqliteDialect) IsCheckViolation(err error) bool {
	return sqliteCode(err) == sqlite3.ErrConstraintCheck
}

func sqliteCode(err error) sqlite3.ErrNoExtended {
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		return sqErr.ExtendedCode
	}

	return 0
}
