// Package migrations embeds the credential store schema for each SQL dialect
// and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// Dialects supported by Up.
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// Up applies all pending migrations of dialect to db and returns how many ran.
func Up(ctx context.Context, db *sql.DB, dialect string) (int, error) {
	var d database.Dialect
	switch dialect {
	case Postgres:
		d = database.DialectPostgres
	case SQLite:
		d = database.DialectSQLite3
	default:
		return 0, fmt.Errorf("unsupported migration dialect: %s", dialect)
	}

	dir, err := fs.Sub(Migrations, dialect)
	if err != nil {
		return 0, err
	}

	p, err := goose.NewProvider(d, db, dir)
	if err != nil {
		return 0, fmt.Errorf("goose provider: %w", err)
	}

	results, err := p.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("migrate %s: %w", dialect, err)
	}
	return len(results), nil
}
