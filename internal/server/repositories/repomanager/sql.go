package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/migrations"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager serves repositories backed by a database/sql pool.
type SQLRepositoryManager struct {
	db    *sql.DB
	users users.Repository
}

func (m *SQLRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *SQLRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *SQLRepositoryManager) Close() error {
	return m.db.Close()
}

// NewPostgresRepositoryManager connects to cfg.DatabaseDSN with retry and
// applies the postgres migrations.
func NewPostgresRepositoryManager(ctx context.Context, cfg *config.Config, logger logging.Logger) (*SQLRepositoryManager, error) {
	db, err := openSQL(ctx, cfg, logger, "pgx", cfg.DatabaseDSN, "postgres", migrations.Postgres)
	if err != nil {
		return nil, err
	}
	return &SQLRepositoryManager{db: db, users: users.NewPostgresRepository(db)}, nil
}

// NewSQLiteRepositoryManager opens cfg.SQLitePath and applies the sqlite
// migrations. Writes are serialized through a single connection.
func NewSQLiteRepositoryManager(ctx context.Context, cfg *config.Config, logger logging.Logger) (*SQLRepositoryManager, error) {
	db, err := openSQL(ctx, cfg, logger, "sqlite", cfg.SQLitePath, cfg.SQLitePath, migrations.SQLite)
	if err != nil {
		return nil, err
	}
	return &SQLRepositoryManager{db: db, users: users.NewSQLiteRepository(db)}, nil
}

func openSQL(ctx context.Context, cfg *config.Config, logger logging.Logger, driver, dsn, target, dialect string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if dialect == migrations.SQLite {
		db.SetMaxOpenConns(1)
	}

	if err := dbx.ConnectWithRetry(ctx, logger, target, cfg.ConnectRetries, cfg.ConnectRetryDelay, db.PingContext); err != nil {
		_ = db.Close()
		return nil, err
	}

	n, err := migrations.Up(ctx, db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	logger.Info(ctx, "schema up to date", "applied", n)

	return db, nil
}
