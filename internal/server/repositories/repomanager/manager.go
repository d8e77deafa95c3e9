// Package repomanager opens the configured credential store backend and
// vends its repositories. Opening includes the bounded connection retry and,
// for SQL backends, schema migrations.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	// Close releases the underlying connection pool, if any.
	Close() error
}

// Open builds the RepositoryManager selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config, logger logging.Logger) (RepositoryManager, error) {
	logger = logger.With("module", "store", "driver", cfg.StoreDriver)

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return NewPostgresRepositoryManager(ctx, cfg, logger)
	case config.DriverSQLite:
		return NewSQLiteRepositoryManager(ctx, cfg, logger)
	case config.DriverRedis:
		return NewRedisRepositoryManager(ctx, cfg, logger)
	case config.DriverMemory:
		logger.Warn(ctx, "using in-memory credential store, records are lost on restart")
		return NewInMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown store driver: %q", cfg.StoreDriver)
	}
}

type InMemoryRepositoryManager struct {
	users users.Repository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewMemoryRepository()}
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}
