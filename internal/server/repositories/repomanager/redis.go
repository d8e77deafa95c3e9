package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
	"github.com/redis/go-redis/v9"
)

type RedisRepositoryManager struct {
	client *redis.Client
	users  users.Repository
}

// NewRedisRepositoryManager dials cfg.RedisAddr and waits for PING to
// succeed under the configured retry policy.
func NewRedisRepositoryManager(ctx context.Context, cfg *config.Config, logger logging.Logger) (*RedisRepositoryManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ping := func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
	if err := dbx.ConnectWithRetry(ctx, logger, cfg.RedisAddr, cfg.ConnectRetries, cfg.ConnectRetryDelay, ping); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisRepositoryManager{
		client: client,
		users:  users.NewRedisRepository(client, cfg.RedisKeyPrefix),
	}, nil
}

func (m *RedisRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *RedisRepositoryManager) Close() error {
	return m.client.Close()
}
