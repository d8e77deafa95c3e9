package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/codec"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces user keys: <prefix><username>.
const DefaultRedisPrefix = "auth:user:"

type redisRecord struct {
	ID           string `cbor:"id"`
	UserName     string `cbor:"username"`
	PasswordHash string `cbor:"password_hash"`
	CreatedAt    int64  `cbor:"created_at"`
}

// RedisRepository stores one CBOR-encoded record per username key. SETNX
// gives the write-time uniqueness guarantee.
type RedisRepository struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewRedisRepository(client redis.UniversalClient, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisRepository{client: client, prefix: prefix, now: time.Now}
}

func (r *RedisRepository) key(userName string) string {
	return r.prefix + userName
}

func (r *RedisRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	createdAt := r.now().UTC().Truncate(time.Millisecond)
	rec := redisRecord{
		ID:           uuid.NewString(),
		UserName:     user.UserName,
		PasswordHash: user.PasswordHash,
		CreatedAt:    createdAt.UnixMilli(),
	}

	data, err := codec.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}

	created, err := r.client.SetNX(ctx, r.key(user.UserName), data, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}
	if !created {
		return nil, common.ErrAlreadyExists
	}

	user.ID = rec.ID
	user.CreatedAt = createdAt
	return user, nil
}

func (r *RedisRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	raw, err := r.client.Get(ctx, r.key(userName)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("redis error: %w", err)
	}

	var rec redisRecord
	if err := codec.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode user %q: %w", userName, err)
	}

	return &models.User{
		ID:           rec.ID,
		UserName:     rec.UserName,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    time.UnixMilli(rec.CreatedAt).UTC(),
	}, nil
}
