package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/purepath/account-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "account:refresh:"

// Store whitelists refresh tokens by jti. A refresh token is only honored
// while its jti is present; rotation and logout delete it.
type Store interface {
	Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error
	// Consume validates and atomically removes the jti, returning the user
	// it was issued to. A second consume of the same jti fails.
	Consume(ctx context.Context, tokenID string) (string, error)
}

type redisStore struct {
	rdb *redis.Client
}

func NewRedisStore(addr, password string) Store {
	return &redisStore{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       0,
		}),
	}
}

func NewStoreWithRedis(rdb *redis.Client) (Store, error) {
	if rdb == nil {
		return nil, errors.New("redis client is nil")
	}
	return &redisStore{rdb: rdb}, nil
}

func (s *redisStore) Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	if tokenID == "" || userID == "" {
		return errors.New("token id and user id are required")
	}
	if err := s.rdb.Set(ctx, keyPrefix+tokenID, userID, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func (s *redisStore) Consume(ctx context.Context, tokenID string) (string, error) {
	if tokenID == "" {
		return "", domain.ErrInvalidToken
	}
	userID, err := s.rdb.GetDel(ctx, keyPrefix+tokenID).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrInvalidToken
	}
	if err != nil {
		return "", fmt.Errorf("consume refresh token: %w", err)
	}
	return userID, nil
}
