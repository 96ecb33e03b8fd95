package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// RedisConfig captures the settings for the optional Redis token store.
type RedisConfig struct {
	Addr string
	DB   int
}

// ConnectRedis initialises a Redis client, validates connectivity with a
// ping, and returns a RedisStore over it.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, *RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, DB: cfg.DB})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, &RedisStore{client: client}, nil
}

// RedisStore keeps refresh tokens as TTL'd keys, so expiry needs no sweeper.
// Key format: rt:<token>
type RedisStore struct {
	client *redis.Client
}

func (s *RedisStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func (s *RedisStore) Lookup(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lookup refresh token: %w", err)
	}
	return userID, nil
}

func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (s *RedisStore) key(token string) string {
	return "rt:" + token
}
