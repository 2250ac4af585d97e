package idempotency

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config configures a RedisStore.
type Config struct {
	// Client is the Redis client instance.
	Client *redis.Client

	// KeyPrefix is prepended to every key.
	// Default: "formflow:idempotency:"
	KeyPrefix string
}

// RedisStore shares replay state between API replicas. Expiry is left to
// Redis through the key TTL.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

func NewRedisStore(config Config) (*RedisStore, error) {
	if config.Client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "formflow:idempotency:"
	}
	return &RedisStore{
		client:    config.Client,
		keyPrefix: config.KeyPrefix,
	}, nil
}

// pendingMarker holds a reserved key. Stored responses are JSON and never
// start with a NUL byte.
var pendingMarker = []byte("\x00pending")

// releaseScript deletes the key only while it still holds the marker so a
// late Release never drops a settled response.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	if bytes.Equal(val, pendingMarker) {
		return nil, false, nil
	}
	return val, true, nil
}

func (s *RedisStore) Reserve(ctx context.Context, key string, ttl time.Duration) ([]byte, bool, error) {
	// The key can expire between SETNX and GET, so claim once more.
	for attempt := 0; attempt < 2; attempt++ {
		claimed, err := s.client.SetNX(ctx, s.keyPrefix+key, pendingMarker, ttl).Result()
		if err != nil {
			return nil, false, fmt.Errorf("failed to reserve key %s: %w", key, err)
		}
		if claimed {
			return nil, false, nil
		}

		val, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, false, fmt.Errorf("failed to get key %s: %w", key, err)
		}
		if bytes.Equal(val, pendingMarker) {
			return nil, false, ErrInFlight
		}
		return val, true, nil
	}
	return nil, false, ErrInFlight
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := releaseScript.Run(ctx, s.client, []string{s.keyPrefix + key}, pendingMarker).Err(); err != nil {
		return fmt.Errorf("failed to release key %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
