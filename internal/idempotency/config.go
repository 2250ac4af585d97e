package idempotency

import (
	"context"
	"fmt"
	"log"

	"github.com/linskybing/formflow/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewFromConfig uses Redis when REDIS_ADDR is set and a process-local store
// otherwise.
func NewFromConfig(ctx context.Context) (Store, error) {
	if config.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, idempotency keys are kept in memory")
		return NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", config.RedisAddr, err)
	}
	log.Printf("Idempotency store connected to redis %s", config.RedisAddr)
	return NewRedisStore(Config{Client: client})
}
