package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/palteria/palteria_api/internal/config"
)

// RedisKV stores values as plain Redis strings without expiry. Collections
// are small (one shop's daily stock and orders), so whole-value reads and
// writes stay cheap.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV creates a Redis-backed KV from config and verifies the
// connection before returning.
func NewRedisKV(cfg *config.RedisConfig) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisKV{client: client}, nil
}

// Get retrieves a value by key.
func (r *RedisKV) Get(key string) ([]byte, bool, error) {
	raw, err := r.client.Get(context.Background(), key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// Set replaces the value at key with no TTL.
func (r *RedisKV) Set(key string, value []byte) error {
	return r.client.Set(context.Background(), key, value, 0).Err()
}

// Ping checks the Redis connection.
func (r *RedisKV) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *RedisKV) Close() error {
	return r.client.Close()
}
