package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/claimlens/claimlens/internal/model"
)

// RedisStore persists results in redis with a bounded retention window
type RedisStore struct {
	client    *redis.Client
	retention time.Duration
}

// NewRedisStore creates a redis-backed store. Ping failures are returned so
// the caller can decide to fall back to the in-memory store.
func NewRedisStore(ctx context.Context, cfg model.StoreConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	retention := cfg.Retention
	if retention == 0 {
		retention = 7 * 24 * time.Hour
	}

	return &RedisStore{client: client, retention: retention}, nil
}

// Put overwrites the record for its request identifier
func (s *RedisStore) Put(ctx context.Context, result *model.FactCheckResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if err := s.client.Set(ctx, Key(result.RequestID), data, s.retention).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Get retrieves the record for a request identifier
func (s *RedisStore) Get(ctx context.Context, requestID string) (*model.FactCheckResult, error) {
	data, err := s.client.Get(ctx, Key(requestID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var result model.FactCheckResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}

	return &result, nil
}

// Close releases the redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
