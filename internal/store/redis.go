package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisSessionPrefix = "baba:session:"

// RedisConfig holds configuration for the Redis connection.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// TTL expires idle sessions. Zero keeps them forever.
	TTL time.Duration
}

// RedisSessionRepo stores conversation session records in Redis, for
// deployments that run several API replicas.
type RedisSessionRepo struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ SessionRecords = (*RedisSessionRepo)(nil)

// NewRedisSessionRepo connects to Redis and verifies the connection.
func NewRedisSessionRepo(ctx context.Context, cfg RedisConfig) (*RedisSessionRepo, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisSessionRepo{rdb: rdb, ttl: cfg.TTL}, nil
}

// Ping checks if Redis is reachable.
func (r *RedisSessionRepo) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Close closes the client.
func (r *RedisSessionRepo) Close() error {
	return r.rdb.Close()
}

func (r *RedisSessionRepo) LoadSession(ctx context.Context, id string) (*SessionRecord, error) {
	data, err := r.rdb.Get(ctx, redisSessionPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	return &SessionRecord{ID: id, Data: data}, nil
}

func (r *RedisSessionRepo) SaveSession(ctx context.Context, rec SessionRecord) error {
	if err := r.rdb.Set(ctx, redisSessionPrefix+rec.ID, rec.Data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepo) DeleteSession(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, redisSessionPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}
