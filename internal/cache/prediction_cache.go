// Package cache memoizes prediction results in Redis. Predictions are a pure
// function of the questionnaire, so an entry never goes stale; the TTL only bounds
// memory.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/success-predictor/internal/config"
	"github.com/jonathan/success-predictor/internal/types"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get when no result is stored for the input.
var ErrMiss = errors.New("prediction cache miss")

// PredictionCache stores results keyed by the questionnaire that produced them.
type PredictionCache interface {
	Get(ctx context.Context, in types.AssessmentInput) (*types.PredictionResult, error)
	Set(ctx context.Context, in types.AssessmentInput, result types.PredictionResult) error
	Close() error
}

type redisPredictionCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisClient builds a client from the cache configuration.
func NewRedisClient(cfg config.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

// New wraps an existing client.
func New(client *redis.Client, prefix string, ttl time.Duration) PredictionCache {
	return &redisPredictionCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Open connects to Redis and verifies the connection with PING.
func Open(ctx context.Context, cfg config.CacheConfig) (PredictionCache, error) {
	client := NewRedisClient(cfg)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return New(client, cfg.KeyPrefix, cfg.TTL), nil
}

// Key derives the storage key for an input: prefix plus the SHA-256 of its JSON form.
func Key(prefix string, in types.AssessmentInput) (string, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("failed to encode assessment: %w", err)
	}
	sum := sha256.Sum256(data)
	return prefix + hex.EncodeToString(sum[:]), nil
}

func (c *redisPredictionCache) Get(ctx context.Context, in types.AssessmentInput) (*types.PredictionResult, error) {
	key, err := Key(c.prefix, in)
	if err != nil {
		return nil, err
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var result types.PredictionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode cached prediction: %w", err)
	}
	return &result, nil
}

func (c *redisPredictionCache) Set(ctx context.Context, in types.AssessmentInput, result types.PredictionResult) error {
	key, err := Key(c.prefix, in)
	if err != nil {
		return err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode prediction: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *redisPredictionCache) Close() error {
	return c.client.Close()
}
