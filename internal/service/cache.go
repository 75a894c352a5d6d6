package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	recommendKeyPrefix  = "recommend"
	recommendVersionKey = "recommend:version"
)

// ScoredRecipe is the cached form of one ranked recommendation
type ScoredRecipe struct {
	ID      string   `json:"id"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// RecommendationCache stores ranked similar-recipe lists per catalog version.
// Callers read Version before loading candidates and pass it to Get and Set,
// so a ranking is never stored under a version newer than its data.
type RecommendationCache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, version int64, recipeID uuid.UUID, limit int) ([]ScoredRecipe, bool, error)
	Set(ctx context.Context, version int64, recipeID uuid.UUID, limit int, results []ScoredRecipe) error
	// Invalidate moves the catalog to a new version.
	Invalidate(ctx context.Context) error
}

// RedisRecommendationCache keeps rankings in Redis under a catalog version.
// Bumping the version orphans every older entry, which then expires by TTL.
type RedisRecommendationCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisRecommendationCache creates a Redis-backed cache
func NewRedisRecommendationCache(client *redis.Client, ttl time.Duration) *RedisRecommendationCache {
	return &RedisRecommendationCache{redis: client, ttl: ttl}
}

// Version returns the current catalog version, 0 before the first invalidation
func (c *RedisRecommendationCache) Version(ctx context.Context) (int64, error) {
	version, err := c.redis.Get(ctx, recommendVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache version: %w", err)
	}
	return version, nil
}

// Get returns the ranking cached under version, if present
func (c *RedisRecommendationCache) Get(ctx context.Context, version int64, recipeID uuid.UUID, limit int) ([]ScoredRecipe, bool, error) {
	data, err := c.redis.Get(ctx, recommendKey(version, recipeID, limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached recommendations: %w", err)
	}

	var results []ScoredRecipe
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached recommendations: %w", err)
	}
	return results, true, nil
}

// Set stores a ranking computed from the catalog at version
func (c *RedisRecommendationCache) Set(ctx context.Context, version int64, recipeID uuid.UUID, limit int, results []ScoredRecipe) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode recommendations: %w", err)
	}
	return c.redis.Set(ctx, recommendKey(version, recipeID, limit), data, c.ttl).Err()
}

// Invalidate bumps the catalog version
func (c *RedisRecommendationCache) Invalidate(ctx context.Context) error {
	return c.redis.Incr(ctx, recommendVersionKey).Err()
}

func recommendKey(version int64, recipeID uuid.UUID, limit int) string {
	return fmt.Sprintf("%s:v%d:%s:%d", recommendKeyPrefix, version, recipeID, limit)
}
