package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vsinha/supplycover/pkg/domain/entities"
)

const keyPrefix = "supplycover:coverage:"

// RedisCache stores coverage results as JSON values under a common prefix
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisClient connects to addr without retrying failed commands
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:       addr,
		DB:         0,
		MaxRetries: -1,
	})
}

// NewRedisCache creates a cache on an existing client
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]entities.CoverageResult, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var results []entities.CoverageResult
	if err := json.Unmarshal([]byte(val), &results); err != nil {
		return nil, false, fmt.Errorf("decode cached coverage %s: %w", key, err)
	}
	return results, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, results []entities.CoverageResult) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, keyPrefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Clear deletes every cached coverage entry
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
