package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Cache keys
const (
	ReviewsCacheKey = "reviews:all" // Public review list, newest first
)

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}

// Remember returns the cached value under key, or calls load and caches its
// result for ttl. A Redis failure is logged and treated as a miss, so the
// database stays the source of truth. cached reports a cache hit.
func Remember[T any](ctx context.Context, rdb *redis.Client, key string, ttl time.Duration, load func() (T, error)) (value T, cached bool, err error) {
	found, err := GetCache(ctx, rdb, key, &value)
	if err == nil && found {
		return value, true, nil // Cache hit
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache read failed")
	}
	var zero T
	value, err = load() // Load from the database
	if err != nil {
		return zero, false, err
	}
	if err := SetCache(ctx, rdb, key, value, ttl); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache write failed")
	}
	return value, false, nil
}
