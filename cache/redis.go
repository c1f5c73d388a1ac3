package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix is prepended to every key when none is configured.
const DefaultKeyPrefix = "guesslang:"

const (
	defaultTimeout = 2 * time.Second
	scanBatch      = 100
)

// RedisCache is a Redis-backed detection result cache.
type RedisCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	timeout   time.Duration
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	URL       string        // Redis connection URL (e.g., "redis://localhost:6379/0")
	TTL       int           // TTL in seconds (0 = no expiration)
	KeyPrefix string        // Prefix for all keys (default: "guesslang:")
	Timeout   time.Duration // Per-operation timeout (default: 2s)
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	c := NewRedisCacheFromClient(redis.NewClient(opts), cfg.TTL, cfg.KeyPrefix)
	if cfg.Timeout > 0 {
		c.timeout = cfg.Timeout
	}

	if err := c.Ping(); err != nil {
		_ = c.client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return c, nil
}

// NewRedisCacheFromClient creates a RedisCache from an existing Redis client.
func NewRedisCacheFromClient(client *redis.Client, ttlSeconds int, keyPrefix string) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	if ttlSeconds <= 0 {
		ttl = 0
	}

	return &RedisCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
		timeout:   defaultTimeout,
	}
}

func (c *RedisCache) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}

// Get retrieves a code from Redis. Errors are reported as misses.
func (c *RedisCache) Get(key string) (string, bool) {
	ctx, cancel := c.opContext()
	defer cancel()

	val, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores a code in Redis.
func (c *RedisCache) Set(key string, value string) error {
	ctx, cancel := c.opContext()
	defer cancel()

	return c.client.Set(ctx, c.keyPrefix+key, value, c.ttl).Err()
}

// Entries scans every key under the prefix and returns the live entries
// with the prefix removed.
func (c *RedisCache) Entries() (map[string]string, error) {
	ctx, cancel := c.opContext()
	defer cancel()

	result := make(map[string]string)
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.keyPrefix+"*", scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		if len(keys) > 0 {
			vals, err := c.client.MGet(ctx, keys...).Result()
			if err != nil {
				return nil, fmt.Errorf("mget: %w", err)
			}
			for i, v := range vals {
				s, ok := v.(string)
				if !ok {
					continue // expired between SCAN and MGET
				}
				result[strings.TrimPrefix(keys[i], c.keyPrefix)] = s
			}
		}

		if next == 0 {
			return result, nil
		}
		cursor = next
	}
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection.
func (c *RedisCache) Ping() error {
	ctx, cancel := c.opContext()
	defer cancel()

	return c.client.Ping(ctx).Err()
}

var _ Enumerable = (*RedisCache)(nil)
