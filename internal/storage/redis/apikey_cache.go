package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const apiKeyCachePrefix = "apikey:"

// APIKeyCache is a look-aside cache of key digests that have already been
// validated against the database. Only positive results are cached, and only
// with a TTL: key validity is permanent until external deletion, so a stale
// positive entry can never admit a revoked key for longer than the TTL.
type APIKeyCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewAPIKeyCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *APIKeyCache {
	return &APIKeyCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("APIKeyCache"),
	}
}

// IsKnownValid reports whether the digest was recently validated. Cache
// failures are logged and reported as a miss; the caller falls through to
// the database.
func (c *APIKeyCache) IsKnownValid(ctx context.Context, keyHash string) bool {
	_, err := c.client.Get(ctx, apiKeyCachePrefix+keyHash).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Redis lookup failed, falling through to database", zap.Error(err))
		}
		return false
	}
	return true
}

func (c *APIKeyCache) MarkValid(ctx context.Context, keyHash string) {
	if err := c.client.Set(ctx, apiKeyCachePrefix+keyHash, "1", c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache validated api key digest", zap.Error(err))
	}
}
