package authz

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/config"
)

const cacheKeyPrefix = "authz:perm:"

// PermissionCache memoizes resolved snapshots per username. Negative
// entries (unknown username) use a shorter window so freshly created
// users are picked up quickly. Expiry and explicit invalidation are the
// only eviction mechanisms; there is no push invalidation.
type PermissionCache interface {
	Get(ctx context.Context, username string) (*Snapshot, bool)
	Set(ctx context.Context, username string, snapshot *Snapshot)
	Invalidate(ctx context.Context, usernames ...string)
}

type redisPermissionCache struct {
	client      *redis.Client
	positiveTTL time.Duration
	negativeTTL time.Duration
	logger      *zap.Logger
}

// NewRedisPermissionCache builds the Redis-backed cache. Any Redis
// failure is logged and treated as a miss so authorization keeps
// working (against the database) when Redis is down.
func NewRedisPermissionCache(client *redis.Client, cfg config.AuthzConfig, logger *zap.Logger) PermissionCache {
	positive := cfg.PositiveTTL
	if positive <= 0 {
		positive = 5 * time.Minute
	}
	negative := cfg.NegativeTTL
	if negative <= 0 {
		negative = 30 * time.Second
	}
	return &redisPermissionCache{
		client:      client,
		positiveTTL: positive,
		negativeTTL: negative,
		logger:      logger,
	}
}

func (c *redisPermissionCache) Get(ctx context.Context, username string) (*Snapshot, bool) {
	if c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, cacheKeyPrefix+username).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("permission cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		c.logger.Warn("permission cache entry corrupt", zap.String("username", username), zap.Error(err))
		return nil, false
	}
	return &snapshot, true
}

func (c *redisPermissionCache) Set(ctx context.Context, username string, snapshot *Snapshot) {
	if c.client == nil || snapshot == nil {
		return
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	ttl := c.positiveTTL
	if !snapshot.Found {
		ttl = c.negativeTTL
	}
	if err := c.client.Set(ctx, cacheKeyPrefix+username, raw, ttl).Err(); err != nil {
		c.logger.Warn("permission cache write failed", zap.Error(err))
	}
}

func (c *redisPermissionCache) Invalidate(ctx context.Context, usernames ...string) {
	if c.client == nil || len(usernames) == 0 {
		return
	}
	keys := make([]string, 0, len(usernames))
	for _, username := range usernames {
		if username == "" {
			continue
		}
		keys = append(keys, cacheKeyPrefix+username)
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("permission cache invalidation failed", zap.Error(err))
	}
}
