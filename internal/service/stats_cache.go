package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	statsCacheKey = "employee:stats"
	statsCacheTTL = 60 * time.Second
)

// StatsCache caches computed statistics. A miss or a cache outage degrades to
// recomputation; it never fails a request.
type StatsCache interface {
	Get(ctx context.Context) (*Stats, bool)
	Set(ctx context.Context, stats *Stats)
	Invalidate(ctx context.Context)
}

type redisStatsCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStatsCache builds a Redis-backed stats cache. Returns nil when no
// client is configured, which callers treat as "no caching".
func NewRedisStatsCache(client *redis.Client, logger *zap.Logger) StatsCache {
	if client == nil {
		return nil
	}
	return &redisStatsCache{client: client, logger: logger}
}

func (c *redisStatsCache) Get(ctx context.Context) (*Stats, bool) {
	raw, err := c.client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var stats Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

func (c *redisStatsCache) Set(ctx context.Context, stats *Stats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
		c.logger.Debug("stats cache set failed", zap.Error(err))
	}
}

func (c *redisStatsCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, statsCacheKey).Err(); err != nil {
		c.logger.Debug("stats cache invalidate failed", zap.Error(err))
	}
}
