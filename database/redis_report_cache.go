package database

import (
	"cfb-trends-go/logging"
	"cfb-trends-go/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisReportCache stores computed trends reports so repeat requests skip aggregation
type RedisReportCache struct {
	client *redis.Client
	logger *logging.Logger
}

// NewRedisReportCache connects to the Redis server at url
func NewRedisReportCache(ctx context.Context, url string) (*RedisReportCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := boundedContext(ctx, ShortTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger := logging.WithPrefix("Redis")
	logger.Infof("Connected to %s db=%d", opts.Addr, opts.DB)
	return NewRedisReportCacheFromClient(client), nil
}

// NewRedisReportCacheFromClient wraps an existing client
func NewRedisReportCacheFromClient(client *redis.Client) *RedisReportCache {
	return &RedisReportCache{
		client: client,
		logger: logging.WithPrefix("Redis"),
	}
}

// ReportKey returns the Redis key for a season and conference
func ReportKey(season int, conference string) string {
	if conference == "" {
		conference = "all"
	}
	return fmt.Sprintf("trends:report:%d:%s", season, conference)
}

// Get returns the cached result or ErrCacheMiss
func (c *RedisReportCache) Get(ctx context.Context, season int, conference string) (*models.TrendsResult, error) {
	data, err := c.client.Get(ctx, ReportKey(season, conference)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("get report: %w", err)
	}

	var result models.TrendsResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &result, nil
}

// Set stores the result, including when it was generated, for ttl
func (c *RedisReportCache) Set(ctx context.Context, result *models.TrendsResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	key := ReportKey(result.Season, result.Conference)
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("set report: %w", err)
	}

	c.logger.Debugf("Cached %s for %s", key, ttl)
	return nil
}

// Delete drops the cached report
func (c *RedisReportCache) Delete(ctx context.Context, season int, conference string) error {
	return c.client.Del(ctx, ReportKey(season, conference)).Err()
}

// Ping checks the server is still reachable
func (c *RedisReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisReportCache) Close() error {
	return c.client.Close()
}
