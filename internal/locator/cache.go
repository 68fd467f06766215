package locator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix  = "grantly:pdf_link:"
	DefaultCacheTTL = 24 * time.Hour
)

// LinkCache remembers located application links per grant page.
type LinkCache interface {
	Get(ctx context.Context, grantURL string) (link string, ok bool, err error)
	Set(ctx context.Context, grantURL, link string) error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) LinkCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, grantURL string) (string, bool, error) {
	link, err := c.client.Get(ctx, CacheKey(grantURL)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading link cache: %w", err)
	}
	return link, true, nil
}

func (c *redisCache) Set(ctx context.Context, grantURL, link string) error {
	if err := c.client.Set(ctx, CacheKey(grantURL), link, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing link cache: %w", err)
	}
	return nil
}

// CacheKey is the Redis key holding the located link for grantURL.
func CacheKey(grantURL string) string {
	return cacheKeyPrefix + grantURL
}

type noopCache struct{}

// NoopCache never stores anything; used when Redis is not configured.
func NoopCache() LinkCache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func (noopCache) Set(context.Context, string, string) error {
	return nil
}
