// Package cache provides caching implementations for frame encoders.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio_chart/internal/feature/pricechart/domain/paint"
	"portfolio_chart/internal/feature/pricechart/usecase"
)

// CachingFrameEncoder decorates a FrameEncoder with Redis caching.
// Drawing is idempotent, so a frame key always maps to the same bytes and
// entries only go stale when a chart's series is regenerated.
type CachingFrameEncoder struct {
	inner     usecase.FrameEncoder
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingFrameEncoder decorates inner with Redis caching.
// If ttl is 0, entries expire at the next local midnight, when the daily
// rebuild replaces the series. If namespace is empty, it uses "frames".
func NewCachingFrameEncoder(rdb *redis.Client, ttl time.Duration, inner usecase.FrameEncoder, namespace string) *CachingFrameEncoder {
	if ttl < 0 {
		ttl = 0
	}
	if namespace == "" {
		namespace = "frames"
	}
	return &CachingFrameEncoder{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

func (c *CachingFrameEncoder) ContentType() string {
	return c.inner.ContentType()
}

// Encode returns the cached image for key, encoding and storing it on a miss.
func (c *CachingFrameEncoder) Encode(ctx context.Context, key usecase.FrameKey, frame paint.Frame) ([]byte, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Encode(ctx, key, frame)
	}

	k := c.cacheKey(key)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, k).Bytes(); err == nil && len(b) > 0 {
		return b, nil
	} else if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("frame cache read failed", "key", k, "error", err)
	}

	// 2) Fallback to the encoder
	out, err := c.inner.Encode(ctx, key, frame)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if err := c.rdb.Set(ctx, k, out, c.expiry()).Err(); err != nil {
		slog.Warn("frame cache write failed", "key", k, "error", err)
	}
	return out, nil
}

// Invalidate deletes every cached frame of chart.
func (c *CachingFrameEncoder) Invalidate(ctx context.Context, chart string) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, c.cacheKeyPrefix(chart)+"*")
}

func (c *CachingFrameEncoder) expiry() time.Duration {
	if c.ttl > 0 {
		return c.ttl
	}
	return TimeUntilNextMidnight()
}

// cacheKey generates a cache key for a specific frame.
func (c *CachingFrameEncoder) cacheKey(key usecase.FrameKey) string {
	key.Chart = safe(key.Chart)
	return c.namespace + ":" + key.String()
}

// cacheKeyPrefix generates a prefix matching every frame of chart.
func (c *CachingFrameEncoder) cacheKeyPrefix(chart string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(chart))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingFrameEncoder) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "*", "_")
	return s
}
