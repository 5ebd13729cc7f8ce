// AngelaMos | 2026
// cache.go

package quota

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "quota:limit:"

// CachedLimits reads limits through redis. Any cache failure falls through to
// the wrapped source; only source errors reach the caller.
type CachedLimits struct {
	next   LimitSource
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedLimits(
	next LimitSource,
	rdb *redis.Client,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedLimits {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedLimits{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *CachedLimits) MonthlyLimit(ctx context.Context, key string) (int, error) {
	if c.rdb == nil || c.ttl <= 0 {
		return c.next.MonthlyLimit(ctx, key)
	}

	cacheKey := cacheKeyPrefix + key

	raw, err := c.rdb.Get(ctx, cacheKey).Result()
	switch {
	case err == nil:
		if n, parseErr := parseLimit(raw); parseErr == nil {
			return n, nil
		}
		c.logger.WarnContext(ctx, "discarding malformed cached limit",
			"key", cacheKey,
			"value", raw,
		)
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "limit cache read failed",
			"key", cacheKey,
			"error", err,
		)
	}

	n, err := c.next.MonthlyLimit(ctx, key)
	if err != nil {
		return 0, err
	}

	if setErr := c.rdb.Set(ctx, cacheKey, strconv.Itoa(n), c.ttl).Err(); setErr != nil {
		c.logger.WarnContext(ctx, "limit cache write failed",
			"key", cacheKey,
			"error", setErr,
		)
	}

	return n, nil
}

// InvalidateLimit drops a cached limit after an operator edits the setting.
func InvalidateLimit(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, cacheKeyPrefix+key).Err()
}
