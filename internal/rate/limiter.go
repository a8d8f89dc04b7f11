package rate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result reports the outcome of one rate-limit check.
type Result struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter throttles repeated attempts for a given key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// RedisLimiter implements a fixed window counter (INCR + EXPIRE). Applied to
// the login endpoint keyed by email and client address; failures at the
// limiter itself fail open so an unavailable Redis never blocks logins.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	max    int64
	window time.Duration
}

// NewRedisLimiter builds a limiter allowing max attempts per window.
func NewRedisLimiter(client *redis.Client, prefix string, max int, window time.Duration) *RedisLimiter {
	if prefix == "" {
		prefix = "rl:"
	}
	return &RedisLimiter{client: client, prefix: prefix, max: int64(max), window: window}
}

// Allow counts the attempt and reports whether it fits the window.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	now := time.Now().UTC()
	windowStart := now.Truncate(l.window)
	redisKey := fmt.Sprintf("%s%s:%d", l.prefix, strings.ReplaceAll(key, " ", "_"), windowStart.Unix())

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, err
	}

	hits := incr.Val()
	if hits == 1 {
		_ = l.client.Expire(ctx, redisKey, l.window).Err()
	}

	if hits > l.max {
		retry := windowStart.Add(l.window).Sub(now)
		return Result{Allowed: false, Remaining: 0, RetryAfter: retry}, nil
	}
	return Result{Allowed: true, Remaining: l.max - hits}, nil
}
