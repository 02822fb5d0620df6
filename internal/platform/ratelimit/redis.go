package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a per-address limiter backed by a shared Redis counter, for
// deployments where in-process counting would be advisory only.
type Redis struct {
	client   *redis.Client
	prefix   string
	limit    int
	interval time.Duration
}

// NewRedis creates a limiter allowing limit requests per interval,
// counted in Redis under the given key prefix.
func NewRedis(client *redis.Client, prefix string, limit int, interval time.Duration) *Redis {
	return &Redis{
		client:   client,
		prefix:   prefix,
		limit:    limit,
		interval: interval,
	}
}

// key returns the Redis key for an address.
func (r *Redis) key(addr string) string {
	return fmt.Sprintf("%s:%s", r.prefix, addr)
}

// Allow counts a request from addr. The counter key expires with the
// window, which resets it for free. Backend errors fail open: an
// unavailable counter must not block every login.
func (r *Redis) Allow(ctx context.Context, addr string) bool {
	key := r.key(addr)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		slog.Error("rate limit counter unavailable", "addr", addr, "error", err)
		return true
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, r.interval).Err(); err != nil {
			slog.Error("rate limit expiry not set", "addr", addr, "error", err)
		}
	}

	return count <= int64(r.limit)
}
