// Package di wires process-wide services that have a Redis-backed
// implementation with an in-process fallback.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	authusecase "markpad_backend/internal/feature/auth/usecase"
	"markpad_backend/internal/platform/ratelimit"
)

// NewRateLimiter creates the login rate limiter.
// With Redis available the counter is shared across processes; otherwise
// an in-process limiter is used and the limit is advisory per process.
func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) authusecase.RateLimiter {
	if rdb != nil {
		return ratelimit.NewRedis(rdb, "ratelimit:login", limit, window)
	}
	return ratelimit.NewMemory(limit, window)
}
