package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a revocation set shared across processes. Entries expire with
// the token they revoke, so the set never needs explicit eviction.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a revocation set stored in Redis under the given key
// prefix.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{
		client: client,
		prefix: prefix,
	}
}

// key returns the Redis key for a raw token. Tokens are hashed so the
// keyspace stays small and the credential itself never lands in Redis.
func (r *Redis) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%s:%s", r.prefix, hex.EncodeToString(sum[:]))
}

// Revoke records the raw token for ttl.
func (r *Redis) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.key(token), "1", ttl).Err()
}

// IsRevoked reports whether the raw token is in the set.
func (r *Redis) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
