// Package revocation records tokens invalidated before their natural
// expiry, keyed by the raw token string.
package revocation

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process revocation set. Entries carry the revoking
// token's remaining lifetime and are pruned lazily, so the set stays
// bounded by the token expiration window.
type Memory struct {
	mu      sync.Mutex
	revoked map[string]time.Time // raw token -> entry expiry

	now func() time.Time
}

// NewMemory creates an empty in-process revocation set.
func NewMemory() *Memory {
	return &Memory{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke records the raw token for ttl. A non-positive ttl means the
// token already expired and nothing needs recording.
func (m *Memory) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.prune(now)
	m.revoked[token] = now.Add(ttl)
	return nil
}

// IsRevoked reports whether the raw token is in the set.
func (m *Memory) IsRevoked(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiry, ok := m.revoked[token]
	if !ok {
		return false, nil
	}
	if m.now().After(expiry) {
		delete(m.revoked, token)
		return false, nil
	}
	return true, nil
}

// prune drops entries whose token has expired naturally. Callers hold the
// lock.
func (m *Memory) prune(now time.Time) {
	for token, expiry := range m.revoked {
		if now.After(expiry) {
			delete(m.revoked, token)
		}
	}
}
