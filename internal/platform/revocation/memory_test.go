package revocation

import (
	"context"
	"testing"
	"time"
)

func TestMemory_RevokeAndCheck(t *testing.T) {
	t.Parallel()

	set := NewMemory()
	ctx := context.Background()

	if err := set.Revoke(ctx, "token-a", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	revoked, err := set.IsRevoked(ctx, "token-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !revoked {
		t.Error("revoked token should be reported revoked")
	}

	revoked, err = set.IsRevoked(ctx, "token-b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revoked {
		t.Error("unknown token should not be reported revoked")
	}
}

func TestMemory_NonPositiveTTLIsNoop(t *testing.T) {
	t.Parallel()

	set := NewMemory()
	ctx := context.Background()

	if err := set.Revoke(ctx, "expired-token", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := set.Revoke(ctx, "expired-token", -time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	revoked, err := set.IsRevoked(ctx, "expired-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revoked {
		t.Error("a token past its expiry needs no revocation entry")
	}
}

func TestMemory_EntriesExpireWithToken(t *testing.T) {
	t.Parallel()

	set := NewMemory()
	ctx := context.Background()

	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	set.now = func() time.Time { return current }

	if err := set.Revoke(ctx, "token-a", 30*time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current = current.Add(29 * time.Minute)
	if revoked, _ := set.IsRevoked(ctx, "token-a"); !revoked {
		t.Error("entry should still hold before the token expires")
	}

	current = current.Add(2 * time.Minute)
	if revoked, _ := set.IsRevoked(ctx, "token-a"); revoked {
		t.Error("entry should lapse once the token it revokes has expired")
	}

	// The lapsed entry is gone from the set, not just masked.
	set.mu.Lock()
	_, ok := set.revoked["token-a"]
	set.mu.Unlock()
	if ok {
		t.Error("lapsed entry should be pruned")
	}
}

func TestMemory_RevokePrunesLapsedEntries(t *testing.T) {
	t.Parallel()

	set := NewMemory()
	ctx := context.Background()

	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	set.now = func() time.Time { return current }

	if err := set.Revoke(ctx, "old-token", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current = current.Add(2 * time.Minute)
	if err := set.Revoke(ctx, "new-token", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	set.mu.Lock()
	_, oldPresent := set.revoked["old-token"]
	size := len(set.revoked)
	set.mu.Unlock()
	if oldPresent {
		t.Error("lapsed entry should be pruned on write")
	}
	if size != 1 {
		t.Errorf("expected 1 live entry, got %d", size)
	}
}
