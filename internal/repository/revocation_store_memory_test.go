package repository

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRevocationExpires(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := &memoryRevocationStore{
		now:     func() time.Time { return now },
		entries: make(map[string]time.Time),
	}
	ctx := context.Background()

	if err := store.Revoke(ctx, "jti-1", time.Hour); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	revoked, _ := store.IsRevoked(ctx, "jti-1")
	if !revoked {
		t.Fatal("expected token to be revoked")
	}

	now = now.Add(2 * time.Hour)
	revoked, _ = store.IsRevoked(ctx, "jti-1")
	if revoked {
		t.Fatal("expected revocation to lapse after ttl")
	}

	if revoked, _ := store.IsRevoked(ctx, "unknown"); revoked {
		t.Fatal("unknown token should not be revoked")
	}
}
