package repository

import (
	"context"
	"time"
)

// RevocationStore remembers revoked session token IDs until the token would have expired anyway.
// Implementations: Redis (multi-instance) or in-memory (single instance / tests).
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
