package repository

import (
	"context"

	"github.com/google/uuid"
)

// GameLocker provides an exclusive scope per game. Every capacity-affecting operation runs inside it,
// so check-then-set on the confirmed count cannot interleave between requests.
type GameLocker interface {
	// Lock blocks until the game's lock is held or ctx is done. The returned func releases it.
	Lock(ctx context.Context, gameID uuid.UUID) (unlock func(), err error)
}
