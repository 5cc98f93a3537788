package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pickupgames/signup/internal/model"
	"pickupgames/signup/internal/repository"
	"pickupgames/signup/pkg/crypto"
)

// Core carries what every service that mutates games and registrations shares:
// the unit-of-work manager, the per-game lock, the clock and the logger.
type Core struct {
	tx       repository.TxManager
	locker   repository.GameLocker
	logger   *zap.Logger
	now      func() time.Time
	drawCode func() (string, error)
}

type Option func(*Core)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Core) { c.now = now }
}

// WithCodeGenerator overrides the random access code draw.
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(c *Core) { c.drawCode = gen }
}

func NewCore(tx repository.TxManager, locker repository.GameLocker, logger *zap.Logger, opts ...Option) *Core {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Core{
		tx:       tx,
		locker:   locker,
		logger:   logger,
		now:      time.Now,
		drawCode: crypto.GenerateAccessCode,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// inGameScope runs fn under the game's lock and inside one transaction, with the game row
// re-read (and row-locked in postgres) after the lock is held.
func (c *Core) inGameScope(
	ctx context.Context,
	gameID uuid.UUID,
	fn func(ctx context.Context, repos repository.Repositories, game *model.Game) error,
) error {
	unlock, err := c.locker.Lock(ctx, gameID)
	if err != nil {
		return fmt.Errorf("lock game: %w", err)
	}
	defer unlock()

	return c.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		game, err := repos.Games.GetByIDForUpdate(ctx, gameID)
		if err != nil {
			return translateNotFound(err, ErrGameNotFound, "load game")
		}
		return fn(ctx, repos, game)
	})
}

func (c *Core) appendActivity(
	ctx context.Context,
	repos repository.Repositories,
	gameID uuid.UUID,
	reg *model.Registration,
	kind model.ActivityKind,
	message string,
	details map[string]interface{},
) error {
	entry := &model.ActivityEntry{
		GameID:    gameID,
		Kind:      kind,
		Message:   truncate(message, 255),
		Details:   details,
		CreatedAt: c.now(),
	}
	if reg != nil {
		id := reg.ID
		entry.RegistrationID = &id
	}
	if err := repos.Activities.Create(ctx, entry); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

func transitionDetails(from, to model.RegistrationStatus, actor string) map[string]interface{} {
	return map[string]interface{}{
		"from":  string(from),
		"to":    string(to),
		"actor": actor,
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
