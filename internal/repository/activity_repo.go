package repository

import (
	"context"

	"github.com/google/uuid"

	"pickupgames/signup/internal/model"
)

// ActivityRepository is append-only apart from game-wide removal.
type ActivityRepository interface {
	Create(ctx context.Context, entry *model.ActivityEntry) error
	ListRecent(ctx context.Context, limit int) ([]model.ActivityEntry, error)
	ListByGame(ctx context.Context, gameID uuid.UUID, limit int) ([]model.ActivityEntry, error)
	DeleteByGame(ctx context.Context, gameID uuid.UUID) error
}
