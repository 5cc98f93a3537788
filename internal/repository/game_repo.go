package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"pickupgames/signup/internal/model"
)

type GameRepository interface {
	Create(ctx context.Context, game *model.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Game, error)
	// GetByIDForUpdate loads the game and holds a row lock until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Game, error)
	GetByCode(ctx context.Context, code string) (*model.Game, error)
	// CodeExists also sees soft-deleted games, so access codes are never handed out twice.
	CodeExists(ctx context.Context, code string) (bool, error)
	ListStartingFrom(ctx context.Context, from time.Time) ([]model.Game, error)
	Update(ctx context.Context, game *model.Game) error
	Delete(ctx context.Context, id uuid.UUID) error
}
