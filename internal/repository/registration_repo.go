package repository

import (
	"context"

	"github.com/google/uuid"

	"pickupgames/signup/internal/model"
)

// RegistrationRepository lists are ordered by created_at, then id, unless stated otherwise.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *model.Registration) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Registration, error)
	// GetByGameAndEmail matches the email case-insensitively.
	GetByGameAndEmail(ctx context.Context, gameID uuid.UUID, email string) (*model.Registration, error)
	ListByGameAndStatus(ctx context.Context, gameID uuid.UUID, status model.RegistrationStatus) ([]model.Registration, error)
	CountByGameAndStatus(ctx context.Context, gameID uuid.UUID, status model.RegistrationStatus) (int64, error)
	ListByStatus(ctx context.Context, status model.RegistrationStatus) ([]model.Registration, error)
	// UpdateStatus sets status and position together; position nil clears it.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.RegistrationStatus, position *int) error
	UpdatePosition(ctx context.Context, id uuid.UUID, position int) error
	UpdatePhoneDigits(ctx context.Context, id uuid.UUID, digits string) error
	DeleteByGame(ctx context.Context, gameID uuid.UUID) error
}
