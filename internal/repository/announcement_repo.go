package repository

import (
	"context"

	"github.com/google/uuid"

	"pickupgames/signup/internal/model"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, ann *model.Announcement) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error)
	List(ctx context.Context, limit int) ([]model.Announcement, error)
	ListActive(ctx context.Context) ([]model.Announcement, error)
	Update(ctx context.Context, ann *model.Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error
}
