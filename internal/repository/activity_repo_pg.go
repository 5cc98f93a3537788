package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pickupgames/signup/internal/model"
)

type pgActivityRepository struct {
	db *gorm.DB
}

func NewPGActivityRepository(db *gorm.DB) ActivityRepository {
	return &pgActivityRepository{db: db}
}

func (r *pgActivityRepository) Create(ctx context.Context, entry *model.ActivityEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *pgActivityRepository) ListRecent(ctx context.Context, limit int) ([]model.ActivityEntry, error) {
	var entries []model.ActivityEntry
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *pgActivityRepository) ListByGame(ctx context.Context, gameID uuid.UUID, limit int) ([]model.ActivityEntry, error) {
	var entries []model.ActivityEntry
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *pgActivityRepository) DeleteByGame(ctx context.Context, gameID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ActivityEntry{}, "game_id = ?", gameID).Error
}
