package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pickupgames/signup/internal/model"
)

type pgAnnouncementRepository struct {
	db *gorm.DB
}

func NewPGAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &pgAnnouncementRepository{db: db}
}

func (r *pgAnnouncementRepository) Create(ctx context.Context, ann *model.Announcement) error {
	return r.db.WithContext(ctx).Create(ann).Error
}

func (r *pgAnnouncementRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	var ann model.Announcement
	if err := r.db.WithContext(ctx).First(&ann, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ann, nil
}

func (r *pgAnnouncementRepository) List(ctx context.Context, limit int) ([]model.Announcement, error) {
	var anns []model.Announcement
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&anns).Error
	return anns, err
}

func (r *pgAnnouncementRepository) ListActive(ctx context.Context) ([]model.Announcement, error) {
	var anns []model.Announcement
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("created_at DESC").Find(&anns).Error
	return anns, err
}

func (r *pgAnnouncementRepository) Update(ctx context.Context, ann *model.Announcement) error {
	return r.db.WithContext(ctx).Save(ann).Error
}

func (r *pgAnnouncementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Announcement{}, "id = ?", id)
	return rowsAffected(res)
}
