package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pickupgames/signup/internal/model"
)

type pgRegistrationRepository struct {
	db *gorm.DB
}

func NewPGRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &pgRegistrationRepository{db: db}
}

func (r *pgRegistrationRepository) Create(ctx context.Context, reg *model.Registration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *pgRegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	var reg model.Registration
	if err := r.db.WithContext(ctx).First(&reg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *pgRegistrationRepository) GetByGameAndEmail(
	ctx context.Context, gameID uuid.UUID, email string,
) (*model.Registration, error) {
	var reg model.Registration
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND lower(email) = lower(?)", gameID, email).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *pgRegistrationRepository) ListByGameAndStatus(
	ctx context.Context, gameID uuid.UUID, status model.RegistrationStatus,
) ([]model.Registration, error) {
	var regs []model.Registration
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND status = ?", gameID, status).
		Order("created_at ASC, id ASC").
		Find(&regs).Error
	return regs, err
}

func (r *pgRegistrationRepository) CountByGameAndStatus(
	ctx context.Context, gameID uuid.UUID, status model.RegistrationStatus,
) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Registration{}).
		Where("game_id = ? AND status = ?", gameID, status).
		Count(&count).Error
	return count, err
}

func (r *pgRegistrationRepository) ListByStatus(ctx context.Context, status model.RegistrationStatus) ([]model.Registration, error) {
	var regs []model.Registration
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC, id ASC").
		Find(&regs).Error
	return regs, err
}

func (r *pgRegistrationRepository) UpdateStatus(
	ctx context.Context, id uuid.UUID, status model.RegistrationStatus, position *int,
) error {
	// Hooks are skipped: BeforeSave would run against the empty model and blank phone_digits.
	res := r.db.WithContext(ctx).
		Session(&gorm.Session{SkipHooks: true}).
		Model(&model.Registration{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status), "position": position})
	return rowsAffected(res)
}

func (r *pgRegistrationRepository) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	res := r.db.WithContext(ctx).
		Model(&model.Registration{}).
		Where("id = ?", id).
		UpdateColumn("position", position)
	return rowsAffected(res)
}

func (r *pgRegistrationRepository) UpdatePhoneDigits(ctx context.Context, id uuid.UUID, digits string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Registration{}).
		Where("id = ?", id).
		UpdateColumn("phone_digits", digits)
	return rowsAffected(res)
}

func (r *pgRegistrationRepository) DeleteByGame(ctx context.Context, gameID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Registration{}, "game_id = ?", gameID).Error
}

func rowsAffected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
