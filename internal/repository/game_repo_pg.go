package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pickupgames/signup/internal/model"
)

type pgGameRepository struct {
	db *gorm.DB
}

func NewPGGameRepository(db *gorm.DB) GameRepository {
	return &pgGameRepository{db: db}
}

func (r *pgGameRepository) Create(ctx context.Context, game *model.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

func (r *pgGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	var game model.Game
	if err := r.db.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *pgGameRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Game, error) {
	var game model.Game
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&game, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *pgGameRepository) GetByCode(ctx context.Context, code string) (*model.Game, error) {
	var game model.Game
	if err := r.db.WithContext(ctx).Where("access_code = ?", code).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *pgGameRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().
		Model(&model.Game{}).
		Where("access_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (r *pgGameRepository) ListStartingFrom(ctx context.Context, from time.Time) ([]model.Game, error) {
	var games []model.Game
	err := r.db.WithContext(ctx).
		Where("start_time >= ?", from).
		Order("start_time ASC").
		Find(&games).Error
	return games, err
}

func (r *pgGameRepository) Update(ctx context.Context, game *model.Game) error {
	return r.db.WithContext(ctx).Save(game).Error
}

func (r *pgGameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Game{}, "id = ?", id).Error
}
