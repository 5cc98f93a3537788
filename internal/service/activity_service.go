package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"pickupgames/signup/internal/model"
	"pickupgames/signup/internal/repository"
)

const maxActivityLimit = 200

type ActivityService interface {
	// Recent returns the newest entries across all games; limit <= 0 uses the configured feed size.
	Recent(ctx context.Context, limit int) ([]model.ActivityEntry, error)
	ForGame(ctx context.Context, gameID uuid.UUID, limit int) ([]model.ActivityEntry, error)
}

type activityService struct {
	activities   repository.ActivityRepository
	defaultLimit int
}

func NewActivityService(activities repository.ActivityRepository, defaultLimit int) ActivityService {
	if defaultLimit <= 0 {
		defaultLimit = 12
	}
	return &activityService{activities: activities, defaultLimit: defaultLimit}
}

func (s *activityService) limit(n int) int {
	if n <= 0 {
		return s.defaultLimit
	}
	if n > maxActivityLimit {
		return maxActivityLimit
	}
	return n
}

func (s *activityService) Recent(ctx context.Context, limit int) ([]model.ActivityEntry, error) {
	entries, err := s.activities.ListRecent(ctx, s.limit(limit))
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return entries, nil
}

func (s *activityService) ForGame(ctx context.Context, gameID uuid.UUID, limit int) ([]model.ActivityEntry, error) {
	entries, err := s.activities.ListByGame(ctx, gameID, s.limit(limit))
	if err != nil {
		return nil, fmt.Errorf("list game activity: %w", err)
	}
	return entries, nil
}

var _ ActivityService = (*activityService)(nil)
