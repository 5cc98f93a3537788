package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pickupgames/signup/internal/model"
	"pickupgames/signup/internal/repository"
)

const defaultAnnouncementLimit = 20

type AnnouncementInput struct {
	Title    string `validate:"required,max=120" label:"title"`
	Message  string `validate:"required,max=2000" label:"message"`
	IsActive bool
}

type AnnouncementService interface {
	Create(ctx context.Context, input AnnouncementInput) (*model.Announcement, error)
	Update(ctx context.Context, id uuid.UUID, input AnnouncementInput) (*model.Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit int) ([]model.Announcement, error)
	ListActive(ctx context.Context) ([]model.Announcement, error)
}

type announcementService struct {
	repo repository.AnnouncementRepository
}

func NewAnnouncementService(repo repository.AnnouncementRepository) AnnouncementService {
	return &announcementService{repo: repo}
}

func (in AnnouncementInput) normalize() (AnnouncementInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Message = strings.TrimSpace(in.Message)
	return in, validateInput(in)
}

func (s *announcementService) Create(ctx context.Context, input AnnouncementInput) (*model.Announcement, error) {
	input, err := input.normalize()
	if err != nil {
		return nil, err
	}
	ann := &model.Announcement{Title: input.Title, Message: input.Message, IsActive: input.IsActive}
	if err := s.repo.Create(ctx, ann); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	return ann, nil
}

func (s *announcementService) Update(ctx context.Context, id uuid.UUID, input AnnouncementInput) (*model.Announcement, error) {
	input, err := input.normalize()
	if err != nil {
		return nil, err
	}
	ann, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, ErrAnnouncementNotFound, "load announcement")
	}
	ann.Title = input.Title
	ann.Message = input.Message
	ann.IsActive = input.IsActive
	if err := s.repo.Update(ctx, ann); err != nil {
		return nil, fmt.Errorf("update announcement: %w", err)
	}
	return ann, nil
}

func (s *announcementService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateNotFound(err, ErrAnnouncementNotFound, "delete announcement")
	}
	return nil
}

func (s *announcementService) List(ctx context.Context, limit int) ([]model.Announcement, error) {
	if limit <= 0 {
		limit = defaultAnnouncementLimit
	}
	return s.repo.List(ctx, limit)
}

func (s *announcementService) ListActive(ctx context.Context) ([]model.Announcement, error) {
	return s.repo.ListActive(ctx)
}

var _ AnnouncementService = (*announcementService)(nil)
