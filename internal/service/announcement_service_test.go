package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"pickupgames/signup/internal/repository"
)

func TestAnnouncementLifecycle(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAnnouncementService(store.Announcements())
	ctx := context.Background()

	for _, in := range []AnnouncementInput{
		{Title: " "},
		{Title: strings.Repeat("t", 121), Message: "m"},
		{Title: "t", Message: strings.Repeat("m", 2001)},
	} {
		if _, err := svc.Create(ctx, in); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	}

	ann, err := svc.Create(ctx, AnnouncementInput{Title: "Gym closed", Message: "No games on the 4th.", IsActive: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	active, _ := svc.ListActive(ctx)
	if len(active) != 1 || active[0].ID != ann.ID {
		t.Fatalf("expected the announcement to be active, got %+v", active)
	}

	updated, err := svc.Update(ctx, ann.ID, AnnouncementInput{Title: "Gym closed", Message: "No games on the 4th.", IsActive: false})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.IsActive {
		t.Fatal("expected announcement to be inactive")
	}
	active, _ = svc.ListActive(ctx)
	if len(active) != 0 {
		t.Fatalf("expected no active announcements, got %d", len(active))
	}
	all, _ := svc.List(ctx, 0)
	if len(all) != 1 {
		t.Fatalf("expected one announcement, got %d", len(all))
	}

	if err := svc.Delete(ctx, ann.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, ann.ID); !errors.Is(err, ErrAnnouncementNotFound) {
		t.Fatalf("expected ErrAnnouncementNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, uuid.New(), AnnouncementInput{Title: "x", Message: "y"}); !errors.Is(err, ErrAnnouncementNotFound) {
		t.Fatalf("expected ErrAnnouncementNotFound on update, got %v", err)
	}
}
