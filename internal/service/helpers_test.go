package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"pickupgames/signup/internal/model"
	"pickupgames/signup/internal/repository"
)

// tickingClock advances one second per reading so creation times are strictly ordered.
type tickingClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type testEnv struct {
	store         *repository.MemoryStore
	clock         *tickingClock
	core          *Core
	games         GameService
	registrations RegistrationService
	engine        EngineService
	activity      ActivityService
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	store := repository.NewMemoryStore()
	clock := &tickingClock{now: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	core := NewCore(store, repository.NewMemoryGameLocker(), nil, opts...)
	return &testEnv{
		store:         store,
		clock:         clock,
		core:          core,
		games:         NewGameService(core, store.Games()),
		registrations: NewRegistrationService(core, store.Games(), store.Registrations()),
		engine:        NewEngineService(core, store.Registrations()),
		activity:      NewActivityService(store.Activities(), 12),
	}
}

func (e *testEnv) createGame(t *testing.T, capacity int) *model.Game {
	t.Helper()
	start := e.clock.Now().Add(48 * time.Hour)
	game, err := e.games.CreateGame(context.Background(), GameInput{
		Title:     "Thursday pickup",
		Location:  "Court 3",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Capacity:  capacity,
	})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	return game
}

func (e *testEnv) register(t *testing.T, game *model.Game, name string) *model.Registration {
	t.Helper()
	reg, err := e.registrations.Register(context.Background(), game.AccessCode, RegisterInput{
		Name:  name,
		Email: name + "@example.com",
		Phone: "555-0100",
	})
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return reg
}

func (e *testEnv) approve(t *testing.T, reg *model.Registration) *model.Registration {
	t.Helper()
	res, err := e.engine.Approve(context.Background(), reg.ID)
	if err != nil {
		t.Fatalf("approve %s: %v", reg.Name, err)
	}
	return res.Registration
}

func (e *testEnv) get(t *testing.T, id uuid.UUID) *model.Registration {
	t.Helper()
	reg, err := e.registrations.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get registration: %v", err)
	}
	return reg
}

func expectStatus(t *testing.T, reg *model.Registration, status model.RegistrationStatus, position int) {
	t.Helper()
	if reg.Status != status {
		t.Fatalf("%s: expected status %s, got %s", reg.Name, status, reg.Status)
	}
	if position == 0 {
		if reg.Position != nil {
			t.Fatalf("%s: expected no position, got %d", reg.Name, *reg.Position)
		}
		return
	}
	if reg.Position == nil || *reg.Position != position {
		t.Fatalf("%s: expected position %d, got %v", reg.Name, position, reg.Position)
	}
}

// checkListInvariants verifies capacity and dense, creation-ordered positions for one game.
func checkListInvariants(ctx context.Context, store *repository.MemoryStore, game *model.Game) error {
	regs := store.Registrations()
	confirmed, err := regs.ListByGameAndStatus(ctx, game.ID, model.StatusConfirmed)
	if err != nil {
		return err
	}
	if len(confirmed) > game.Capacity {
		return fmt.Errorf("confirmed %d exceeds capacity %d", len(confirmed), game.Capacity)
	}
	waitlist, err := regs.ListByGameAndStatus(ctx, game.ID, model.StatusWaitlist)
	if err != nil {
		return err
	}
	for _, list := range [][]model.Registration{confirmed, waitlist} {
		for i, reg := range list {
			if reg.Position == nil || *reg.Position != i+1 {
				return fmt.Errorf("%s (%s): expected position %d, got %v", reg.Name, reg.Status, i+1, reg.Position)
			}
		}
	}
	for _, status := range []model.RegistrationStatus{model.StatusPending, model.StatusDenied, model.StatusCancelled, model.StatusRemoved} {
		list, err := regs.ListByGameAndStatus(ctx, game.ID, status)
		if err != nil {
			return err
		}
		for _, reg := range list {
			if reg.Position != nil {
				return errors.New(reg.Name + " keeps a position outside the lists")
			}
		}
	}
	return nil
}
