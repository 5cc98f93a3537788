package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"pickupgames/signup/internal/model"
)

// sequenceCodes hands out the given codes in order, then repeats the last one.
func sequenceCodes(codes ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		code := codes[i]
		if i < len(codes)-1 {
			i++
		}
		return code, nil
	}
}

func TestCreateGameAssignsAccessCode(t *testing.T) {
	env := newTestEnv(t)
	game := env.createGame(t, 18)

	if len(game.AccessCode) != 5 || model.DigitsOnly(game.AccessCode) != game.AccessCode {
		t.Fatalf("expected 5-digit code, got %q", game.AccessCode)
	}
	found, err := env.games.GetByCode(context.Background(), game.AccessCode)
	if err != nil {
		t.Fatalf("lookup by code: %v", err)
	}
	if found.ID != game.ID {
		t.Fatal("lookup returned another game")
	}
}

func TestCreateGameSkipsTakenCodes(t *testing.T) {
	env := newTestEnv(t, WithCodeGenerator(sequenceCodes("11111", "11111", "22222")))
	first := env.createGame(t, 4)
	second := env.createGame(t, 4)
	if first.AccessCode != "11111" || second.AccessCode != "22222" {
		t.Fatalf("unexpected codes %s %s", first.AccessCode, second.AccessCode)
	}
}

func TestCreateGameGivesUpAfterRepeatedCollisions(t *testing.T) {
	env := newTestEnv(t, WithCodeGenerator(sequenceCodes("33333")))
	env.createGame(t, 4)

	start := time.Date(2030, 1, 1, 18, 0, 0, 0, time.UTC)
	_, err := env.games.CreateGame(context.Background(), GameInput{
		Title: "Blocked", StartTime: start, EndTime: start.Add(time.Hour), Capacity: 4,
	})
	if !errors.Is(err, ErrAccessCodeExhausted) {
		t.Fatalf("expected ErrAccessCodeExhausted, got %v", err)
	}
}

func TestCreateGameValidation(t *testing.T) {
	env := newTestEnv(t)
	start := time.Date(2030, 1, 1, 18, 0, 0, 0, time.UTC)

	cases := map[string]GameInput{
		"no title":       {StartTime: start, EndTime: start.Add(time.Hour), Capacity: 4},
		"zero capacity":  {Title: "G", StartTime: start, EndTime: start.Add(time.Hour)},
		"no times":       {Title: "G", Capacity: 4},
		"end before":     {Title: "G", StartTime: start, EndTime: start.Add(-time.Hour), Capacity: 4},
		"end equals":     {Title: "G", StartTime: start, EndTime: start, Capacity: 4},
		"negative seats": {Title: "G", StartTime: start, EndTime: start.Add(time.Hour), Capacity: -3},
		"long title":     {Title: strings.Repeat("t", 121), StartTime: start, EndTime: start.Add(time.Hour), Capacity: 4},
		"long location":  {Title: "G", Location: strings.Repeat("l", 201), StartTime: start, EndTime: start.Add(time.Hour), Capacity: 4},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := env.games.CreateGame(context.Background(), in); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestGetByCodeRejectsMalformedCodes(t *testing.T) {
	env := newTestEnv(t)
	for _, code := range []string{"", "1234", "123456", "12a45"} {
		if _, err := env.games.GetByCode(context.Background(), code); !errors.Is(err, ErrValidation) {
			t.Fatalf("code %q: expected ErrValidation, got %v", code, err)
		}
	}
	if _, err := env.games.GetByCode(context.Background(), "99999"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestEditGameRaisingCapacityPromotesWaitlist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	game := env.createGame(t, 1)
	var regs []*model.Registration
	for i := 0; i < 4; i++ {
		r := env.register(t, game, fmt.Sprintf("p%d", i))
		env.approve(t, r)
		regs = append(regs, r)
	}

	updated, promoted, err := env.games.EditGame(ctx, game.ID, GameInput{
		Title:     "Thursday pickup (bigger gym)",
		Location:  game.Location,
		StartTime: game.StartTime,
		EndTime:   game.EndTime,
		Capacity:  3,
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if updated.Capacity != 3 || updated.AccessCode != game.AccessCode {
		t.Fatalf("unexpected game after edit %+v", updated)
	}
	if len(promoted) != 2 || promoted[0].ID != regs[1].ID || promoted[1].ID != regs[2].ID {
		t.Fatalf("expected p1 and p2 promoted, got %+v", promoted)
	}
	expectStatus(t, env.get(t, regs[2].ID), model.StatusConfirmed, 3)
	expectStatus(t, env.get(t, regs[3].ID), model.StatusWaitlist, 1)
}

func TestEditGameCannotDropBelowConfirmed(t *testing.T) {
	env := newTestEnv(t)
	game := env.createGame(t, 3)
	for _, name := range []string{"alice", "bob"} {
		env.approve(t, env.register(t, game, name))
	}

	_, _, err := env.games.EditGame(context.Background(), game.ID, GameInput{
		Title: game.Title, StartTime: game.StartTime, EndTime: game.EndTime, Capacity: 1,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	stored, _ := env.games.GetGame(context.Background(), game.ID)
	if stored.Capacity != 3 {
		t.Fatalf("capacity changed to %d", stored.Capacity)
	}
}

func TestEditUnknownGame(t *testing.T) {
	env := newTestEnv(t)
	start := time.Date(2030, 1, 1, 18, 0, 0, 0, time.UTC)
	_, _, err := env.games.EditGame(context.Background(), uuid.New(), GameInput{
		Title: "G", StartTime: start, EndTime: start.Add(time.Hour), Capacity: 2,
	})
	if !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestDeleteGameKeepsCodeReserved(t *testing.T) {
	env := newTestEnv(t, WithCodeGenerator(sequenceCodes("44444", "44444", "55555")))
	ctx := context.Background()
	game := env.createGame(t, 2)
	reg := env.register(t, game, "alice")

	if err := env.games.DeleteGame(ctx, game.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := env.games.GetGame(ctx, game.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected deleted game to be gone, got %v", err)
	}
	if _, err := env.registrations.Get(ctx, reg.ID); !errors.Is(err, ErrRegistrationNotFound) {
		t.Fatalf("expected registrations removed, got %v", err)
	}
	entries, _ := env.activity.ForGame(ctx, game.ID, 0)
	if len(entries) != 0 {
		t.Fatalf("expected activity removed, got %d entries", len(entries))
	}

	next := env.createGame(t, 2)
	if next.AccessCode != "55555" {
		t.Fatalf("deleted game's code was reused: %s", next.AccessCode)
	}
	if err := env.games.DeleteGame(ctx, game.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound on second delete, got %v", err)
	}
}

func TestListUpcomingSkipsStartedGames(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	later := env.createGame(t, 2)
	past := env.clock.Now().Add(-3 * time.Hour)
	if _, err := env.games.CreateGame(ctx, GameInput{
		Title: "Earlier", StartTime: past, EndTime: past.Add(time.Hour), Capacity: 2,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	games, err := env.games.ListUpcoming(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(games) != 1 || games[0].ID != later.ID {
		t.Fatalf("expected only the upcoming game, got %+v", games)
	}
}
