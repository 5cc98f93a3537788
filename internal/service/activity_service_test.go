package service

import (
	"context"
	"fmt"
	"testing"
)

func TestRecentActivityIsNewestFirstAndLimited(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	game := env.createGame(t, 10)
	for i := 0; i < 15; i++ {
		env.register(t, game, fmt.Sprintf("p%02d", i))
	}

	entries, err := env.activity.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 12 {
		t.Fatalf("expected the default feed size of 12, got %d", len(entries))
	}
	if entries[0].Message != "New request: p14 (p14@example.com)" {
		t.Fatalf("expected newest entry first, got %q", entries[0].Message)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].CreatedAt.After(entries[i-1].CreatedAt) {
			t.Fatalf("entries out of order at %d", i)
		}
	}

	few, _ := env.activity.Recent(ctx, 3)
	if len(few) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(few))
	}
	all, _ := env.activity.Recent(ctx, 1000)
	if len(all) != 16 {
		t.Fatalf("expected all 16 entries under the cap, got %d", len(all))
	}
}
