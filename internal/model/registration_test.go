package model

import (
	"testing"
	"time"
)

func TestDigitsOnly(t *testing.T) {
	cases := map[string]string{
		"555-1212":          "5551212",
		"(415) 555 0100":    "4155550100",
		"+1 415.555.0100 x": "14155550100",
		"":                  "",
		"call me":           "",
	}
	for in, want := range cases {
		if got := DigitsOnly(in); got != want {
			t.Errorf("DigitsOnly(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusClassification(t *testing.T) {
	if !StatusConfirmed.Listed() || !StatusWaitlist.Listed() || StatusPending.Listed() {
		t.Fatal("unexpected Listed classification")
	}
	for _, s := range []RegistrationStatus{StatusDenied, StatusCancelled, StatusRemoved} {
		if !s.Terminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	if StatusPending.Terminal() || StatusConfirmed.Terminal() {
		t.Fatal("unexpected terminal status")
	}
	if RegistrationStatus("LATE").Valid() {
		t.Fatal("unexpected valid status")
	}
	listed := 0
	for _, s := range Statuses {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
		if s.Listed() {
			listed++
			if s.Terminal() {
				t.Errorf("listed status %s must not be terminal", s)
			}
		}
	}
	if listed != 2 {
		t.Fatalf("expected 2 listed statuses, got %d", listed)
	}
}

func TestGameIsPast(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	g := &Game{EndTime: now.Add(-time.Minute)}
	if !g.IsPast(now) {
		t.Fatal("expected ended game to be past")
	}
	g.EndTime = now.Add(time.Minute)
	if g.IsPast(now) {
		t.Fatal("expected running game not to be past")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  X@Y.com "); got != "x@y.com" {
		t.Fatalf("unexpected email %q", got)
	}
}
