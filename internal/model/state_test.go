package model

import (
	"errors"
	"testing"
	"time"
)

func TestStateCloneIsIndependent(t *testing.T) {
	s := NewState()
	s.Completions["red_small_mine"] = NewDate(2024, time.January, 1)
	s.Anchors[AnchorDragonNest] = 10

	c := s.Clone()
	c.Completions["red_small_mine"] = NewDate(2024, time.January, 3)
	c.Anchors[AnchorDragonNest] = 11

	if got, _ := s.LastCompleted("red_small_mine"); got != NewDate(2024, time.January, 1) {
		t.Fatalf("clone mutated original completion: %s", got)
	}
	if got, _ := s.Anchor(AnchorDragonNest); got != 10 {
		t.Fatalf("clone mutated original anchor: %d", got)
	}
	if s.Equal(c) {
		t.Fatal("expected states to differ")
	}
}

func TestStateValidate(t *testing.T) {
	s := NewState()
	s.Completions["rainbow_mine"] = NewDate(2024, time.May, 5)
	s.Anchors[AnchorGuildBoss] = 20
	if err := s.Validate(); err != nil {
		t.Fatalf("expected valid state, got %v", err)
	}

	bad := s.Clone()
	bad.Completions[AnchorGuildBoss] = NewDate(2024, time.May, 5)
	if err := bad.Validate(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	bad = s.Clone()
	bad.Anchors["rainbow_mine"] = 3
	if err := bad.Validate(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}

	bad = s.Clone()
	bad.Completions["red_large_mine"] = Date{}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}
