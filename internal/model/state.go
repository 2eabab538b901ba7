package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidState = errors.New("model: invalid state")

// State is the durable record: the last completion day of each periodic task
// (CompletionRecord) plus the ISO week anchors of the biweekly rotations.
type State struct {
	Completions map[string]Date
	Anchors     map[string]int
}

func NewState() State {
	return State{
		Completions: make(map[string]Date),
		Anchors:     make(map[string]int),
	}
}

func (s State) Clone() State {
	out := NewState()
	for k, v := range s.Completions {
		out.Completions[k] = v
	}
	for k, v := range s.Anchors {
		out.Anchors[k] = v
	}
	return out
}

func (s State) LastCompleted(key string) (Date, bool) {
	d, ok := s.Completions[key]
	return d, ok
}

func (s State) Anchor(key string) (int, bool) {
	w, ok := s.Anchors[key]
	return w, ok
}

func (s State) IsEmpty() bool {
	return len(s.Completions) == 0 && len(s.Anchors) == 0
}

func (s State) Equal(other State) bool {
	if len(s.Completions) != len(other.Completions) || len(s.Anchors) != len(other.Anchors) {
		return false
	}
	for k, v := range s.Completions {
		if ov, ok := other.Completions[k]; !ok || ov != v {
			return false
		}
	}
	for k, v := range s.Anchors {
		if ov, ok := other.Anchors[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Validate checks the key spaces stay disjoint, since the persisted layout
// tells dates and anchors apart by key alone.
func (s State) Validate() error {
	for k, d := range s.Completions {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("%w: empty completion key", ErrInvalidState)
		}
		if IsAnchorKey(k) {
			return fmt.Errorf("%w: completion recorded under anchor key %q", ErrInvalidState, k)
		}
		if d.IsZero() {
			return fmt.Errorf("%w: zero completion date for %q", ErrInvalidState, k)
		}
	}
	for k := range s.Anchors {
		if !IsAnchorKey(k) {
			return fmt.Errorf("%w: unknown anchor key %q", ErrInvalidState, k)
		}
	}
	return nil
}
