package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/duetoday/internal/model"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	if _, ok := store.Load(t.Context()); ok {
		t.Fatal("expected new memory store to be uninitialized")
	}
	st := sampleState()
	if err := store.Save(t.Context(), st); err != nil {
		t.Fatalf("save: %v", err)
	}
	st.Completions["red_small_mine"] = model.NewDate(2030, time.January, 1)

	got, ok := store.Load(t.Context())
	if !ok || !got.Equal(sampleState()) {
		t.Fatalf("memory store should hold a copy, got %#v", got)
	}

	store.SaveErr = ErrWrite
	if err := store.Save(t.Context(), model.NewState()); !errors.Is(err, ErrWrite) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if store.Saves != 1 {
		t.Fatalf("expected 1 successful save, got %d", store.Saves)
	}
}
