package tracker

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/duetoday/internal/model"
	"github.com/sandeepkv93/duetoday/internal/storage"
)

// Wednesday of ISO week 11.
var fixedNow = time.Date(2024, time.March, 13, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTracker(store storage.Store) *Tracker {
	return New(store, Options{Now: fixedClock})
}

func readyState() model.State {
	st := model.NewState()
	st.Completions["red_small_mine"] = model.NewDate(2024, time.March, 10)
	st.Completions["red_medium_mine"] = model.NewDate(2024, time.March, 12)
	st.Completions["red_large_mine"] = model.NewDate(2024, time.March, 1)
	st.Completions["rainbow_mine"] = model.NewDate(2024, time.March, 11)
	st.Completions["elemental_large_mine"] = model.NewDate(2024, time.March, 13)
	st.Completions["elemental_xl_mine"] = model.NewDate(2024, time.March, 9)
	st.Anchors[model.AnchorDragonNest] = 11
	st.Anchors[model.AnchorGuildBoss] = 10
	return st
}

func TestOpenUninitializedRoutesToInitialization(t *testing.T) {
	tr := newTracker(storage.NewMemoryStore())
	if got := tr.Open(t.Context()); got != PhaseUninitialized {
		t.Fatalf("expected uninitialized, got %s", got)
	}
	if _, err := tr.TodayTasks(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady before init, got %v", err)
	}
	if err := tr.BeginInitialization(); err != nil {
		t.Fatalf("begin init: %v", err)
	}
	if tr.Phase() != PhaseInitializing {
		t.Fatalf("expected initializing, got %s", tr.Phase())
	}
}

func TestOpenMalformedFileIsUninitialized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "task_data.json")
	writeFile(t, path, "{not json")
	tr := newTracker(storage.NewJSONFileStore(path, nil))
	if got := tr.Open(t.Context()); got != PhaseUninitialized {
		t.Fatalf("expected uninitialized for malformed file, got %s", got)
	}
}

func TestBeginInitializationFromReadyFails(t *testing.T) {
	tr := newTracker(storage.NewMemoryStoreWith(readyState()))
	if tr.Open(t.Context()) != PhaseReady {
		t.Fatal("expected ready")
	}
	if err := tr.BeginInitialization(); !errors.Is(err, ErrPhase) {
		t.Fatalf("expected ErrPhase, got %v", err)
	}
	if _, err := tr.Initialize(t.Context(), tr.DefaultChoices()); !errors.Is(err, ErrPhase) {
		t.Fatalf("expected ErrPhase from initialize, got %v", err)
	}
}

func TestInitializeTodayChoiceSetsRecordToToday(t *testing.T) {
	store := storage.NewMemoryStore()
	tr := newTracker(store)
	tr.Open(t.Context())
	if err := tr.BeginInitialization(); err != nil {
		t.Fatalf("begin: %v", err)
	}

	choices := tr.DefaultChoices()
	choices.DaysAgo["red_medium_mine"] = 3
	choices.DaysAgo["red_large_mine"] = 6
	choices.Rotations[model.AnchorGuildBoss] = RotationNextWeek

	st, err := tr.Initialize(t.Context(), choices)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	today := model.DateOf(fixedNow)
	if got := st.Completions["red_small_mine"]; got != today {
		t.Fatalf("expected red_small_mine=%s, got %s", today, got)
	}
	if got := st.Completions["red_medium_mine"]; got != model.NewDate(2024, time.March, 10) {
		t.Fatalf("unexpected red_medium_mine: %s", got)
	}
	if got := st.Completions["red_large_mine"]; got != model.NewDate(2024, time.March, 7) {
		t.Fatalf("unexpected red_large_mine: %s", got)
	}
	if got := st.Anchors[model.AnchorDragonNest]; got != 11 {
		t.Fatalf("expected dragon anchor 11, got %d", got)
	}
	if got := st.Anchors[model.AnchorGuildBoss]; got != 10 {
		t.Fatalf("expected guild boss anchor 10, got %d", got)
	}
	if len(st.Completions) != 6 {
		t.Fatalf("expected one record per periodic task, got %d", len(st.Completions))
	}
	if tr.Phase() != PhaseReady {
		t.Fatalf("expected ready, got %s", tr.Phase())
	}
	if store.Saves != 1 {
		t.Fatalf("expected exactly one save, got %d", store.Saves)
	}
	persisted, ok := store.Load(t.Context())
	if !ok || !persisted.Equal(st) {
		t.Fatalf("persisted state mismatch: %#v", persisted)
	}
}

func TestInitializeRejectsInvalidChoices(t *testing.T) {
	cases := map[string]func(c *InitChoices){
		"missing task":     func(c *InitChoices) { delete(c.DaysAgo, "rainbow_mine") },
		"beyond cycle":     func(c *InitChoices) { c.DaysAgo["red_small_mine"] = 3 },
		"negative":         func(c *InitChoices) { c.DaysAgo["red_small_mine"] = -1 },
		"daily task":       func(c *InitChoices) { c.DaysAgo["arena"] = 0 },
		"unknown task":     func(c *InitChoices) { c.DaysAgo["gold_mine"] = 1 },
		"missing rotation": func(c *InitChoices) { delete(c.Rotations, model.AnchorDragonNest) },
		"bad rotation":     func(c *InitChoices) { c.Rotations[model.AnchorGuildBoss] = "later" },
		"unknown rotation": func(c *InitChoices) { c.Rotations["raid_start_week"] = RotationThisWeek },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			tr := newTracker(store)
			tr.Open(t.Context())
			choices := tr.DefaultChoices()
			mutate(&choices)
			if _, err := tr.Initialize(t.Context(), choices); !errors.Is(err, ErrInvalidChoice) {
				t.Fatalf("expected ErrInvalidChoice, got %v", err)
			}
			if store.Saves != 0 {
				t.Fatal("invalid choices must not be saved")
			}
			if tr.Phase() == PhaseReady {
				t.Fatal("tracker must not become ready")
			}
		})
	}
}

func TestInitializeSaveFailureStaysUninitialized(t *testing.T) {
	store := storage.NewMemoryStore()
	store.SaveErr = storage.ErrWrite
	tr := newTracker(store)
	tr.Open(t.Context())
	_ = tr.BeginInitialization()
	if _, err := tr.Initialize(t.Context(), tr.DefaultChoices()); !errors.Is(err, storage.ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
	if tr.Phase() != PhaseInitializing {
		t.Fatalf("expected to stay initializing, got %s", tr.Phase())
	}
}

func TestResetAllowsReinitialization(t *testing.T) {
	store := storage.NewMemoryStoreWith(readyState())
	tr := newTracker(store)
	tr.Open(t.Context())
	tr.Reset()
	st, err := tr.Initialize(t.Context(), tr.DefaultChoices())
	if err != nil {
		t.Fatalf("reinitialize: %v", err)
	}
	if st.Completions["red_large_mine"] != model.DateOf(fixedNow) {
		t.Fatalf("expected fresh record, got %s", st.Completions["red_large_mine"])
	}
}

func TestTodayTasksUsesClock(t *testing.T) {
	tr := newTracker(storage.NewMemoryStoreWith(readyState()))
	tr.Open(t.Context())
	tasks, err := tr.TodayTasks()
	if err != nil {
		t.Fatalf("today tasks: %v", err)
	}
	keys := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		keys[task.Key] = true
	}
	// Wednesday, week 11: dragon nest anchored at 11 runs, guild boss at 10 does not.
	for _, want := range []string{"arena", "guild_war", "dragon_nest", "red_small_mine", "red_large_mine", "elemental_xl_mine"} {
		if !keys[want] {
			t.Fatalf("expected %s to be due, got %v", want, keys)
		}
	}
	for _, absent := range []string{"elemental_giant_mine", "guild_boss", "red_medium_mine", "rainbow_mine", "elemental_large_mine"} {
		if keys[absent] {
			t.Fatalf("did not expect %s to be due", absent)
		}
	}
}

func TestRecordCompletionsOnlyTouchesCheckedPeriodic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "task_data.json")
	store := storage.NewJSONFileStore(path, nil)
	before := readyState()
	if err := store.Save(t.Context(), before); err != nil {
		t.Fatalf("seed: %v", err)
	}
	tr := newTracker(store)
	tr.Open(t.Context())

	if err := tr.RecordCompletions(t.Context(), []string{"red_small_mine", "arena", "guild_war"}, model.Date{}); err != nil {
		t.Fatalf("record: %v", err)
	}

	after, ok := storage.NewJSONFileStore(path, nil).Load(t.Context())
	if !ok {
		t.Fatal("expected persisted state")
	}
	today := model.DateOf(fixedNow)
	if got := after.Completions["red_small_mine"]; got != today {
		t.Fatalf("expected red_small_mine=%s, got %s", today, got)
	}
	for key, d := range before.Completions {
		if key == "red_small_mine" {
			continue
		}
		if after.Completions[key] != d {
			t.Fatalf("%s changed from %s to %s", key, d, after.Completions[key])
		}
	}
	for _, key := range []string{"arena", "guild_war"} {
		if _, ok := after.Completions[key]; ok {
			t.Fatalf("%s must never be written", key)
		}
	}
	if len(after.Completions) != len(before.Completions) || len(after.Anchors) != len(before.Anchors) {
		t.Fatalf("unexpected key set after save: %#v", after)
	}
}

func TestRecordCompletionsWithEarlierDay(t *testing.T) {
	tr := newTracker(storage.NewMemoryStoreWith(readyState()))
	tr.Open(t.Context())
	day := model.NewDate(2024, time.March, 12)
	if err := tr.RecordCompletions(t.Context(), []string{"rainbow_mine"}, day); err != nil {
		t.Fatalf("record: %v", err)
	}
	if got := tr.State().Completions["rainbow_mine"]; got != day {
		t.Fatalf("expected %s, got %s", day, got)
	}
}

func TestRecordCompletionsRejects(t *testing.T) {
	store := storage.NewMemoryStoreWith(readyState())
	tr := newTracker(store)
	tr.Open(t.Context())

	if err := tr.RecordCompletions(t.Context(), []string{"red_small_mine", "gold_mine"}, model.Date{}); !errors.Is(err, ErrUnknownTask) {
		t.Fatalf("expected ErrUnknownTask, got %v", err)
	}
	if err := tr.RecordCompletions(t.Context(), []string{"red_small_mine"}, model.NewDate(2024, time.March, 14)); !errors.Is(err, ErrFutureDate) {
		t.Fatalf("expected ErrFutureDate, got %v", err)
	}
	if store.Saves != 0 {
		t.Fatalf("rejected calls must not save, got %d saves", store.Saves)
	}
	if !tr.State().Equal(readyState()) {
		t.Fatal("state changed after rejected calls")
	}
}

func TestRecordCompletionsSaveFailureKeepsState(t *testing.T) {
	store := storage.NewMemoryStoreWith(readyState())
	tr := newTracker(store)
	tr.Open(t.Context())
	store.SaveErr = storage.ErrWrite

	if err := tr.RecordCompletions(t.Context(), []string{"red_small_mine"}, model.Date{}); !errors.Is(err, storage.ErrWrite) {
		t.Fatalf("expected ErrWrite, got %v", err)
	}
	if !tr.State().Equal(readyState()) {
		t.Fatal("in-memory state must be unchanged after a failed save")
	}
}

func TestRecordCompletionsRequiresReady(t *testing.T) {
	tr := newTracker(storage.NewMemoryStore())
	tr.Open(t.Context())
	if err := tr.RecordCompletions(t.Context(), []string{"red_small_mine"}, model.Date{}); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func TestPeriodicStatuses(t *testing.T) {
	tr := newTracker(storage.NewMemoryStoreWith(readyState()))
	tr.Open(t.Context())
	statuses, err := tr.PeriodicStatuses()
	if err != nil {
		t.Fatalf("statuses: %v", err)
	}
	if len(statuses) != 6 {
		t.Fatalf("expected 6 periodic statuses, got %d", len(statuses))
	}
	first := statuses[0]
	if first.Def.Key != "red_small_mine" || !first.HasRecord || !first.Due {
		t.Fatalf("unexpected first status: %#v", first)
	}
	if first.NextDue != model.NewDate(2024, time.March, 12) {
		t.Fatalf("unexpected next due: %s", first.NextDue)
	}
}
