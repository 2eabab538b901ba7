// Package tracker owns the lifecycle of the durable record: first-run
// initialization, the daily due list and recording completions.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sandeepkv93/duetoday/internal/due"
	"github.com/sandeepkv93/duetoday/internal/logging"
	"github.com/sandeepkv93/duetoday/internal/model"
	"github.com/sandeepkv93/duetoday/internal/storage"
)

var (
	ErrInvalidChoice = errors.New("tracker: invalid choice")
	ErrUnknownTask   = errors.New("tracker: unknown task")
	ErrFutureDate    = errors.New("tracker: completion date is in the future")
	ErrNotReady      = errors.New("tracker: not initialized")
	ErrPhase         = errors.New("tracker: illegal phase transition")
)

type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseInitializing  Phase = "initializing"
	PhaseReady         Phase = "ready"
)

type Options struct {
	Catalog model.Catalog
	Logger  *slog.Logger
	Now     func() time.Time
}

// Tracker is not safe for concurrent use.
type Tracker struct {
	store   storage.Store
	catalog model.Catalog
	logger  *slog.Logger
	now     func() time.Time
	phase   Phase
	state   model.State
}

func New(store storage.Store, opts Options) *Tracker {
	t := &Tracker{
		store:   store,
		catalog: opts.Catalog,
		logger:  logging.OrDiscard(opts.Logger),
		now:     opts.Now,
		phase:   PhaseUninitialized,
		state:   model.NewState(),
	}
	if t.catalog.Len() == 0 {
		t.catalog = model.DefaultCatalog()
	}
	if t.now == nil {
		t.now = time.Now
	}
	return t
}

// Open reads the store once. Missing and unreadable state both leave the
// tracker uninitialized.
func (t *Tracker) Open(ctx context.Context) Phase {
	st, ok := t.store.Load(ctx)
	if !ok {
		t.phase = PhaseUninitialized
		t.state = model.NewState()
		t.logger.InfoContext(ctx, "no usable state, initialization required")
		return t.phase
	}
	t.state = st
	t.phase = PhaseReady
	t.logger.DebugContext(ctx, "state loaded",
		"completions", len(st.Completions),
		"anchors", len(st.Anchors),
	)
	return t.phase
}

func (t *Tracker) Phase() Phase                { return t.phase }
func (t *Tracker) Catalog() model.Catalog      { return t.catalog }
func (t *Tracker) Today() model.Date           { return model.DateOf(t.now()) }
func (t *Tracker) State() model.State          { return t.state.Clone() }
func (t *Tracker) ISOWeek() int                { return t.Today().ISOWeek() }
func (t *Tracker) DefaultChoices() InitChoices { return DefaultInitChoices(t.catalog) }

// BeginInitialization moves an uninitialized tracker into the initializing
// phase. Calling it again while initializing is a no-op.
func (t *Tracker) BeginInitialization() error {
	switch t.phase {
	case PhaseUninitialized:
		t.phase = PhaseInitializing
		return nil
	case PhaseInitializing:
		return nil
	default:
		return fmt.Errorf("%w: %s -> %s", ErrPhase, t.phase, PhaseInitializing)
	}
}

// Reset drops back to the uninitialized phase so the record can be rebuilt.
// The store is untouched until Initialize saves.
func (t *Tracker) Reset() {
	t.phase = PhaseUninitialized
}

// Initialize builds the first record from the user's choices and saves it.
// Every periodic task and every rotation needs a choice from the offered
// options. On a save failure the tracker stays where it was.
func (t *Tracker) Initialize(ctx context.Context, choices InitChoices) (model.State, error) {
	if t.phase == PhaseReady {
		return model.State{}, fmt.Errorf("%w: already initialized", ErrPhase)
	}
	if err := choices.Validate(t.catalog); err != nil {
		return model.State{}, err
	}

	today := t.Today()
	week := today.ISOWeek()
	st := model.NewState()
	for _, def := range t.catalog.Periodic() {
		st.Completions[def.Key] = today.AddDays(-choices.DaysAgo[def.Key])
	}
	for _, key := range model.AnchorKeys() {
		st.Anchors[key] = choices.Rotations[key].AnchorWeek(week)
	}

	if err := t.store.Save(ctx, st); err != nil {
		t.logger.ErrorContext(ctx, "initial state save failed", "err", err)
		return model.State{}, err
	}
	t.state = st
	t.phase = PhaseReady
	t.logger.InfoContext(ctx, "state initialized", "today", today.String(), "week", week)
	return st.Clone(), nil
}

// TodayTasks returns the due list for the tracker's current day.
func (t *Tracker) TodayTasks() ([]due.Task, error) {
	if t.phase != PhaseReady {
		return nil, ErrNotReady
	}
	return due.Compute(t.Today(), t.state, t.catalog), nil
}

// RecordCompletions stamps day on every periodic task in ids and saves once.
// Daily and weekly ids are accepted and ignored. A zero day means today.
func (t *Tracker) RecordCompletions(ctx context.Context, ids []string, day model.Date) error {
	if t.phase != PhaseReady {
		return ErrNotReady
	}
	today := t.Today()
	if day.IsZero() {
		day = today
	}
	if day.After(today) {
		return fmt.Errorf("%w: %s is after %s", ErrFutureDate, day, today)
	}

	next := t.state.Clone()
	recorded := 0
	for _, id := range ids {
		def, ok := t.catalog.Lookup(id)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTask, id)
		}
		if !def.IsPeriodic() {
			continue
		}
		next.Completions[def.Key] = day
		recorded++
	}

	if err := t.store.Save(ctx, next); err != nil {
		t.logger.ErrorContext(ctx, "completion save failed", "err", err)
		return err
	}
	t.state = next
	t.logger.InfoContext(ctx, "completions recorded", "day", day.String(), "periodic", recorded, "ids", len(ids))
	return nil
}

// PeriodicStatus describes where one periodic task sits in its cycle.
type PeriodicStatus struct {
	Def       model.TaskDefinition
	Last      model.Date
	NextDue   model.Date
	HasRecord bool
	Due       bool
}

func (t *Tracker) PeriodicStatuses() ([]PeriodicStatus, error) {
	if t.phase != PhaseReady {
		return nil, ErrNotReady
	}
	today := t.Today()
	defs := t.catalog.Periodic()
	out := make([]PeriodicStatus, 0, len(defs))
	for _, def := range defs {
		ps := PeriodicStatus{Def: def}
		if last, ok := t.state.LastCompleted(def.Key); ok {
			ps.Last = last
			ps.HasRecord = true
		}
		if next, ok := due.NextDue(def, t.state); ok {
			ps.NextDue = next
		}
		ps.Due = due.IsDue(def, today, t.state)
		out = append(out, ps)
	}
	return out, nil
}
