package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidCategory = errors.New("model: invalid task category")
	ErrInvalidCadence  = errors.New("model: invalid task cadence")
)

type Category string

const (
	CategoryDaily    Category = "daily"
	CategoryWeekly   Category = "weekly"
	CategoryPeriodic Category = "periodic"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategoryDaily, CategoryWeekly, CategoryPeriodic}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryDaily, CategoryWeekly, CategoryPeriodic:
		return true
	default:
		return false
	}
}

// Title is the section heading shown to the player.
func (c Category) Title() string {
	switch c {
	case CategoryDaily:
		return "每日常规"
	case CategoryWeekly:
		return "每周事件"
	case CategoryPeriodic:
		return "周期矿物"
	default:
		return string(c)
	}
}

type CadenceKind string

const (
	CadenceDaily    CadenceKind = "daily"
	CadenceWeekly   CadenceKind = "weekly"
	CadenceWeekday  CadenceKind = "weekday"
	CadenceBiweekly CadenceKind = "biweekly"
	CadenceCycle    CadenceKind = "cycle"
)

// Cadence says when a task comes due. Only the fields belonging to Kind are
// meaningful.
type Cadence struct {
	Kind      CadenceKind
	Weekday   time.Weekday
	AnchorKey string
	CycleDays int
}

func Daily() Cadence                    { return Cadence{Kind: CadenceDaily} }
func Weekly() Cadence                   { return Cadence{Kind: CadenceWeekly} }
func OnWeekday(d time.Weekday) Cadence  { return Cadence{Kind: CadenceWeekday, Weekday: d} }
func Biweekly(anchorKey string) Cadence { return Cadence{Kind: CadenceBiweekly, AnchorKey: anchorKey} }
func EveryNDays(days int) Cadence       { return Cadence{Kind: CadenceCycle, CycleDays: days} }

func (c Cadence) Validate() error {
	switch c.Kind {
	case CadenceDaily, CadenceWeekly:
		return nil
	case CadenceWeekday:
		if c.Weekday < time.Sunday || c.Weekday > time.Saturday {
			return fmt.Errorf("%w: weekday %d", ErrInvalidCadence, c.Weekday)
		}
		return nil
	case CadenceBiweekly:
		if !IsAnchorKey(c.AnchorKey) {
			return fmt.Errorf("%w: unknown rotation anchor %q", ErrInvalidCadence, c.AnchorKey)
		}
		return nil
	case CadenceCycle:
		if c.CycleDays <= 0 {
			return fmt.Errorf("%w: cycle days %d", ErrInvalidCadence, c.CycleDays)
		}
		return nil
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalidCadence, c.Kind)
	}
}

func (c Cadence) String() string {
	switch c.Kind {
	case CadenceWeekday:
		return fmt.Sprintf("every %s", c.Weekday)
	case CadenceBiweekly:
		return fmt.Sprintf("biweekly (%s)", c.AnchorKey)
	case CadenceCycle:
		return fmt.Sprintf("every %d days", c.CycleDays)
	default:
		return string(c.Kind)
	}
}

// TaskDefinition is a static objective compiled into the program.
type TaskDefinition struct {
	Key      string
	Name     string
	Category Category
	Cadence  Cadence
	Location string
	Note     string
}

func (t TaskDefinition) Validate() error {
	if strings.TrimSpace(t.Key) == "" {
		return errors.New("model: task key is required")
	}
	if IsAnchorKey(t.Key) {
		return fmt.Errorf("model: task key %q collides with a rotation anchor", t.Key)
	}
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("model: task name is required")
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, t.Category)
	}
	if err := t.Cadence.Validate(); err != nil {
		return err
	}
	switch t.Category {
	case CategoryDaily:
		if t.Cadence.Kind != CadenceDaily {
			return fmt.Errorf("%w: daily task %q has cadence %q", ErrInvalidCadence, t.Key, t.Cadence.Kind)
		}
	case CategoryWeekly:
		switch t.Cadence.Kind {
		case CadenceWeekly, CadenceWeekday, CadenceBiweekly:
		default:
			return fmt.Errorf("%w: weekly task %q has cadence %q", ErrInvalidCadence, t.Key, t.Cadence.Kind)
		}
	case CategoryPeriodic:
		if t.Cadence.Kind != CadenceCycle {
			return fmt.Errorf("%w: periodic task %q has cadence %q", ErrInvalidCadence, t.Key, t.Cadence.Kind)
		}
	}
	return nil
}

// DisplayName joins the name with its location, or its note when there is
// no location.
func (t TaskDefinition) DisplayName() string {
	suffix := t.Location
	if suffix == "" {
		suffix = t.Note
	}
	if suffix == "" {
		return t.Name
	}
	return fmt.Sprintf("%s (%s)", t.Name, suffix)
}

func (t TaskDefinition) IsPeriodic() bool {
	return t.Category == CategoryPeriodic
}

// CycleDays is the cycle length of a periodic task, zero otherwise.
func (t TaskDefinition) CycleDays() int {
	if t.Cadence.Kind != CadenceCycle {
		return 0
	}
	return t.Cadence.CycleDays
}
