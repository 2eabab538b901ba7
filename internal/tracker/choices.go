package tracker

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/duetoday/internal/model"
)

// RotationChoice says whether a biweekly event runs in the current ISO week.
type RotationChoice string

const (
	RotationThisWeek RotationChoice = "this"
	RotationNextWeek RotationChoice = "next"
)

func (c RotationChoice) IsValid() bool {
	return c == RotationThisWeek || c == RotationNextWeek
}

func (c RotationChoice) Label() string {
	switch c {
	case RotationThisWeek:
		return "本周开启"
	case RotationNextWeek:
		return "下周开启"
	default:
		return string(c)
	}
}

// AnchorWeek is the ISO week stored for this choice. "Next week" is recorded
// as the week before the current one, which has the same parity as next week.
func (c RotationChoice) AnchorWeek(currentWeek int) int {
	if c == RotationNextWeek {
		return currentWeek - 1
	}
	return currentWeek
}

// ParseRotationChoice accepts the short names and the on-screen labels.
func ParseRotationChoice(s string) (RotationChoice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "this", "this-week", "本周开启":
		return RotationThisWeek, nil
	case "next", "next-week", "下周开启":
		return RotationNextWeek, nil
	default:
		return "", fmt.Errorf("%w: rotation %q", ErrInvalidChoice, s)
	}
}

type DaysAgoOption struct {
	Days  int
	Label string
}

// DaysAgoOptions lists the answers offered for a periodic task: every whole
// number of days from 0 up to its cycle. The last one also covers "unsure".
func DaysAgoOptions(def model.TaskDefinition) []DaysAgoOption {
	cycle := def.CycleDays()
	if cycle <= 0 {
		return nil
	}
	out := make([]DaysAgoOption, 0, cycle+1)
	for d := 0; d <= cycle; d++ {
		out = append(out, DaysAgoOption{Days: d, Label: daysAgoLabel(d, cycle)})
	}
	return out
}

func daysAgoLabel(days, cycle int) string {
	switch {
	case days == cycle:
		return fmt.Sprintf("%d天前 (或不确定)", days)
	case days == 0:
		return "今天 (0天前)"
	case days == 1:
		return "昨天 (1天前)"
	default:
		return fmt.Sprintf("%d天前", days)
	}
}

type RotationOption struct {
	Choice RotationChoice
	Label  string
}

func RotationOptions() []RotationOption {
	return []RotationOption{
		{Choice: RotationThisWeek, Label: RotationThisWeek.Label()},
		{Choice: RotationNextWeek, Label: RotationNextWeek.Label()},
	}
}

// InitChoices is the user's answer to the first-run questions.
type InitChoices struct {
	DaysAgo   map[string]int
	Rotations map[string]RotationChoice
}

// DefaultInitChoices preselects the first offered option everywhere:
// completed today and running this week.
func DefaultInitChoices(catalog model.Catalog) InitChoices {
	c := InitChoices{
		DaysAgo:   make(map[string]int),
		Rotations: make(map[string]RotationChoice),
	}
	for _, def := range catalog.Periodic() {
		c.DaysAgo[def.Key] = 0
	}
	for _, key := range model.AnchorKeys() {
		c.Rotations[key] = RotationThisWeek
	}
	return c
}

// Validate checks the choices cover every periodic task and rotation with an
// offered option, and name nothing else.
func (c InitChoices) Validate(catalog model.Catalog) error {
	for _, def := range catalog.Periodic() {
		days, ok := c.DaysAgo[def.Key]
		if !ok {
			return fmt.Errorf("%w: no answer for %q", ErrInvalidChoice, def.Key)
		}
		if days < 0 || days > def.CycleDays() {
			return fmt.Errorf("%w: %q days ago must be within 0..%d, got %d", ErrInvalidChoice, def.Key, def.CycleDays(), days)
		}
	}
	for key := range c.DaysAgo {
		def, ok := catalog.Lookup(key)
		if !ok || !def.IsPeriodic() {
			return fmt.Errorf("%w: %q is not a periodic task", ErrInvalidChoice, key)
		}
	}
	for _, key := range model.AnchorKeys() {
		choice, ok := c.Rotations[key]
		if !ok {
			return fmt.Errorf("%w: no answer for %q", ErrInvalidChoice, key)
		}
		if !choice.IsValid() {
			return fmt.Errorf("%w: rotation %q for %q", ErrInvalidChoice, choice, key)
		}
	}
	for key := range c.Rotations {
		if !model.IsAnchorKey(key) {
			return fmt.Errorf("%w: %q is not a rotation", ErrInvalidChoice, key)
		}
	}
	return nil
}
