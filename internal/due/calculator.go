// Package due decides which catalog tasks are due on a given day.
package due

import "github.com/sandeepkv93/duetoday/internal/model"

// Task is one entry of a day's due list.
type Task struct {
	Key      string
	Name     string
	Category model.Category
	Location string
}

// Compute returns the tasks due on today: daily, then weekly, then periodic,
// each in catalog order. It has no side effects.
func Compute(today model.Date, st model.State, catalog model.Catalog) []Task {
	out := make([]Task, 0, catalog.Len())
	for _, cat := range model.Categories() {
		for _, def := range catalog.ByCategory(cat) {
			if !IsDue(def, today, st) {
				continue
			}
			out = append(out, Task{
				Key:      def.Key,
				Name:     def.DisplayName(),
				Category: def.Category,
				Location: def.Location,
			})
		}
	}
	return out
}

// IsDue reports whether def is due on today. A periodic task with no
// recorded completion and a rotation with no anchor are never due.
func IsDue(def model.TaskDefinition, today model.Date, st model.State) bool {
	c := def.Cadence
	switch c.Kind {
	case model.CadenceDaily, model.CadenceWeekly:
		return true
	case model.CadenceWeekday:
		return today.Weekday() == c.Weekday
	case model.CadenceBiweekly:
		anchor, ok := st.Anchor(c.AnchorKey)
		if !ok {
			return false
		}
		return RotationActive(anchor, today.ISOWeek())
	case model.CadenceCycle:
		last, ok := st.LastCompleted(def.Key)
		if !ok {
			return false
		}
		return today.DaysSince(last) >= c.CycleDays
	default:
		return false
	}
}

// RotationActive reports whether a biweekly event anchored at anchorWeek runs
// in ISO week week. Only parity is compared, so the 52/53 -> 1 rollover at a
// year boundary can shift the rotation by a week.
func RotationActive(anchorWeek, week int) bool {
	return (week-anchorWeek)%2 == 0
}

// NextDue returns the first day a periodic task becomes due after its last
// recorded completion. ok is false for non-periodic tasks and for tasks with
// no record.
func NextDue(def model.TaskDefinition, st model.State) (model.Date, bool) {
	if def.Cadence.Kind != model.CadenceCycle {
		return model.Date{}, false
	}
	last, ok := st.LastCompleted(def.Key)
	if !ok {
		return model.Date{}, false
	}
	return last.AddDays(def.Cadence.CycleDays), true
}

// Group splits a due list into its categories, keeping order.
func Group(tasks []Task) map[model.Category][]Task {
	out := make(map[model.Category][]Task, 3)
	for _, cat := range model.Categories() {
		out[cat] = make([]Task, 0)
	}
	for _, t := range tasks {
		out[t.Category] = append(out[t.Category], t)
	}
	return out
}
