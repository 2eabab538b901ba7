package tracker

import "github.com/sandeepkv93/duetoday/internal/due"

// Session is the in-memory checklist for one viewing of the due list. It is
// never persisted on its own.
type Session struct {
	tasks   []due.Task
	checked map[string]bool
}

func NewSession(tasks []due.Task) Session {
	cp := make([]due.Task, len(tasks))
	copy(cp, tasks)
	return Session{tasks: cp, checked: make(map[string]bool)}
}

func (s Session) Tasks() []due.Task {
	out := make([]due.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s Session) Len() int { return len(s.tasks) }

// Toggle flips the mark on key and returns the new mark. Keys that are not on
// the list are ignored.
func (s Session) Toggle(key string) bool {
	if !s.has(key) {
		return false
	}
	s.checked[key] = !s.checked[key]
	if !s.checked[key] {
		delete(s.checked, key)
	}
	return s.checked[key]
}

func (s Session) Completed(key string) bool {
	return s.checked[key]
}

// CompletedIDs returns the marked keys in list order.
func (s Session) CompletedIDs() []string {
	out := make([]string, 0, len(s.checked))
	for _, t := range s.tasks {
		if s.checked[t.Key] {
			out = append(out, t.Key)
		}
	}
	return out
}

// Progress is the marked fraction of the list; an empty list counts as done.
func (s Session) Progress() float64 {
	if len(s.tasks) == 0 {
		return 1
	}
	return float64(len(s.checked)) / float64(len(s.tasks))
}

func (s Session) has(key string) bool {
	for _, t := range s.tasks {
		if t.Key == key {
			return true
		}
	}
	return false
}
