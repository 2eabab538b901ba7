package update

import (
	"github.com/sandeepkv93/duetoday/internal/model"
	"github.com/sandeepkv93/duetoday/internal/tracker"
)

type InitRowKind int

const (
	InitRowDaysAgo InitRowKind = iota
	InitRowRotation
)

// InitRow is one question on the init screen. Index always points at one of
// Options, so the form can only produce offered answers.
type InitRow struct {
	Kind    InitRowKind
	Key     string
	Label   string
	Options []string
	Index   int
}

type InitForm struct {
	Rows         []InitRow
	Cursor       int
	ConfirmAbort bool
}

func NewInitForm(catalog model.Catalog, defaults tracker.InitChoices) InitForm {
	var f InitForm
	for _, def := range catalog.Periodic() {
		opts := tracker.DaysAgoOptions(def)
		labels := make([]string, 0, len(opts))
		for _, opt := range opts {
			labels = append(labels, opt.Label)
		}
		f.Rows = append(f.Rows, InitRow{
			Kind:    InitRowDaysAgo,
			Key:     def.Key,
			Label:   def.Name,
			Options: labels,
			Index:   clampIndex(defaults.DaysAgo[def.Key], len(labels)),
		})
	}
	rotations := tracker.RotationOptions()
	for _, key := range model.AnchorKeys() {
		labels := make([]string, 0, len(rotations))
		idx := 0
		for i, opt := range rotations {
			labels = append(labels, opt.Label)
			if opt.Choice == defaults.Rotations[key] {
				idx = i
			}
		}
		f.Rows = append(f.Rows, InitRow{
			Kind:    InitRowRotation,
			Key:     key,
			Label:   model.AnchorLabel(key),
			Options: labels,
			Index:   idx,
		})
	}
	return f
}

func (f *InitForm) Move(delta int) {
	if len(f.Rows) == 0 {
		return
	}
	f.Cursor = clampIndex(f.Cursor+delta, len(f.Rows))
}

// Cycle steps the selected row's answer, wrapping at either end.
func (f *InitForm) Cycle(delta int) {
	if f.Cursor < 0 || f.Cursor >= len(f.Rows) {
		return
	}
	row := &f.Rows[f.Cursor]
	n := len(row.Options)
	if n == 0 {
		return
	}
	row.Index = ((row.Index+delta)%n + n) % n
}

func (f InitForm) Choices() tracker.InitChoices {
	c := tracker.InitChoices{
		DaysAgo:   make(map[string]int),
		Rotations: make(map[string]tracker.RotationChoice),
	}
	rotations := tracker.RotationOptions()
	for _, row := range f.Rows {
		switch row.Kind {
		case InitRowDaysAgo:
			c.DaysAgo[row.Key] = row.Index
		case InitRowRotation:
			c.Rotations[row.Key] = rotations[row.Index].Choice
		}
	}
	return c
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
