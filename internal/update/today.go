package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/duetoday/internal/due"
)

func (m Model) handleTodayKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < m.Session.Len()-1 {
			m.Cursor++
		}
	case "home", "g":
		m.Cursor = 0
	case "end", "G":
		if m.Session.Len() > 0 {
			m.Cursor = m.Session.Len() - 1
		}
	case m.Keys.Toggle, "x", "enter":
		if selected, ok := m.currentTodayItem(); ok {
			m.Session.Toggle(selected.Key)
		}
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.detailView, cmd = m.detailView.Update(msg)
		return m, cmd
	case m.Keys.Save:
		return m.saveAndQuit()
	}
	return m, nil
}

// saveAndQuit records the checked tasks for today. A failed save keeps the
// program open so the user can retry or quit without saving.
func (m Model) saveAndQuit() (Model, tea.Cmd) {
	ids := m.Session.CompletedIDs()
	if err := m.tracker.RecordCompletions(m.ctx, ids, m.tracker.Today()); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Save Failed", err.Error(), "error")
		return m, nil
	}
	m.logger.Info("session saved", "checked", len(ids))
	m.Saved = true
	m.Quitting = true
	return m, tea.Quit
}

func (m Model) currentTodayItem() (due.Task, bool) {
	tasks := m.Session.Tasks()
	if len(tasks) == 0 {
		return due.Task{}, false
	}
	if m.Cursor < 0 || m.Cursor >= len(tasks) {
		return due.Task{}, false
	}
	return tasks[m.Cursor], true
}
