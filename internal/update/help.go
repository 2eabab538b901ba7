package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/duetoday/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.screenBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Screen:   string(m.Screen),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) screenBindings() []KeyBinding {
	switch m.Screen {
	case ScreenInit:
		return []KeyBinding{
			{Key: "j/k", Action: "move between questions"},
			{Key: "h/l", Action: "change answer"},
			{Key: "enter", Action: "save and start"},
			{Key: m.Keys.Quit, Action: "quit without initializing"},
			{Key: m.Keys.Help, Action: "toggle help panel"},
		}
	case ScreenToday:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "space", Action: "check / uncheck task"},
			{Key: "pgup/pgdown", Action: "scroll detail"},
			{Key: m.Keys.Save, Action: "save and quit"},
			{Key: m.Keys.Quit, Action: "quit without saving"},
			{Key: m.Keys.Help, Action: "toggle help panel"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.screenBindings()))
	for _, kb := range m.screenBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
