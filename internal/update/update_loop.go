package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/duetoday/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == m.Keys.Help && !m.Form.ConfirmAbort {
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		}
		switch m.Screen {
		case ScreenInit:
			return m.handleInitKey(typed)
		case ScreenToday:
			if typed.String() == m.Keys.Quit {
				m.logger.Info("quit without saving", "checked", len(m.Session.CompletedIDs()))
				m.Quitting = true
				return m, tea.Quit
			}
			return m.handleTodayKey(typed)
		}
	case tea.WindowSizeMsg:
		m.helpModel.Width = typed.Width
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleInitKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	if m.Form.ConfirmAbort {
		switch keyStr {
		case "y", "Y", m.Keys.Quit:
			m.logger.Info("initialization aborted")
			m.Quitting = true
			return m, tea.Quit
		case "n", "N", "esc":
			m.Form.ConfirmAbort = false
			m.Status = StatusBar{Text: "initialization resumed", IsError: false}
		}
		return m, nil
	}

	switch keyStr {
	case m.Keys.Quit, "esc", m.Keys.Save:
		m.Form.ConfirmAbort = true
	case "up", "k", "shift+tab":
		m.Form.Move(-1)
	case "down", "j", "tab":
		m.Form.Move(1)
	case "left", "h":
		m.Form.Cycle(-1)
	case "right", "l", m.Keys.Toggle:
		m.Form.Cycle(1)
	case "enter":
		return m.submitInit()
	}
	return m, nil
}

func (m Model) submitInit() (Model, tea.Cmd) {
	if _, err := m.tracker.Initialize(m.ctx, m.Form.Choices()); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Init Failed", err.Error(), "error")
		return m, nil
	}
	m.Status = StatusBar{Text: "初始化设置已保存！", IsError: false}
	m.enterToday()
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	footer := ""
	switch m.Screen {
	case ScreenInit:
		leftPane = m.renderInitView()
		rightPane = m.renderHelpIfVisible()
		footer = fmt.Sprintf("keys: j/k move | h/l change | enter save | %s help | %s quit", m.Keys.Help, m.Keys.Quit)
	case ScreenToday:
		leftPane = m.renderTodayView()
		rightPane = m.renderDetailPane()
		if help := m.renderHelpIfVisible(); help != "" {
			rightPane += "\n\n" + help
		}
		footer = fmt.Sprintf("keys: space check | %s save+quit | %s quit | %s help", m.Keys.Save, m.Keys.Quit, m.Keys.Help)
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("duetoday | %s | %s | week %d", m.Screen, m.tracker.Today(), m.tracker.ISOWeek()),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: m.renderNotificationsView(),
		Footer:       footer,
	})
}
