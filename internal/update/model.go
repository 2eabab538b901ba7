package update

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/duetoday/internal/config"
	"github.com/sandeepkv93/duetoday/internal/due"
	"github.com/sandeepkv93/duetoday/internal/logging"
	"github.com/sandeepkv93/duetoday/internal/tracker"
)

type Screen string

const (
	ScreenInit  Screen = "Init"
	ScreenToday Screen = "Today"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Help   string
	Quit   string
	Toggle string
	Save   string
}

type Model struct {
	Screen         Screen
	Form           InitForm
	Session        tracker.Session
	Cursor         int
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	Saved          bool
	LastError      error

	ctx     context.Context
	tracker *tracker.Tracker
	logger  *slog.Logger

	helpModel     help.Model
	progressBar   progress.Model
	detailView    viewport.Model
	progressWidth int
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// NewModel builds the TUI around an opened tracker. An uninitialized tracker
// starts on the init screen, a ready one on today's list.
func NewModel(ctx context.Context, tr *tracker.Tracker, cfg config.RuntimeConfig, notifier DesktopNotifier, logger *slog.Logger) Model {
	m := Model{
		DesktopEnabled: cfg.DesktopNotifications,
		notifier:       NoopDesktopNotifier{},
		Keys: GlobalKeyMap{
			Help:   "?",
			Quit:   "ctrl+c",
			Toggle: " ",
			Save:   "q",
		},
		ctx:           ctx,
		tracker:       tr,
		logger:        logging.OrDiscard(logger),
		progressWidth: cfg.ProgressWidth,
	}
	if notifier != nil {
		m.notifier = notifier
	}
	if m.progressWidth <= 0 {
		m.progressWidth = config.DefaultRuntimeConfig().ProgressWidth
	}
	m.initBubbleComponents()

	if tr.Phase() == tracker.PhaseReady {
		m.enterToday()
	} else {
		if err := tr.BeginInitialization(); err != nil {
			m.LastError = err
		}
		m.Screen = ScreenInit
		m.Form = NewInitForm(tr.Catalog(), tr.DefaultChoices())
	}
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.helpModel = help.New()
	m.progressBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(m.progressWidth))
	m.detailView = viewport.New(44, 10)
}

// enterToday rebuilds the session from the tracker's current due list.
func (m *Model) enterToday() {
	tasks, err := m.tracker.TodayTasks()
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.LastError = err
		tasks = nil
	}
	m.Screen = ScreenToday
	m.Session = tracker.NewSession(tasks)
	m.Cursor = 0
	m.notify("duetoday", dueSummary(tasks), "info")
}

func (m Model) Tasks() []due.Task {
	return m.Session.Tasks()
}
