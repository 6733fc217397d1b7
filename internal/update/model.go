// Package update holds the bubbletea model: the task list screen, the
// details editor dialog, the command palette and due-date alerts.
package update

import (
	"context"
	"log/slog"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/todo/internal/config"
	"github.com/sandeepkv93/todo/internal/editor"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/scheduler"
	"github.com/sandeepkv93/todo/internal/store"
)

type Mode string

const (
	ModeList   Mode = "list"
	ModeAdd    Mode = "add"
	ModeDrag   Mode = "drag"
	ModeEditor Mode = "editor"
)

type StatusBar struct {
	Text    string
	IsError bool
}

// DragState tracks a pending move. Slot is a position in the visible list.
type DragState struct {
	TaskID string
	From   int
	Slot   int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	Store          *store.Store
	Filter         model.Filter
	Cursor         int
	Mode           Mode
	Drag           DragState
	Editor         *editor.Editor
	Details        DetailsState
	Palette        CommandPaletteState
	HelpVisible    bool
	DarkMode       bool
	Status         StatusBar
	Notifications  []Notification
	DesktopEnabled bool
	Scheduler      *scheduler.Engine
	DueLog         []scheduler.DueEvent
	Keys           KeyMap
	Quitting       bool
	LastError      error

	ctx        context.Context
	logger     *slog.Logger
	notifier   DesktopNotifier
	location   *time.Location
	reminderAt int
	width      int
	height     int

	addInput     textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
	fields       detailFields
}

// detailFields are the bubbles widgets backing the editor dialog.
type detailFields struct {
	text     textinput.Model
	due      textinput.Model
	labels   textinput.Model
	details  textarea.Model
	subtask  textinput.Model
	comment  textinput.Model
	preview  viewport.Model
	rendered string
	source   string
	dark     bool
	ready    bool
}

type KeyMap struct {
	Add      key.Binding
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	Open     key.Binding
	Drag     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Filter   key.Binding
	All      key.Binding
	Active   key.Binding
	Done     key.Binding
	Theme    key.Binding
	Palette  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add:      key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a/i", "add task")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		Delete:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d/x", "delete")),
		Open:     key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter/e", "details")),
		Drag:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "drag to reorder")),
		MoveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
		All:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Active:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		Done:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "dark mode")),
		Palette:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "commands")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", "--", n.Title, n.Body).Run()
	case "darwin":
		return exec.Command("osascript", osascriptArgs(n)...).Run()
	default:
		return nil
	}
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type DueAlertMsg struct {
	Event scheduler.DueEvent
}

// desktopNotifyFailedMsg reports a desktop notification that could not be
// delivered.
type desktopNotifyFailedMsg struct {
	err error
}

type Option func(*Model)

func WithScheduler(engine *scheduler.Engine) Option {
	return func(m *Model) { m.Scheduler = engine }
}

func WithNotifier(n DesktopNotifier) Option {
	return func(m *Model) {
		if n != nil {
			m.notifier = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(m *Model) {
		if loc != nil {
			m.location = loc
		}
	}
}

func NewModel(s *store.Store, opts ...Option) Model {
	return NewModelWithConfig(s, config.Default(), opts...)
}

func NewModelWithConfig(s *store.Store, cfg config.Config, opts ...Option) Model {
	m := Model{
		Store:          s,
		Filter:         model.FilterAll,
		Mode:           ModeList,
		Editor:         editor.New(),
		DarkMode:       cfg.DarkMode,
		DesktopEnabled: cfg.DesktopNotifications,
		Keys:           DefaultKeyMap(),
		ctx:            context.Background(),
		logger:         slog.New(slog.DiscardHandler),
		notifier:       NoopDesktopNotifier{},
		location:       time.Local,
		reminderAt:     cfg.DueReminderHour,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.initBubbleComponents()
	m.scheduleAllDue()
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "+ "
	m.addInput.Placeholder = "Add a new task"
	m.addInput.CharLimit = 256
	m.addInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.fields = newDetailFields()
}

func newDetailFields() detailFields {
	f := detailFields{
		text:    textinput.New(),
		due:     textinput.New(),
		labels:  textinput.New(),
		details: textarea.New(),
		subtask: textinput.New(),
		comment: textinput.New(),
		preview: viewport.New(60, 6),
	}
	f.text.Prompt = ""
	f.text.CharLimit = 256
	f.due.Prompt = ""
	f.due.Placeholder = model.DateLayout
	f.due.CharLimit = 32
	f.labels.Prompt = ""
	f.labels.Placeholder = "Add labels"
	f.labels.ShowSuggestions = true
	f.subtask.Prompt = ""
	f.subtask.Placeholder = "Subtask text"
	f.comment.Prompt = ""
	f.comment.Placeholder = "Add comment"
	f.details.Placeholder = "Details / Description (markdown)"
	f.details.ShowLineNumbers = false
	f.details.SetWidth(60)
	f.details.SetHeight(5)
	return f
}
