package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todo/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForDueCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.width, m.height = typed.Width, typed.Height
		m.resize()
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.setError(typed.Err)
		return m, nil
	case DueAlertMsg:
		desktop := m.applyDueAlert(typed.Event)
		if m.Scheduler != nil {
			return m, tea.Batch(desktop, waitForDueCmd(m.Scheduler.C()))
		}
		return m, desktop
	case desktopNotifyFailedMsg:
		m.logger.Warn("desktop notification failed", "err", typed.err)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	switch m.Mode {
	case ModeEditor:
		return m.handleDetailsKey(msg)
	case ModeAdd:
		return m.handleAddKey(msg)
	case ModeDrag:
		return m.handleDragKey(msg)
	}

	switch {
	case key.Matches(msg, m.Keys.Palette):
		return m.openPalette()
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	}
	return m.handleListKey(msg)
}

func (m *Model) resize() {
	w := m.width - 8
	if w < 20 {
		w = 20
	}
	m.addInput.Width = w
	m.commandInput.Width = w
	m.helpModel.Width = m.width
	f := &m.fields
	f.text.Width = w
	f.due.Width = w
	f.labels.Width = w
	f.subtask.Width = w
	f.comment.Width = w
	f.details.SetWidth(w)
	f.preview.Width = w
	f.ready = false
	if m.Mode == ModeEditor {
		m.refreshPreview()
	}
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	body := m.renderListView()
	if m.Mode == ModeEditor {
		body = m.renderDetailsView()
	}
	overlay := m.renderCommandPalette()
	if overlay == "" {
		overlay = m.renderHelpIfVisible()
	}

	header := fmt.Sprintf("todo | %s", m.Filter.Label())
	if m.Store != nil {
		header = fmt.Sprintf("todo | %s | %d tasks", m.Filter.Label(), m.Store.Len())
	}
	if m.DarkMode {
		header += " | dark"
	}
	return views.RenderApp(views.AppData{
		Theme:         m.theme(),
		Header:        header,
		Body:          body,
		Overlay:       overlay,
		StatusLine:    m.Status.Text,
		StatusIsError: m.Status.IsError,
		Notification:  m.renderNotificationsView(),
		Footer:        m.shortHelp(),
	})
}
