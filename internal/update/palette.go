package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todo/internal/commands"
	"github.com/sandeepkv93/todo/internal/store"
)

func (m Model) openPalette() (Model, tea.Cmd) {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.Status = StatusBar{Text: "command palette active"}
	return m, m.commandInput.Focus()
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := m.addTask(a.Title)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added: %s", task.Text)}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			m.setFilter(f.Mode)
			return commands.Result{Message: fmt.Sprintf("showing %s tasks", strings.ToLower(f.Mode.Label()))}, nil
		},
		Theme: func(t commands.ThemeArgs) (commands.Result, error) {
			m.setDarkMode(t.Dark)
			if t.Dark {
				return commands.Result{Message: "dark mode on"}, nil
			}
			return commands.Result{Message: "dark mode off"}, nil
		},
		Move: func(a commands.MoveArgs) (commands.Result, error) {
			tasks := m.visible()
			if a.From > len(tasks) || a.To > len(tasks) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("positions must be between 1 and %d", len(tasks))}
			}
			id := tasks[a.From-1].ID
			if err := m.moveVisible(id, a.To-1); err != nil {
				return commands.Result{}, err
			}
			m.focusTask(id)
			return commands.Result{Message: fmt.Sprintf("moved %d to %d", a.From, a.To)}, nil
		},
		Priority: func(a commands.PriorityArgs) (commands.Result, error) {
			task, ok := m.currentTask()
			if !ok {
				return commands.Result{}, noSelection()
			}
			task.Priority = a.Priority
			if err := m.Store.Replace(m.ctx, task); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("priority %s: %s", a.Priority, task.Text)}, nil
		},
		Delete: func() (commands.Result, error) {
			task, ok := m.currentTask()
			if !ok {
				return commands.Result{}, noSelection()
			}
			if err := m.deleteCurrent(); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("deleted: %s", task.Text)}, nil
		},
		Toggle: func() (commands.Result, error) {
			task, ok := m.currentTask()
			if !ok {
				return commands.Result{}, noSelection()
			}
			if err := m.toggleCurrent(); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("toggled: %s", task.Text)}, nil
		},
		Open: func() (commands.Result, error) {
			task, ok := m.currentTask()
			if !ok {
				return commands.Result{}, noSelection()
			}
			m, next = m.openDetails()
			return commands.Result{Message: fmt.Sprintf("editing: %s", task.Text)}, nil
		},
	})
	if err != nil {
		m.setError(err)
		m.notify("Command Failed", err.Error(), "error")
		return m, next
	}
	m.Status = StatusBar{Text: res.Message}
	m.notify("Command", res.Message, "info")
	return m, next
}

func noSelection() error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("%v: no task selected", store.ErrNotFound)}
}
