package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/scheduler"
)

const dueLogSize = 20

func waitForDueCmd(ch <-chan scheduler.DueEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return DueAlertMsg{Event: ev}
	}
}

func (m *Model) scheduleAllDue() {
	if m.Scheduler == nil || m.Store == nil {
		return
	}
	for _, t := range m.Store.Tasks() {
		m.scheduleDue(t)
	}
}

// scheduleDue replaces any pending alert for task with one for its current
// due date.
func (m *Model) scheduleDue(task model.Task) {
	if m.Scheduler == nil {
		return
	}
	m.Scheduler.Cancel(task.ID)
	ev, ok := scheduler.EventFor(task, m.location, m.reminderAt)
	if !ok {
		return
	}
	if err := m.Scheduler.Schedule(ev); err != nil {
		m.logger.Warn("schedule due alert", "task", task.ID, "err", err)
	}
}

// isStale reports whether ev no longer matches the task it was scheduled
// for.
func (m Model) isStale(ev scheduler.DueEvent) bool {
	task, ok := m.Store.Get(ev.TaskID)
	if !ok || task.Completed || task.DueDate == nil {
		return true
	}
	return *task.DueDate != ev.DueDate
}

// applyDueAlert records a fired alert and returns the desktop delivery, if
// any.
func (m *Model) applyDueAlert(ev scheduler.DueEvent) tea.Cmd {
	if m.isStale(ev) {
		m.logger.Debug("stale due alert ignored", "task", ev.TaskID)
		return nil
	}
	m.DueLog = append(m.DueLog, ev)
	if len(m.DueLog) > dueLogSize {
		m.DueLog = m.DueLog[len(m.DueLog)-dueLogSize:]
	}
	task, _ := m.Store.Get(ev.TaskID)
	body := fmt.Sprintf("%s (Due: %s)", task.Text, ev.DueDate.Display())
	m.Status = StatusBar{Text: "due: " + body}
	n, ok := m.notify("Task due", body, "warn")
	if !ok {
		return nil
	}
	return m.desktopCmd(n)
}
