package update

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/store"
)

// visible returns the tasks shown under the current filter.
func (m Model) visible() []model.Task {
	if m.Store == nil {
		return nil
	}
	return m.Store.Filter(m.Filter)
}

func (m Model) currentTask() (model.Task, bool) {
	tasks := m.visible()
	if m.Cursor < 0 || m.Cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.Cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m *Model) focusTask(id string) {
	for i, t := range m.visible() {
		if t.ID == id {
			m.Cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	k := m.Keys
	switch {
	case key.Matches(msg, k.Add):
		m.Mode = ModeAdd
		return m, m.addInput.Focus()
	case key.Matches(msg, k.Down):
		if m.Cursor < len(m.visible())-1 {
			m.Cursor++
		}
	case key.Matches(msg, k.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, k.Toggle):
		if err := m.toggleCurrent(); err != nil {
			m.setError(err)
		}
	case key.Matches(msg, k.Delete):
		if err := m.deleteCurrent(); err != nil {
			m.setError(err)
		}
	case key.Matches(msg, k.Open):
		return m.openDetails()
	case key.Matches(msg, k.Drag):
		m.startDrag()
	case key.Matches(msg, k.MoveUp):
		m.moveCurrent(-1)
	case key.Matches(msg, k.MoveDown):
		m.moveCurrent(1)
	case key.Matches(msg, k.Filter):
		m.setFilter(m.Filter.Next())
	case key.Matches(msg, k.All):
		m.setFilter(model.FilterAll)
	case key.Matches(msg, k.Active):
		m.setFilter(model.FilterActive)
	case key.Matches(msg, k.Done):
		m.setFilter(model.FilterCompleted)
	case key.Matches(msg, k.Theme):
		m.setDarkMode(!m.DarkMode)
	}
	return m, nil
}

func (m Model) handleAddKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = ModeList
		m.addInput.Blur()
		return m, nil
	case "enter":
		task, err := m.addTask(m.addInput.Value())
		switch {
		case err != nil:
			m.setError(err)
		case task.ID != "":
			m.Status = StatusBar{Text: fmt.Sprintf("added: %s", task.Text)}
		}
		m.addInput.SetValue("")
		return m, nil
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

// addTask adds a task and moves the cursor onto it. Blank text is ignored
// silently.
func (m *Model) addTask(text string) (model.Task, error) {
	task, err := m.Store.Add(m.ctx, text)
	if errors.Is(err, store.ErrEmptyText) {
		return task, nil
	}
	if task.ID != "" {
		m.scheduleDue(task)
		m.focusTask(task.ID)
	}
	return task, err
}

// toggleCurrent flips the task under the cursor.
func (m *Model) toggleCurrent() error {
	task, ok := m.currentTask()
	if !ok {
		return nil
	}
	err := m.Store.ToggleCompleted(m.ctx, task.ID)
	if updated, ok := m.Store.Get(task.ID); ok {
		m.scheduleDue(updated)
	}
	m.clampCursor()
	return err
}

func (m *Model) deleteCurrent() error {
	task, ok := m.currentTask()
	if !ok {
		return nil
	}
	err := m.Store.Remove(m.ctx, task.ID)
	if err == nil {
		m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", task.Text)}
	}
	if m.Scheduler != nil {
		m.Scheduler.Cancel(task.ID)
	}
	m.clampCursor()
	return err
}

func (m *Model) setFilter(f model.Filter) {
	selected, ok := m.currentTask()
	m.Filter = f
	if ok {
		m.focusTask(selected.ID)
	} else {
		m.clampCursor()
	}
}

func (m *Model) setDarkMode(dark bool) {
	m.DarkMode = dark
	if m.Mode == ModeEditor {
		m.refreshPreview()
	}
}

func (m *Model) startDrag() {
	task, ok := m.currentTask()
	if !ok {
		return
	}
	m.Mode = ModeDrag
	m.Drag = DragState{TaskID: task.ID, From: m.Cursor, Slot: m.Cursor}
	m.Status = StatusBar{Text: "moving: j/k choose position, enter drop, esc cancel"}
}

func (m Model) handleDragKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case msg.String() == "esc":
		m.Mode = ModeList
		m.Cursor = m.Drag.From
		m.Drag = DragState{}
		m.Status = StatusBar{Text: "move cancelled"}
	case msg.String() == "enter":
		m.dropAt(m.Drag.Slot)
	case key.Matches(msg, m.Keys.Down):
		if m.Drag.Slot < len(m.visible())-1 {
			m.Drag.Slot++
		}
	case key.Matches(msg, m.Keys.Up):
		if m.Drag.Slot > 0 {
			m.Drag.Slot--
		}
	}
	return m, nil
}

func (m *Model) dropAt(slot int) {
	taskID := m.Drag.TaskID
	m.Mode = ModeList
	m.Drag = DragState{}
	if err := m.moveVisible(taskID, slot); err != nil {
		m.setError(err)
	}
	m.focusTask(taskID)
}

func (m *Model) moveCurrent(delta int) {
	task, ok := m.currentTask()
	if !ok {
		return
	}
	target := m.Cursor + delta
	if target < 0 || target >= len(m.visible()) {
		return
	}
	if err := m.moveVisible(task.ID, target); err != nil {
		m.setError(err)
	}
	m.focusTask(task.ID)
}

// moveVisible moves the task with id to position slot of the visible list.
// The store reorders the full list, so the task currently shown at slot
// is translated to its store index first.
func (m *Model) moveVisible(id string, slot int) error {
	tasks := m.visible()
	if slot < 0 || slot >= len(tasks) {
		return fmt.Errorf("%w: position %d", store.ErrIndexOutOfRange, slot+1)
	}
	from := m.Store.Index(id)
	if from < 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	to := m.Store.Index(tasks[slot].ID)
	return m.Store.Reorder(m.ctx, from, to)
}

// dragPreview is the visible list with the dragged task shown at its slot.
func (m Model) dragPreview() []model.Task {
	tasks := m.visible()
	from, slot := m.Drag.From, m.Drag.Slot
	if from < 0 || from >= len(tasks) || slot < 0 || slot >= len(tasks) || from == slot {
		return tasks
	}
	moved := tasks[from]
	rest := append(append([]model.Task{}, tasks[:from]...), tasks[from+1:]...)
	out := make([]model.Task, 0, len(tasks))
	out = append(out, rest[:slot]...)
	out = append(out, moved)
	return append(out, rest[slot:]...)
}
