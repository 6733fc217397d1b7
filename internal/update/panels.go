package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/views"
)

const notificationLogSize = 40

func (m Model) theme() views.Theme {
	return views.ThemeFor(m.DarkMode)
}

func (m Model) renderListView() string {
	tasks := m.visible()
	cursor := m.Cursor
	if m.Mode == ModeDrag {
		tasks = m.dragPreview()
		cursor = m.Drag.Slot
	}
	rows := make([]views.TaskRowData, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, taskRow(t, i == cursor, m.Mode == ModeDrag && t.ID == m.Drag.TaskID))
	}
	filters := make([]string, 0, len(model.Filters))
	active := 0
	for i, f := range model.Filters {
		filters = append(filters, f.Label())
		if f == m.Filter {
			active = i
		}
	}
	height := m.listHeight()
	return views.RenderTaskList(m.theme(), views.TaskListData{
		AddInputView: m.addInput.View(),
		Filters:      filters,
		ActiveFilter: active,
		Rows:         rows,
		Offset:       scrollOffset(cursor, height),
		Height:       height,
		Remaining:    m.remaining(),
	})
}

func taskRow(t model.Task, selected, dragging bool) views.TaskRowData {
	due := ""
	if t.DueDate != nil {
		due = t.DueDate.Display()
	}
	return views.TaskRowData{
		ID:            t.ID,
		Text:          t.Text,
		Completed:     t.Completed,
		Priority:      t.Priority,
		DueDate:       due,
		Labels:        t.Labels,
		SubtasksDone:  t.CompletedSubtasks(),
		SubtasksTotal: len(t.Subtasks),
		Selected:      selected,
		Dragging:      dragging,
	}
}

func (m Model) remaining() int {
	if m.Store == nil {
		return 0
	}
	return len(m.Store.Filter(model.FilterActive))
}

// listHeight is the number of task rows that fit; 0 means unknown.
func (m Model) listHeight() int {
	if m.height <= 0 {
		return 0
	}
	h := m.height - 10
	if h < 3 {
		h = 3
	}
	return h
}

func scrollOffset(cursor, height int) int {
	if height <= 0 || cursor < height {
		return 0
	}
	return cursor - height + 1
}

func (m Model) renderDetailsView() string {
	buf, ok := m.Editor.Buffer()
	if !ok {
		return ""
	}
	f := m.fields
	fieldViews := map[DetailField]string{
		DetailTask:     f.text.View(),
		DetailDueDate:  f.due.View(),
		DetailPriority: "(←/→)",
		DetailLabels:   f.labels.View(),
		DetailDetails:  f.details.View(),
		DetailSubtasks: f.subtask.View(),
		DetailComment:  f.comment.View(),
	}
	fields := make([]views.EditorFieldData, 0, len(detailFieldLabels))
	for i := range detailFieldLabels {
		field := DetailField(i)
		fields = append(fields, views.EditorFieldData{
			Label:   field.String(),
			View:    fieldViews[field],
			Focused: field == m.Details.Field,
		})
	}
	subtasks := make([]views.SubtaskRowData, 0, len(buf.Subtasks))
	for i, st := range buf.Subtasks {
		subtasks = append(subtasks, views.SubtaskRowData{
			Text:      st.Text,
			Completed: st.Completed,
			Selected:  i == m.Details.SubtaskCursor,
		})
	}
	preview := ""
	if f.rendered != "" {
		preview = f.preview.View()
	}
	return views.RenderEditor(m.theme(), views.EditorData{
		Fields:      fields,
		Priority:    buf.Priority,
		Preview:     preview,
		Subtasks:    subtasks,
		SubtasksOn:  m.Details.Field == DetailSubtasks,
		Comments:    buf.Comments,
		Suggestions: labelCandidates(f.labels.Value()),
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(m.theme(), n.Level, n.Title, n.Body)
}

func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.logger.Error("task operation failed", "err", err)
}

// notify records an in-app notification.
func (m *Model) notify(title, body, level string) (Notification, bool) {
	if strings.TrimSpace(body) == "" {
		return Notification{}, false
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > notificationLogSize {
		m.Notifications = m.Notifications[len(m.Notifications)-notificationLogSize:]
	}
	return n, true
}

// desktopCmd delivers n off the update loop when desktop notifications are
// enabled.
func (m Model) desktopCmd(n Notification) tea.Cmd {
	if !m.DesktopEnabled || m.notifier == nil {
		return nil
	}
	notifier := m.notifier
	return func() tea.Msg {
		if err := notifier.Send(n); err != nil {
			return desktopNotifyFailedMsg{err: err}
		}
		return nil
	}
}
