package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todo/internal/editor"
	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/views"
)

type DetailField int

const (
	DetailTask DetailField = iota
	DetailDueDate
	DetailPriority
	DetailLabels
	DetailDetails
	DetailSubtasks
	DetailComment
)

var detailFieldLabels = []string{"Task", "Due Date", "Priority", "Labels", "Details", "Subtasks", "Comment"}

func (f DetailField) String() string {
	if f < 0 || int(f) >= len(detailFieldLabels) {
		return "Unknown"
	}
	return detailFieldLabels[f]
}

func (f DetailField) next(delta int) DetailField {
	n := len(detailFieldLabels)
	return DetailField(((int(f)+delta)%n + n) % n)
}

type DetailsState struct {
	Field         DetailField
	SubtaskCursor int
}

func (m Model) openDetails() (Model, tea.Cmd) {
	task, ok := m.currentTask()
	if !ok {
		return m, nil
	}
	if err := m.Editor.Open(task); err != nil {
		m.setError(err)
		return m, nil
	}
	m.Mode = ModeEditor
	m.Details = DetailsState{Field: DetailTask}
	m.loadDetailFields(task)
	return m, m.focusDetailField()
}

func (m *Model) loadDetailFields(task model.Task) {
	f := &m.fields
	f.text.SetValue(task.Text)
	f.text.CursorEnd()
	f.due.SetValue("")
	if task.DueDate != nil {
		f.due.SetValue(task.DueDate.String())
	}
	f.due.CursorEnd()
	f.labels.SetValue(model.FormatLabels(task.Labels))
	f.labels.CursorEnd()
	f.details.SetValue(task.Details)
	f.comment.SetValue("")
	m.loadSubtaskInput(task)
	m.refreshLabelSuggestions()
	m.refreshPreview()
}

func (m *Model) loadSubtaskInput(task model.Task) {
	c := m.Details.SubtaskCursor
	if c < 0 || c >= len(task.Subtasks) {
		m.fields.subtask.SetValue("")
		return
	}
	m.fields.subtask.SetValue(task.Subtasks[c].Text)
	m.fields.subtask.CursorEnd()
}

func (m *Model) focusDetailField() tea.Cmd {
	f := &m.fields
	f.text.Blur()
	f.due.Blur()
	f.labels.Blur()
	f.details.Blur()
	f.subtask.Blur()
	f.comment.Blur()
	switch m.Details.Field {
	case DetailTask:
		return f.text.Focus()
	case DetailDueDate:
		return f.due.Focus()
	case DetailLabels:
		return f.labels.Focus()
	case DetailDetails:
		return f.details.Focus()
	case DetailSubtasks:
		return f.subtask.Focus()
	case DetailComment:
		return f.comment.Focus()
	}
	return nil
}

func (m Model) handleDetailsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Editor.Cancel()
		m.Mode = ModeList
		m.Status = StatusBar{Text: "changes discarded"}
		return m, nil
	case "ctrl+s":
		m.saveDetails()
		return m, nil
	case "tab":
		if m.Details.Field == DetailLabels && m.labelSuggestionPending() {
			break
		}
		m.Details.Field = m.Details.Field.next(1)
		return m, m.focusDetailField()
	case "shift+tab":
		m.Details.Field = m.Details.Field.next(-1)
		return m, m.focusDetailField()
	}

	var cmd tea.Cmd
	var err error
	f := &m.fields
	switch m.Details.Field {
	case DetailTask:
		f.text, cmd = f.text.Update(msg)
		err = m.Editor.Edit(editor.FieldText, f.text.Value())
	case DetailDueDate:
		f.due, cmd = f.due.Update(msg)
		err = m.Editor.Edit(editor.FieldDueDate, f.due.Value())
	case DetailPriority:
		err = m.handlePriorityKey(msg)
	case DetailLabels:
		f.labels, cmd = f.labels.Update(msg)
		err = m.Editor.Edit(editor.FieldLabels, model.ParseLabels(f.labels.Value()))
		m.refreshLabelSuggestions()
	case DetailDetails:
		f.details, cmd = f.details.Update(msg)
		err = m.Editor.Edit(editor.FieldDetails, f.details.Value())
		m.refreshPreview()
	case DetailSubtasks:
		cmd, err = m.handleSubtaskKey(msg)
	case DetailComment:
		cmd, err = m.handleCommentKey(msg)
	}
	if err != nil {
		m.setError(err)
	}
	return m, cmd
}

func (m *Model) handlePriorityKey(msg tea.KeyMsg) error {
	buf, ok := m.Editor.Buffer()
	if !ok {
		return editor.ErrClosed
	}
	next := buf.Priority
	switch msg.String() {
	case "left", "h":
		next = buf.Priority.Prev()
	case "right", "l", " ":
		next = buf.Priority.Next()
	case "L":
		next = model.PriorityLow
	case "M":
		next = model.PriorityMedium
	case "H":
		next = model.PriorityHigh
	default:
		return nil
	}
	return m.Editor.Edit(editor.FieldPriority, next)
}

func (m *Model) handleSubtaskKey(msg tea.KeyMsg) (tea.Cmd, error) {
	buf, ok := m.Editor.Buffer()
	if !ok {
		return nil, editor.ErrClosed
	}
	c := &m.Details.SubtaskCursor
	switch msg.String() {
	case "ctrl+n":
		idx, err := m.Editor.AddSubtask()
		if err != nil {
			return nil, err
		}
		*c = idx
	case "up":
		if *c > 0 {
			*c--
		}
	case "down":
		if *c < len(buf.Subtasks)-1 {
			*c++
		}
	case "ctrl+t":
		if *c >= len(buf.Subtasks) {
			return nil, nil
		}
		if err := m.Editor.UpdateSubtask(*c, editor.SubtaskCompleted, !buf.Subtasks[*c].Completed); err != nil {
			return nil, err
		}
	case "ctrl+d":
		if *c >= len(buf.Subtasks) {
			return nil, nil
		}
		if err := m.Editor.DeleteSubtask(*c); err != nil {
			return nil, err
		}
		if *c > 0 && *c >= len(buf.Subtasks)-1 {
			*c--
		}
	default:
		if *c >= len(buf.Subtasks) {
			return nil, nil
		}
		var cmd tea.Cmd
		m.fields.subtask, cmd = m.fields.subtask.Update(msg)
		return cmd, m.Editor.UpdateSubtask(*c, editor.SubtaskText, m.fields.subtask.Value())
	}
	buf, _ = m.Editor.Buffer()
	m.loadSubtaskInput(buf)
	return nil, nil
}

func (m *Model) handleCommentKey(msg tea.KeyMsg) (tea.Cmd, error) {
	if msg.String() == "enter" {
		added, err := m.Editor.AddComment(m.fields.comment.Value())
		if added {
			m.fields.comment.SetValue("")
		}
		return nil, err
	}
	var cmd tea.Cmd
	m.fields.comment, cmd = m.fields.comment.Update(msg)
	return cmd, nil
}

func (m *Model) saveDetails() {
	saved, err := m.Editor.Save(m.ctx, m.Store)
	if err != nil {
		if !m.Editor.IsOpen() {
			m.Mode = ModeList
			m.clampCursor()
		}
		m.setError(err)
		return
	}
	m.Mode = ModeList
	m.Status = StatusBar{Text: fmt.Sprintf("saved: %s", saved.Text)}
	m.scheduleDue(saved)
	m.focusTask(saved.ID)
}

func (m *Model) refreshPreview() {
	f := &m.fields
	src := f.details.Value()
	if f.ready && src == f.source && f.dark == m.DarkMode {
		return
	}
	f.source, f.dark, f.ready = src, m.DarkMode, true
	f.rendered = views.RenderMarkdown(src, m.DarkMode, f.preview.Width)
	f.preview.SetContent(f.rendered)
}

func (m Model) labelSuggestionPending() bool {
	s := m.fields.labels.CurrentSuggestion()
	return s != "" && s != m.fields.labels.Value()
}

func (m *Model) refreshLabelSuggestions() {
	base, _ := splitLabelInput(m.fields.labels.Value())
	candidates := labelCandidates(m.fields.labels.Value())
	full := make([]string, 0, len(candidates))
	for _, c := range candidates {
		full = append(full, base+c)
	}
	m.fields.labels.SetSuggestions(full)
}

// splitLabelInput separates the finished part of a comma separated label
// list from the label still being typed.
func splitLabelInput(value string) (string, string) {
	i := strings.LastIndex(value, ",")
	if i < 0 {
		trimmed := strings.TrimLeft(value, " ")
		return value[:len(value)-len(trimmed)], trimmed
	}
	rest := value[i+1:]
	partial := strings.TrimLeft(rest, " ")
	return value[:len(value)-len(partial)], partial
}

// labelCandidates lists suggested labels that are not yet present and start
// with the label being typed.
func labelCandidates(value string) []string {
	base, partial := splitLabelInput(value)
	present := map[string]bool{}
	for _, l := range model.ParseLabels(base) {
		present[strings.ToLower(l)] = true
	}
	out := []string{}
	for _, l := range model.SuggestedLabels {
		if present[strings.ToLower(l)] {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(l), strings.ToLower(partial)) {
			continue
		}
		out = append(out, l)
	}
	return out
}
