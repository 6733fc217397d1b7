package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/todo/internal/model"
)

const EmptyListText = "No tasks here!"

type TaskRowData struct {
	ID            string
	Text          string
	Completed     bool
	Priority      model.Priority
	DueDate       string
	Labels        []string
	SubtasksDone  int
	SubtasksTotal int
	Selected      bool
	Dragging      bool
}

type TaskListData struct {
	AddInputView string
	Filters      []string
	ActiveFilter int
	Rows         []TaskRowData
	// Offset and Height window the rows; Height <= 0 shows everything.
	Offset    int
	Height    int
	Remaining int
}

func RenderTaskList(th Theme, data TaskListData) string {
	var b strings.Builder
	b.WriteString(data.AddInputView + "\n")
	b.WriteString(renderTabs(th, data.Filters, data.ActiveFilter) + "\n")

	if len(data.Rows) == 0 {
		b.WriteString(th.Muted.Render(EmptyListText))
	} else {
		start, end := window(len(data.Rows), data.Offset, data.Height)
		if start > 0 {
			b.WriteString(th.Muted.Render(fmt.Sprintf("  ↑ %d more", start)) + "\n")
		}
		rows := make([]string, 0, end-start)
		for _, row := range data.Rows[start:end] {
			rows = append(rows, RenderTaskRow(th, row))
		}
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
		if end < len(data.Rows) {
			b.WriteString("\n" + th.Muted.Render(fmt.Sprintf("  ↓ %d more", len(data.Rows)-end)))
		}
	}
	b.WriteString("\n" + th.Muted.Render(fmt.Sprintf("%d %s left", data.Remaining, plural(data.Remaining, "item", "items"))))
	return b.String()
}

func window(n, offset, height int) (int, int) {
	if height <= 0 || height >= n {
		return 0, n
	}
	if offset < 0 {
		offset = 0
	}
	if offset > n-height {
		offset = n - height
	}
	return offset, offset + height
}

func renderTabs(th Theme, filters []string, active int) string {
	tabs := make([]string, 0, len(filters))
	for i, f := range filters {
		label := fmt.Sprintf("%d %s", i+1, f)
		if i == active {
			tabs = append(tabs, th.TabActive.Render(label))
		} else {
			tabs = append(tabs, th.TabIdle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// RowStyle is the style of a single task row: a left border in the
// priority colour, struck through once completed.
func RowStyle(th Theme, row TaskRowData) lipgloss.Style {
	s := th.Row.BorderForeground(PriorityColor(row.Priority))
	if row.Selected {
		s = s.Inherit(th.Selected)
	}
	return s
}

func RenderTaskRow(th Theme, row TaskRowData) string {
	check := "[ ]"
	if row.Completed {
		check = "[x]"
	}
	marker := " "
	switch {
	case row.Dragging:
		marker = "≡"
	case row.Selected:
		marker = ">"
	}

	title := row.Text
	if row.Completed {
		title = th.Done.Render(title)
	}
	parts := []string{marker, check, title}
	if row.DueDate != "" {
		parts = append(parts, th.Due.Render(fmt.Sprintf("(Due: %s)", row.DueDate)))
	}
	for _, label := range row.Labels {
		parts = append(parts, th.Chip.Render("#"+label))
	}
	if row.SubtasksTotal > 0 {
		parts = append(parts, th.Muted.Render(fmt.Sprintf("%d/%d", row.SubtasksDone, row.SubtasksTotal)))
	}
	return RowStyle(th, row).Render(strings.Join(parts, " "))
}

type EditorFieldData struct {
	Label   string
	View    string
	Focused bool
}

type SubtaskRowData struct {
	Text      string
	Completed bool
	Selected  bool
}

type EditorData struct {
	Fields      []EditorFieldData
	Priority    model.Priority
	Preview     string
	Subtasks    []SubtaskRowData
	SubtasksOn  bool
	Comments    []string
	Suggestions []string
}

func RenderEditor(th Theme, data EditorData) string {
	var b strings.Builder
	b.WriteString(th.Header.Render("Task Details") + "\n\n")
	for _, f := range data.Fields {
		label := th.FieldLabel.Render(f.Label)
		if f.Focused {
			label = th.FieldFocus.Render("› " + f.Label)
		}
		b.WriteString(label + "\n")
		switch f.Label {
		case "Priority":
			b.WriteString(renderPriorityPicker(th, data.Priority, f.View) + "\n")
		case "Subtasks":
			b.WriteString(renderSubtasks(th, data.Subtasks, data.SubtasksOn, f.View) + "\n")
		case "Comment":
			for _, c := range data.Comments {
				b.WriteString(th.Muted.Render("• "+c) + "\n")
			}
			b.WriteString(f.View + "\n")
		default:
			b.WriteString(f.View + "\n")
		}
		if f.Label == "Labels" && f.Focused && len(data.Suggestions) > 0 {
			b.WriteString(th.Muted.Render("suggestions: "+strings.Join(data.Suggestions, ", ")) + "\n")
		}
		if f.Label == "Details" && data.Preview != "" {
			b.WriteString(th.Muted.Render("preview:") + "\n" + data.Preview + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(th.Footer.Render("tab next field • ctrl+s save • esc cancel"))
	return th.Panel.Render(b.String())
}

func renderPriorityPicker(th Theme, current model.Priority, hint string) string {
	opts := make([]string, 0, len(model.Priorities))
	for _, p := range model.Priorities {
		s := lipgloss.NewStyle().Foreground(PriorityColor(p)).Padding(0, 1)
		if p == current {
			s = s.Bold(true).Underline(true)
		}
		opts = append(opts, s.Render(string(p)))
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, opts...)
	if !current.IsValid() && current != "" {
		out += " " + th.Error.Render(string(current))
	}
	if hint != "" {
		out += " " + th.Muted.Render(hint)
	}
	return out
}

func renderSubtasks(th Theme, rows []SubtaskRowData, focused bool, inputView string) string {
	if len(rows) == 0 {
		return th.Muted.Render("No subtasks added yet.")
	}
	lines := make([]string, 0, len(rows))
	for _, st := range rows {
		check := "[ ]"
		if st.Completed {
			check = "[x]"
		}
		text := st.Text
		if text == "" {
			text = th.Muted.Render("Subtask text")
		}
		if st.Selected && focused {
			lines = append(lines, fmt.Sprintf("> %s %s", check, inputView))
			continue
		}
		if st.Completed {
			text = th.Done.Render(text)
		}
		lines = append(lines, fmt.Sprintf("  %s %s", check, text))
	}
	return strings.Join(lines, "\n")
}

type HelpPanelData struct {
	Context  string
	Bindings []string
	HelpView string
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n\n%s",
		strings.ToLower(data.Context),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView
}

func RenderNotification(th Theme, level, title, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	line := fmt.Sprintf("[%s] %s: %s", strings.ToUpper(level), title, body)
	if level == "error" {
		return th.Error.Render(line)
	}
	return th.Muted.Render(line)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
