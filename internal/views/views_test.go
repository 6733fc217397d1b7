package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/todo/internal/model"
)

func TestRenderTaskListEmpty(t *testing.T) {
	out := RenderTaskList(LightTheme(), TaskListData{Filters: []string{"All", "Active", "Completed"}, ActiveFilter: 1})
	if !strings.Contains(out, EmptyListText) {
		t.Fatalf("expected empty text, got %q", out)
	}
	if !strings.Contains(out, "0 items left") {
		t.Fatalf("expected remaining counter, got %q", out)
	}
}

func TestRenderTaskRow(t *testing.T) {
	row := TaskRowData{
		Text:          "Ship release",
		Priority:      model.PriorityHigh,
		DueDate:       "May 1, 2026",
		Labels:        []string{"Work"},
		SubtasksDone:  1,
		SubtasksTotal: 2,
		Selected:      true,
	}
	out := RenderTaskRow(DarkTheme(), row)
	for _, want := range []string{"> [ ] Ship release", "(Due: May 1, 2026)", "#Work", "1/2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in row %q", want, out)
		}
	}

	row.Completed = true
	row.Selected = false
	if out := RenderTaskRow(DarkTheme(), row); !strings.Contains(out, "[x]") {
		t.Fatalf("expected completed checkbox, got %q", out)
	}
}

func TestRowStyleUsesPriorityBorder(t *testing.T) {
	th := LightTheme()
	cases := map[model.Priority]lipgloss.Color{
		model.PriorityHigh:   "#E53935",
		model.PriorityMedium: "#FB8C00",
		model.PriorityLow:    "#43A047",
		"Unknown":            "#FB8C00",
	}
	for p, want := range cases {
		got := RowStyle(th, TaskRowData{Priority: p}).GetBorderLeftForeground()
		if got != want {
			t.Fatalf("priority %q: expected border %v, got %v", p, want, got)
		}
	}
	if !th.Done.GetStrikethrough() || !DarkTheme().Done.GetStrikethrough() {
		t.Fatal("completed tasks must render struck through in both themes")
	}
}

func TestThemeFor(t *testing.T) {
	if !ThemeFor(true).Dark || ThemeFor(false).Dark {
		t.Fatal("unexpected theme selection")
	}
}

func TestWindow(t *testing.T) {
	cases := []struct {
		n, offset, height int
		start, end        int
	}{
		{5, 0, 0, 0, 5},
		{5, 0, 10, 0, 5},
		{10, 2, 3, 2, 5},
		{10, 9, 3, 7, 10},
		{10, -1, 3, 0, 3},
	}
	for _, tc := range cases {
		start, end := window(tc.n, tc.offset, tc.height)
		if start != tc.start || end != tc.end {
			t.Fatalf("window(%d,%d,%d) = %d,%d want %d,%d", tc.n, tc.offset, tc.height, start, end, tc.start, tc.end)
		}
	}
}

func TestRenderTaskListWindowed(t *testing.T) {
	rows := make([]TaskRowData, 0, 6)
	for _, text := range []string{"a1", "a2", "a3", "a4", "a5", "a6"} {
		rows = append(rows, TaskRowData{Text: text, Priority: model.PriorityLow})
	}
	out := RenderTaskList(LightTheme(), TaskListData{Rows: rows, Offset: 2, Height: 2, Remaining: 6})
	if strings.Contains(out, "a1") || !strings.Contains(out, "a3") || !strings.Contains(out, "a4") || strings.Contains(out, "a5") {
		t.Fatalf("unexpected window:\n%s", out)
	}
	if !strings.Contains(out, "↑ 2 more") || !strings.Contains(out, "↓ 2 more") {
		t.Fatalf("expected scroll hints:\n%s", out)
	}
}

func TestRenderEditor(t *testing.T) {
	out := RenderEditor(LightTheme(), EditorData{
		Fields: []EditorFieldData{
			{Label: "Task", View: "Write report", Focused: true},
			{Label: "Priority"},
			{Label: "Subtasks"},
			{Label: "Comment", View: "add a comment"},
		},
		Priority: model.PriorityHigh,
		Comments: []string{"first"},
	})
	for _, want := range []string{"Task Details", "› Task", "Write report", "High", "No subtasks added yet.", "• first"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in editor view:\n%s", want, out)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	if RenderMarkdown("   ", true, 40) != "" {
		t.Fatal("blank details should render nothing")
	}
	out := RenderMarkdown("# Plan\n\nship it", false, 40)
	if !strings.Contains(out, "Plan") || !strings.Contains(out, "ship") {
		t.Fatalf("unexpected markdown output: %q", out)
	}
}
