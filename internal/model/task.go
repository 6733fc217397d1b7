package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidFilter   = errors.New("model: invalid filter")
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists the priority levels in the order they are offered.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Next cycles Low -> Medium -> High -> Low. Unknown values restart at Low.
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

func (p Priority) Prev() Priority {
	switch p {
	case PriorityHigh:
		return PriorityMedium
	case PriorityMedium:
		return PriorityLow
	default:
		return PriorityHigh
	}
}

func ParsePriority(raw string) (Priority, error) {
	for _, p := range Priorities {
		if strings.EqualFold(strings.TrimSpace(raw), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
}

// SuggestedLabels is offered for completion in the label editor.
// Any other label text is accepted as well.
var SuggestedLabels = []string{"Work", "Personal", "Urgent", "Later", "Shopping", "Home"}

type Subtask struct {
	ID        string `json:"id" yaml:"id" toml:"id"`
	Text      string `json:"text" yaml:"text" toml:"text"`
	Completed bool   `json:"completed" yaml:"completed" toml:"completed"`
}

type Task struct {
	ID        string    `json:"id" yaml:"id" toml:"id"`
	Text      string    `json:"text" yaml:"text" toml:"text"`
	Completed bool      `json:"completed" yaml:"completed" toml:"completed"`
	DueDate   *Date     `json:"dueDate" yaml:"dueDate" toml:"dueDate,omitempty"`
	Details   string    `json:"details" yaml:"details" toml:"details"`
	Priority  Priority  `json:"priority" yaml:"priority" toml:"priority"`
	Labels    []string  `json:"labels" yaml:"labels" toml:"labels"`
	Subtasks  []Subtask `json:"subtasks" yaml:"subtasks" toml:"subtasks"`
	Comments  []string  `json:"comments" yaml:"comments" toml:"comments"`
}

// NewID returns a time-ordered unique identifier.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewTask builds a task with the default metadata. The caller is
// responsible for rejecting blank text.
func NewTask(id, text string) Task {
	return Task{
		ID:       id,
		Text:     strings.TrimSpace(text),
		Priority: PriorityMedium,
		Labels:   []string{},
		Subtasks: []Subtask{},
		Comments: []string{},
	}
}

func NewSubtask(id string) Subtask {
	return Subtask{ID: id}
}

// Clone returns a deep copy; edits to the copy never reach the original.
func (t Task) Clone() Task {
	out := t
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	out.Labels = append([]string{}, t.Labels...)
	out.Subtasks = append([]Subtask{}, t.Subtasks...)
	out.Comments = append([]string{}, t.Comments...)
	return out
}

// Normalize fills nil collections and a missing priority so that data
// written by older versions renders like freshly created tasks.
func (t Task) Normalize() Task {
	if t.Labels == nil {
		t.Labels = []string{}
	}
	if t.Subtasks == nil {
		t.Subtasks = []Subtask{}
	}
	if t.Comments == nil {
		t.Comments = []string{}
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	return t
}

// CompletedSubtasks counts finished subtasks.
func (t Task) CompletedSubtasks() int {
	n := 0
	for _, st := range t.Subtasks {
		if st.Completed {
			n++
		}
	}
	return n
}

// Validate checks the invariants that the store relies on. Free-text
// fields are deliberately not checked: an edited title may be empty.
func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	return nil
}

// NormalizeText trims and NFC-normalises user supplied text.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// ParseLabels splits a comma separated label list. Empty entries are
// dropped, duplicates are kept.
func ParseLabels(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		label := NormalizeText(part)
		if label == "" {
			continue
		}
		out = append(out, label)
	}
	return out
}

func FormatLabels(labels []string) string {
	return strings.Join(labels, ", ")
}

// DueAt returns the moment the task falls due in loc at the given hour,
// or false when the task has no parsable due date.
func (t Task) DueAt(loc *time.Location, hour int) (time.Time, bool) {
	if t.DueDate == nil {
		return time.Time{}, false
	}
	day, err := t.DueDate.Time(loc)
	if err != nil {
		return time.Time{}, false
	}
	return day.Add(time.Duration(hour) * time.Hour), true
}
