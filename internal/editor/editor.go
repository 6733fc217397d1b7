// Package editor holds the details editor: a detached copy of one task that
// is edited freely and committed back to the store only on Save.
package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/store"
)

var (
	ErrClosed       = errors.New("editor: closed")
	ErrAlreadyOpen  = errors.New("editor: already open")
	ErrUnknownField = errors.New("editor: unknown field")
	ErrFieldType    = errors.New("editor: wrong value type for field")
	ErrSubtaskIndex = errors.New("editor: subtask index out of range")
)

type Field string

const (
	FieldText     Field = "text"
	FieldDueDate  Field = "dueDate"
	FieldDetails  Field = "details"
	FieldPriority Field = "priority"
	FieldLabels   Field = "labels"
	FieldSubtasks Field = "subtasks"
	FieldComments Field = "comments"
)

type SubtaskField string

const (
	SubtaskText      SubtaskField = "text"
	SubtaskCompleted SubtaskField = "completed"
)

// Replacer commits an edited task by id.
type Replacer interface {
	Replace(ctx context.Context, task model.Task) error
}

type Editor struct {
	buffer *model.Task
	newID  func() string
}

func New() *Editor {
	return &Editor{newID: model.NewID}
}

// NewWithIDs uses gen for subtask ids.
func NewWithIDs(gen func() string) *Editor {
	e := New()
	if gen != nil {
		e.newID = gen
	}
	return e
}

func (e *Editor) IsOpen() bool {
	return e.buffer != nil
}

// Buffer returns a copy of the task being edited.
func (e *Editor) Buffer() (model.Task, bool) {
	if e.buffer == nil {
		return model.Task{}, false
	}
	return e.buffer.Clone(), true
}

// Open starts editing a detached copy of task.
func (e *Editor) Open(task model.Task) error {
	if e.buffer != nil {
		return ErrAlreadyOpen
	}
	buf := task.Clone().Normalize()
	e.buffer = &buf
	return nil
}

// Edit sets one field of the buffer. Values are not validated beyond their
// Go type: text may become empty and due dates need not parse.
func (e *Editor) Edit(field Field, value any) error {
	if e.buffer == nil {
		return ErrClosed
	}
	b := e.buffer
	switch field {
	case FieldText:
		v, ok := value.(string)
		if !ok {
			return typeErr(field, value)
		}
		b.Text = v
	case FieldDueDate:
		switch v := value.(type) {
		case nil:
			b.DueDate = nil
		case string:
			b.DueDate = model.DatePtr(v)
		case model.Date:
			b.DueDate = model.DatePtr(string(v))
		case *model.Date:
			if v == nil {
				b.DueDate = nil
			} else {
				d := *v
				b.DueDate = &d
			}
		default:
			return typeErr(field, value)
		}
	case FieldDetails:
		v, ok := value.(string)
		if !ok {
			return typeErr(field, value)
		}
		b.Details = v
	case FieldPriority:
		switch v := value.(type) {
		case model.Priority:
			b.Priority = v
		case string:
			b.Priority = model.Priority(v)
		default:
			return typeErr(field, value)
		}
	case FieldLabels:
		v, ok := value.([]string)
		if !ok {
			return typeErr(field, value)
		}
		b.Labels = append([]string{}, v...)
	case FieldSubtasks:
		v, ok := value.([]model.Subtask)
		if !ok {
			return typeErr(field, value)
		}
		b.Subtasks = append([]model.Subtask{}, v...)
	case FieldComments:
		v, ok := value.([]string)
		if !ok {
			return typeErr(field, value)
		}
		b.Comments = append([]string{}, v...)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// AddSubtask appends an empty subtask and returns its index.
func (e *Editor) AddSubtask() (int, error) {
	if e.buffer == nil {
		return -1, ErrClosed
	}
	e.buffer.Subtasks = append(e.buffer.Subtasks, model.NewSubtask(e.newID()))
	return len(e.buffer.Subtasks) - 1, nil
}

func (e *Editor) UpdateSubtask(index int, field SubtaskField, value any) error {
	if err := e.checkSubtask(index); err != nil {
		return err
	}
	st := &e.buffer.Subtasks[index]
	switch field {
	case SubtaskText:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: subtask %s got %T", ErrFieldType, field, value)
		}
		st.Text = v
	case SubtaskCompleted:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: subtask %s got %T", ErrFieldType, field, value)
		}
		st.Completed = v
	default:
		return fmt.Errorf("%w: subtask %q", ErrUnknownField, field)
	}
	return nil
}

func (e *Editor) DeleteSubtask(index int) error {
	if err := e.checkSubtask(index); err != nil {
		return err
	}
	s := e.buffer.Subtasks
	e.buffer.Subtasks = append(s[:index:index], s[index+1:]...)
	return nil
}

// AddComment appends the trimmed text. Blank comments are ignored and
// report false.
func (e *Editor) AddComment(text string) (bool, error) {
	if e.buffer == nil {
		return false, ErrClosed
	}
	text = model.NormalizeText(text)
	if text == "" {
		return false, nil
	}
	e.buffer.Comments = append(e.buffer.Comments, text)
	return true, nil
}

// Save commits the buffer through r and closes the editor. If the task
// no longer exists the editor closes as well. Any other failure leaves the
// store untouched and the editor open, so the save can be retried or
// cancelled.
func (e *Editor) Save(ctx context.Context, r Replacer) (model.Task, error) {
	if e.buffer == nil {
		return model.Task{}, ErrClosed
	}
	task := e.buffer.Clone()
	if err := r.Replace(ctx, task); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			e.buffer = nil
		}
		return model.Task{}, err
	}
	e.buffer = nil
	return task, nil
}

// Cancel discards the buffer.
func (e *Editor) Cancel() {
	e.buffer = nil
}

func (e *Editor) checkSubtask(index int) error {
	if e.buffer == nil {
		return ErrClosed
	}
	if index < 0 || index >= len(e.buffer.Subtasks) {
		return fmt.Errorf("%w: %d of %d", ErrSubtaskIndex, index, len(e.buffer.Subtasks))
	}
	return nil
}

func typeErr(field Field, value any) error {
	return fmt.Errorf("%w: %s got %T", ErrFieldType, field, value)
}
