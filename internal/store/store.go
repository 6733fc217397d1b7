package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sandeepkv93/todo/internal/model"
)

var (
	ErrEmptyText       = errors.New("store: task text is empty")
	ErrNotFound        = errors.New("store: task not found")
	ErrIndexOutOfRange = errors.New("store: index out of range")
)

// Store is the ordered task list of one session. Every mutation writes the
// full list through the Persister and takes effect only once the write
// succeeds; a failed write leaves the list as it was.
// A Store is not safe for concurrent use.
type Store struct {
	tasks   []model.Task
	persist Persister
	newID   func() string
	logger  *slog.Logger
}

type Option func(*Store)

// WithIDGenerator replaces the UUIDv7 generator, mostly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open loads the persisted list. Missing or malformed data starts an empty
// store; only backend failures are returned.
func Open(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	if p == nil {
		return nil, errors.New("store: nil persister")
	}
	s := &Store{
		persist: p,
		newID:   model.NewID,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	tasks, err := p.Load(ctx)
	switch {
	case errors.Is(err, ErrMalformed):
		s.logger.Warn("persisted tasks unreadable, starting empty", "err", err)
		tasks = []model.Task{}
	case err != nil:
		return nil, fmt.Errorf("store: load: %w", err)
	}
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			tasks[i] = s.repair(t)
			s.logger.Warn("persisted task repaired", "err", err, "id", tasks[i].ID)
		}
	}
	s.tasks = tasks
	s.logger.Debug("store opened", "tasks", len(tasks))
	return s, nil
}

func (s *Store) Len() int {
	return len(s.tasks)
}

// Tasks returns a detached copy of the list in store order.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.Clone())
	}
	return out
}

// Filter returns a detached copy of the tasks visible under f.
func (s *Store) Filter(f model.Filter) []model.Task {
	return model.Apply(s.Tasks(), f)
}

func (s *Store) Get(id string) (model.Task, bool) {
	i := s.Index(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Index returns the store position of id, or -1.
func (s *Store) Index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Add appends a task with default metadata. Blank text is rejected with
// ErrEmptyText and leaves the store untouched.
func (s *Store) Add(ctx context.Context, text string) (model.Task, error) {
	if strings.TrimSpace(text) == "" {
		return model.Task{}, ErrEmptyText
	}
	id := s.newID()
	for s.Index(id) >= 0 {
		id = s.newID()
	}
	task := model.NewTask(id, model.NormalizeText(text))
	if err := s.commit(ctx, append(s.draft(), task)); err != nil {
		return model.Task{}, err
	}
	return task.Clone(), nil
}

func (s *Store) Remove(ctx context.Context, id string) error {
	i := s.Index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := s.draft()
	return s.commit(ctx, append(next[:i], next[i+1:]...))
}

func (s *Store) ToggleCompleted(ctx context.Context, id string) error {
	i := s.Index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := s.draft()
	next[i].Completed = !next[i].Completed
	return s.commit(ctx, next)
}

// Reorder removes the task at from and reinserts it at to, shifting the
// tasks in between.
func (s *Store) Reorder(ctx context.Context, from, to int) error {
	if from < 0 || from >= len(s.tasks) || to < 0 || to >= len(s.tasks) {
		return fmt.Errorf("%w: move %d to %d in %d tasks", ErrIndexOutOfRange, from, to, len(s.tasks))
	}
	if from == to {
		return nil
	}
	next := s.draft()
	moved := next[from]
	next = append(next[:from], next[from+1:]...)
	next = append(next[:to], append([]model.Task{moved}, next[to:]...)...)
	return s.commit(ctx, next)
}

// Replace overwrites the task with the same id. Tasks with an unknown
// priority are rejected.
func (s *Store) Replace(ctx context.Context, task model.Task) error {
	i := s.Index(task.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, task.ID)
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("store: replace: %w", err)
	}
	next := s.draft()
	next[i] = task.Clone()
	return s.commit(ctx, next)
}

// repair gives a loaded record the id and priority every task must have.
func (s *Store) repair(t model.Task) model.Task {
	if strings.TrimSpace(t.ID) == "" {
		t.ID = s.newID()
	}
	if !t.Priority.IsValid() {
		t.Priority = model.PriorityMedium
	}
	return t
}

// draft copies the list header so a mutation can be built without touching
// s.tasks. Elements are replaced, never modified in place.
func (s *Store) draft() []model.Task {
	return append(make([]model.Task, 0, len(s.tasks)+1), s.tasks...)
}

// commit persists next and adopts it only when the write succeeds.
func (s *Store) commit(ctx context.Context, next []model.Task) error {
	if err := s.persist.Save(ctx, next); err != nil {
		s.logger.Error("persist tasks", "err", err, "tasks", len(next))
		return fmt.Errorf("store: persist: %w", err)
	}
	s.tasks = next
	return nil
}
