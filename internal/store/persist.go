package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/storage"
)

// DefaultKey is the storage key that holds the task list.
const DefaultKey = "tasks"

var ErrMalformed = errors.New("store: malformed persisted data")

// Persister reads and writes the whole task list.
type Persister interface {
	Load(ctx context.Context) ([]model.Task, error)
	Save(ctx context.Context, tasks []model.Task) error
}

// KeyPersister stores the list as one JSON array under a single key of a
// storage backend. A missing key loads as an empty list.
type KeyPersister struct {
	Backend storage.Backend
	Key     string
}

func NewKeyPersister(backend storage.Backend, key string) KeyPersister {
	if key == "" {
		key = DefaultKey
	}
	return KeyPersister{Backend: backend, Key: key}
}

func (p KeyPersister) Load(ctx context.Context) ([]model.Task, error) {
	raw, err := p.Backend.Get(ctx, p.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []model.Task{}, nil
		}
		return nil, err
	}
	return Decode(raw)
}

func (p KeyPersister) Save(ctx context.Context, tasks []model.Task) error {
	raw, err := Encode(tasks)
	if err != nil {
		return err
	}
	return p.Backend.Put(ctx, p.Key, raw)
}

// FuncPersister adapts plain read/write functions. A nil Read loads an
// empty list and a nil Write discards.
type FuncPersister struct {
	Read  func(ctx context.Context) ([]byte, error)
	Write func(ctx context.Context, data []byte) error
}

func (p FuncPersister) Load(ctx context.Context) ([]model.Task, error) {
	if p.Read == nil {
		return []model.Task{}, nil
	}
	raw, err := p.Read(ctx)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

func (p FuncPersister) Save(ctx context.Context, tasks []model.Task) error {
	if p.Write == nil {
		return nil
	}
	raw, err := Encode(tasks)
	if err != nil {
		return err
	}
	return p.Write(ctx, raw)
}

// Encode renders tasks in the persisted layout: a JSON array of task
// records, never null.
func Encode(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return json.Marshal(tasks)
}

// Decode parses the persisted layout. Empty input and a JSON null both
// decode to an empty list.
func Decode(raw []byte) ([]model.Task, error) {
	if len(raw) == 0 {
		return []model.Task{}, nil
	}
	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Normalize())
	}
	return out, nil
}
