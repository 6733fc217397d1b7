package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// FileBackend keeps one file per key under a directory. Writes go through
// a temporary file and a rename; an advisory lock on <dir>/.lock keeps a
// second process from observing a half-written value.
type FileBackend struct {
	dir  string
	lock *flock.Flock
}

func OpenFile(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, errors.New("storage: empty data directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBackend{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, ".lock")),
	}, nil
}

// Path returns the file that holds key.
func (b *FileBackend) Path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

func (b *FileBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := b.acquire(ctx, false); err != nil {
		return nil, err
	}
	defer func() { _ = b.lock.Unlock() }()

	raw, err := os.ReadFile(b.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

func (b *FileBackend) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := b.acquire(ctx, true); err != nil {
		return err
	}
	defer func() { _ = b.lock.Unlock() }()

	path := b.Path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (b *FileBackend) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := b.acquire(ctx, true); err != nil {
		return err
	}
	defer func() { _ = b.lock.Unlock() }()

	if err := os.Remove(b.Path(key)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (b *FileBackend) Close() error {
	return b.lock.Close()
}

func (b *FileBackend) acquire(ctx context.Context, exclusive bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	if exclusive {
		err = b.lock.Lock()
	} else {
		err = b.lock.RLock()
	}
	if err != nil {
		return fmt.Errorf("lock data dir: %w", err)
	}
	return nil
}
