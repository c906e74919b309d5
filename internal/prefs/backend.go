package prefs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	domainerrors "github.com/justyntemme/inkreader/internal/errors"
)

// Backend kinds accepted by Open.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindBadger = "badger"
	KindMemory = "memory"
)

// Open creates the backend named by kind, rooted at dir.
func Open(kind, dir string) (Backend, error) {
	switch kind {
	case KindFile, "":
		return NewFileBackend(dir)
	case KindSQLite:
		return OpenSQLite(filepath.Join(dir, "settings.db"))
	case KindBadger:
		return OpenBadger(filepath.Join(dir, "settings.badger"))
	case KindMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, domainerrors.Validation(fmt.Sprintf("unknown settings store %q", kind))
	}
}

// Location describes where a backend of the given kind keeps its data.
func Location(kind, dir string) string {
	switch kind {
	case KindSQLite:
		return filepath.Join(dir, "settings.db")
	case KindBadger:
		return filepath.Join(dir, "settings.badger")
	case KindMemory:
		return "(memory)"
	default:
		return filepath.Join(dir, StorageKey+".json")
	}
}

// FileBackend stores each key as a JSON file in a directory.
type FileBackend struct {
	dir string
}

// NewFileBackend creates a file backend rooted at dir.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeStorage, "create settings directory")
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

// Get reads the file for key.
func (b *FileBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.path(key))
	if os.IsNotExist(err) {
		return nil, domainerrors.NotFoundf("settings key %q", key)
	}
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeStorage, "read settings")
	}
	return data, nil
}

// Put writes the file for key via a temp file and rename.
func (b *FileBackend) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(b.dir, key+".*.tmp")
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeStorage, "write settings")
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return domainerrors.Wrap(err, domainerrors.CodeStorage, "write settings")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return domainerrors.Wrap(err, domainerrors.CodeStorage, "write settings")
	}
	if err := os.Rename(tmp.Name(), b.path(key)); err != nil {
		os.Remove(tmp.Name())
		return domainerrors.Wrap(err, domainerrors.CodeStorage, "write settings")
	}
	return nil
}

// Delete removes the file for key.
func (b *FileBackend) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(b.path(key))
	if os.IsNotExist(err) {
		return domainerrors.NotFoundf("settings key %q", key)
	}
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeStorage, "delete settings")
	}
	return nil
}

// Close is a no-op.
func (b *FileBackend) Close() error { return nil }

// MemoryBackend keeps values in a map. PutErr, when set, is returned
// from every Put.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string][]byte
	puts   int
	PutErr error
	GetErr error
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: map[string][]byte{}}
}

// Get returns a copy of the stored value.
func (b *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.GetErr != nil {
		return nil, b.GetErr
	}
	v, ok := b.values[key]
	if !ok {
		return nil, domainerrors.NotFoundf("settings key %q", key)
	}
	return append([]byte(nil), v...), nil
}

// Put stores a copy of value.
func (b *MemoryBackend) Put(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.puts++
	if b.PutErr != nil {
		return b.PutErr
	}
	b.values[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key.
func (b *MemoryBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.values[key]; !ok {
		return domainerrors.NotFoundf("settings key %q", key)
	}
	delete(b.values, key)
	return nil
}

// Puts returns the number of Put calls, including failed ones.
func (b *MemoryBackend) Puts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.puts
}

// Close is a no-op.
func (b *MemoryBackend) Close() error { return nil }
