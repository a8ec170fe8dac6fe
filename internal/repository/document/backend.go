package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotExist is returned by a Backend when no document has been saved yet.
var ErrNotExist = errors.New("document does not exist")

// Backend loads and saves the raw listing document.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// FileBackend keeps the document in a single file on local disk.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend for the document at path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

var _ Backend = (*FileBackend)(nil)

// Init creates the parent directory and seeds an empty array when the file is absent.
func (b *FileBackend) Init() error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if _, err := os.Stat(b.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat data file: %w", err)
	}
	return b.Save(context.Background(), []byte("[]\n"))
}

// Load reads the whole file.
func (b *FileBackend) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotExist
	}
	return data, err
}

// Save writes to a temp file next to the document and renames it into place,
// so readers see either the old or the new document, never a torn one.
func (b *FileBackend) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, b.path)
}

// MemoryBackend keeps the document in memory.
type MemoryBackend struct {
	mu      sync.Mutex
	data    []byte
	saveErr error
}

// NewMemoryBackend returns a backend seeded with data; nil means no document yet.
func NewMemoryBackend(data []byte) *MemoryBackend {
	return &MemoryBackend{data: data}
}

var _ Backend = (*MemoryBackend)(nil)

// FailSaves makes every subsequent Save return err (nil restores normal behavior).
func (b *MemoryBackend) FailSaves(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saveErr = err
}

// Bytes returns a copy of the current document.
func (b *MemoryBackend) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.data...)
}

func (b *MemoryBackend) Load(_ context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return nil, ErrNotExist
	}
	return append([]byte(nil), b.data...), nil
}

func (b *MemoryBackend) Save(_ context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saveErr != nil {
		return b.saveErr
	}
	b.data = append([]byte(nil), data...)
	return nil
}
