package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend keeps the document in a single file on local disk.
type FileBackend struct {
	path string
}

// NewFileBackend creates a FileBackend for the given path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the document path.
func (b *FileBackend) Path() string {
	return b.path
}

// Name returns "file".
func (b *FileBackend) Name() string {
	return "file"
}

// Init writes an empty document if the file does not exist.
func (b *FileBackend) Init(ctx context.Context) error {
	_, err := os.Stat(b.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", b.path, err)
	}

	if dir := filepath.Dir(b.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	return b.Write(ctx, emptyDocument)
}

// Read returns the file contents.
func (b *FileBackend) Read(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return data, nil
}

// Write replaces the file contents.
// Data goes to a temp file in the same directory first and is renamed over
// the target, so readers only ever see a complete document.
func (b *FileBackend) Write(ctx context.Context, data []byte) error {
	dir, base := filepath.Split(b.path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", b.path, err)
	}

	return nil
}

// Ping checks that the document file is reachable.
func (b *FileBackend) Ping(ctx context.Context) error {
	_, err := os.Stat(b.path)
	return err
}

// Close is a no-op.
func (b *FileBackend) Close() error {
	return nil
}
