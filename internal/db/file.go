package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStorage keeps each namespace in <dir>/<namespace>.json.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) path(namespace string) string {
	return filepath.Join(f.dir, namespace+".json")
}

func (f *FileStorage) Read(_ context.Context, namespace string) ([]byte, error) {
	data, err := os.ReadFile(f.path(namespace))
	if os.IsNotExist(err) {
		return nil, ErrNoData
	}
	return data, err
}

// Write replaces the namespace file atomically via a temp file and rename.
func (f *FileStorage) Write(_ context.Context, namespace string, payload []byte) error {
	tmp, err := os.CreateTemp(f.dir, namespace+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path(namespace))
}

func (f *FileStorage) Close() error {
	return nil
}
