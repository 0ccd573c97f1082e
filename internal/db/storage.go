package db

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoData is returned by Storage.Read when a namespace was never written.
var ErrNoData = errors.New("db: no data")

// Storage is a key-value store holding one JSON document per namespace.
type Storage interface {
	Read(ctx context.Context, namespace string) ([]byte, error)
	Write(ctx context.Context, namespace string, payload []byte) error
	Close() error
}

// StorageError wraps any failure of the underlying storage.
type StorageError struct {
	Op        string
	Namespace string
	Err       error
}

func (e *StorageError) Error() string {
	if e.Namespace == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Namespace, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
