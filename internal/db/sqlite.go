package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(ctx context.Context, dbPath string) (*SQLiteStorage, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serialises writers; State already does.
	db.SetMaxOpenConns(1)

	s := &SQLiteStorage{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStorage) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
  namespace TEXT PRIMARY KEY,
  payload BLOB NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Read(ctx context.Context, namespace string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM kv WHERE namespace = ?`, namespace).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *SQLiteStorage) Write(ctx context.Context, namespace string, payload []byte) error {
	const stmt = `
INSERT INTO kv (namespace, payload, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(namespace) DO UPDATE SET
  payload=excluded.payload,
  updated_at=excluded.updated_at;
`
	_, err := s.db.ExecContext(ctx, stmt, namespace, payload, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
