package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"prayerlog/internal/journal"
)

func sampleData() Data {
	created := time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC)
	answered := created.Add(48 * time.Hour)
	return Data{
		Sessions: []journal.Session{
			{ID: "s1", Date: "2025-03-01", Duration: 300, Notes: journal.Notes{Adoration: "Praise"}, Timestamp: created.UnixMilli()},
			{ID: "s2", Date: "2025-03-02", Duration: 120, Timestamp: created.Add(24 * time.Hour).UnixMilli()},
		},
		Prayers: []journal.Prayer{
			{ID: "p1", Title: "Family", Category: journal.CategoryFamily, DateCreated: created},
			{ID: "p2", Title: "Work", Category: journal.CategoryWork, DateCreated: created, IsAnswered: true, AnsweredDate: &answered},
		},
		GuestPrayers: []journal.Prayer{
			{ID: "g1", Title: "Guest", Category: journal.CategoryPersonal, DateCreated: created},
		},
	}
}

func assertSameData(t *testing.T, got, want Data) {
	t.Helper()
	if len(got.Sessions) != len(want.Sessions) || len(got.Prayers) != len(want.Prayers) || len(got.GuestPrayers) != len(want.GuestPrayers) {
		t.Fatalf("unexpected lengths: got %d/%d/%d", len(got.Sessions), len(got.Prayers), len(got.GuestPrayers))
	}
	for i := range want.Sessions {
		if got.Sessions[i] != want.Sessions[i] {
			t.Fatalf("session %d: got %+v, want %+v", i, got.Sessions[i], want.Sessions[i])
		}
	}
	for i := range want.Prayers {
		g, w := got.Prayers[i], want.Prayers[i]
		if g.ID != w.ID || g.Title != w.Title || g.Category != w.Category || !g.DateCreated.Equal(w.DateCreated) || g.IsAnswered != w.IsAnswered {
			t.Fatalf("prayer %d: got %+v, want %+v", i, g, w)
		}
		if (g.AnsweredDate == nil) != (w.AnsweredDate == nil) {
			t.Fatalf("prayer %d: answeredDate presence differs", i)
		}
		if w.AnsweredDate != nil && !g.AnsweredDate.Equal(*w.AnsweredDate) {
			t.Fatalf("prayer %d: answeredDate %s, want %s", i, g.AnsweredDate, w.AnsweredDate)
		}
	}
	if got.GuestPrayers[0].ID != want.GuestPrayers[0].ID {
		t.Fatalf("guest prayer mismatch: %+v", got.GuestPrayers)
	}
}

func TestManager_RoundTrip(t *testing.T) {
	ctx := context.Background()
	backends := []Backend{BackendFile, BackendSQLite}
	for _, backend := range backends {
		t.Run(string(backend), func(t *testing.T) {
			dir := t.TempDir()
			m, err := Open(ctx, Options{Backend: backend, DataDir: dir})
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer m.Close()

			empty, err := m.Load(ctx)
			if err != nil {
				t.Fatalf("Load on empty storage: %v", err)
			}
			if len(empty.Sessions)+len(empty.Prayers)+len(empty.GuestPrayers) != 0 {
				t.Fatalf("expected empty data, got %+v", empty)
			}

			want := sampleData()
			if err := m.SaveAll(ctx, want); err != nil {
				t.Fatalf("SaveAll: %v", err)
			}
			// Overwrite one namespace to exercise the upsert path.
			want.Sessions = append(want.Sessions, journal.Session{ID: "s3", Date: "2025-03-03", Duration: 60})
			if err := m.Save(ctx, NamespaceSessions, want); err != nil {
				t.Fatalf("Save: %v", err)
			}

			got, err := m.Load(ctx)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			assertSameData(t, got, want)
		})
	}
}

func TestFileStorage_WritesVersionedEnvelope(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	storage, err := NewFileStorage(dir)
	if err != nil {
		t.Fatalf("NewFileStorage: %v", err)
	}
	m := NewManager(storage)
	if err := m.Save(ctx, NamespaceSessions, Data{}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "prayer-sessions.json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(raw) != `{"version":1,"sessions":[]}` {
		t.Fatalf("unexpected document: %s", raw)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestManager_LoadLegacyArray(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	legacy := `[{"id":"p1","title":"Old","description":"","category":"Outros","dateCreated":"2024-12-01T10:00:00Z","isAnswered":false}]`
	if err := os.WriteFile(filepath.Join(dir, "prayer-requests.json"), []byte(legacy), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	storage, _ := NewFileStorage(dir)
	data, err := NewManager(storage).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.Prayers) != 1 || data.Prayers[0].Category != journal.CategoryOther {
		t.Fatalf("unexpected prayers: %+v", data.Prayers)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "prayer-requests.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(raw), `{"version":1,"prayers":[{"id":"p1"`) {
		t.Fatalf("legacy document was not upgraded: %s", raw)
	}
	again, err := NewManager(storage).Load(ctx)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if len(again.Prayers) != 1 || again.Prayers[0].ID != "p1" {
		t.Fatalf("upgraded document lost data: %+v", again.Prayers)
	}
}

func newRedisStorage(t *testing.T, prefix string) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	storage := NewRedisStorageFromClient(client, prefix)
	t.Cleanup(func() { storage.Close() })
	return storage, mr
}

func TestRedisStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	storage, mr := newRedisStorage(t, "test")
	m := NewManager(storage)

	want := sampleData()
	if err := m.SaveAll(ctx, want); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	got, err := m.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameData(t, got, want)

	raw, err := mr.Get("test:prayer-sessions")
	if err != nil {
		t.Fatalf("expected key test:prayer-sessions: %v", err)
	}
	if !strings.HasPrefix(raw, `{"version":1,"sessions":[`) {
		t.Fatalf("unexpected stored value: %s", raw)
	}
}

func TestRedisStorage_MissingKey(t *testing.T) {
	ctx := context.Background()
	storage, _ := newRedisStorage(t, "")

	if _, err := storage.Read(ctx, string(NamespacePrayers)); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	data, err := NewManager(storage).Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.Sessions)+len(data.Prayers)+len(data.GuestPrayers) != 0 {
		t.Fatalf("expected empty data, got %+v", data)
	}
}

func TestOpen_Redis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	m, err := Open(ctx, Options{Backend: BackendRedis, RedisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer m.Close()

	if err := m.Save(ctx, NamespaceGuestPrayers, sampleData()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !mr.Exists(DefaultRedisPrefix + ":guest-prayers") {
		t.Fatalf("expected key under default prefix, have %v", mr.Keys())
	}
}

func TestManager_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("corrupt document", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "prayer-sessions.json"), []byte("{not json"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		storage, _ := NewFileStorage(dir)
		_, err := NewManager(storage).Load(ctx)
		var sErr *StorageError
		if !errors.As(err, &sErr) || sErr.Op != "decode" || sErr.Namespace != "prayer-sessions" {
			t.Fatalf("expected decode StorageError, got %v", err)
		}
	})

	t.Run("newer version", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "prayer-requests.json"), []byte(`{"version":2,"prayers":[]}`), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		storage, _ := NewFileStorage(dir)
		_, err := NewManager(storage).Load(ctx)
		var sErr *StorageError
		if !errors.As(err, &sErr) {
			t.Fatalf("expected StorageError, got %v", err)
		}
	})

	t.Run("write failure", func(t *testing.T) {
		m := NewManager(failingStorage{err: errors.New("disk full")})
		err := m.Save(ctx, NamespacePrayers, sampleData())
		var sErr *StorageError
		if !errors.As(err, &sErr) || sErr.Op != "write" {
			t.Fatalf("expected write StorageError, got %v", err)
		}
		if !strings.Contains(err.Error(), "disk full") {
			t.Fatalf("cause lost: %v", err)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		if _, err := Open(ctx, Options{Backend: "etcd"}); err == nil {
			t.Fatalf("expected error for unknown backend")
		}
	})
}

type failingStorage struct {
	err error
}

func (f failingStorage) Read(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingStorage) Write(context.Context, string, []byte) error  { return f.err }
func (f failingStorage) Close() error                                 { return nil }
