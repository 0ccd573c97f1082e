package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"prayerlog/internal/journal"
)

// Namespace names one persisted JSON document.
type Namespace string

const (
	NamespaceSessions     Namespace = "prayer-sessions"
	NamespacePrayers      Namespace = "prayer-requests"
	NamespaceGuestPrayers Namespace = "guest-prayers"
)

// Namespaces lists every namespace in load order.
var Namespaces = []Namespace{NamespaceSessions, NamespacePrayers, NamespaceGuestPrayers}

const envelopeVersion = 1

// Data is the full persisted state.
type Data struct {
	Sessions     []journal.Session
	Prayers      []journal.Prayer
	GuestPrayers []journal.Prayer
}

type sessionsEnvelope struct {
	Version  int               `json:"version"`
	Sessions []journal.Session `json:"sessions"`
}

type prayersEnvelope struct {
	Version int              `json:"version"`
	Prayers []journal.Prayer `json:"prayers"`
}

// Backend selects a Storage implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
)

type Options struct {
	Backend     Backend
	DataDir     string
	RedisURL    string
	RedisPrefix string
}

// Manager serialises State data to and from a Storage.
type Manager struct {
	storage Storage
}

func NewManager(storage Storage) *Manager {
	return &Manager{storage: storage}
}

// Open builds the Storage named by opts and wraps it in a Manager.
func Open(ctx context.Context, opts Options) (*Manager, error) {
	var (
		storage Storage
		err     error
	)
	switch opts.Backend {
	case BackendFile, "":
		storage, err = NewFileStorage(opts.DataDir)
	case BackendSQLite:
		storage, err = NewSQLiteStorage(ctx, filepath.Join(opts.DataDir, "prayerlog.db"))
	case BackendRedis:
		storage, err = NewRedisStorage(ctx, opts.RedisURL, opts.RedisPrefix)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	log.Info("Storage opened", "backend", opts.Backend, "dir", opts.DataDir)
	return NewManager(storage), nil
}

// Load reads every namespace. A namespace that was never written loads as
// empty. Legacy bare-array documents are rewritten in the current envelope.
func (m *Manager) Load(ctx context.Context) (Data, error) {
	var data Data
	var legacy []Namespace
	for _, ns := range Namespaces {
		payload, err := m.storage.Read(ctx, string(ns))
		if errors.Is(err, ErrNoData) {
			continue
		}
		if err != nil {
			return Data{}, &StorageError{Op: "read", Namespace: string(ns), Err: err}
		}
		isLegacy, err := decode(ns, payload, &data)
		if err != nil {
			return Data{}, &StorageError{Op: "decode", Namespace: string(ns), Err: err}
		}
		if isLegacy {
			legacy = append(legacy, ns)
		}
	}
	if len(legacy) > 0 {
		if err := m.SaveAll(ctx, data); err != nil {
			log.Warn("Failed to upgrade legacy documents", "namespaces", legacy, "error", err)
		} else {
			log.Info("Upgraded legacy documents", "namespaces", legacy)
		}
	}
	log.Info("Loaded data",
		"sessions", len(data.Sessions),
		"prayers", len(data.Prayers),
		"guest_prayers", len(data.GuestPrayers))
	return data, nil
}

// Save writes a single namespace from data.
func (m *Manager) Save(ctx context.Context, ns Namespace, data Data) error {
	var doc any
	switch ns {
	case NamespaceSessions:
		doc = sessionsEnvelope{Version: envelopeVersion, Sessions: nonNil(data.Sessions)}
	case NamespacePrayers:
		doc = prayersEnvelope{Version: envelopeVersion, Prayers: nonNil(data.Prayers)}
	case NamespaceGuestPrayers:
		doc = prayersEnvelope{Version: envelopeVersion, Prayers: nonNil(data.GuestPrayers)}
	default:
		return &StorageError{Op: "write", Namespace: string(ns), Err: fmt.Errorf("unknown namespace")}
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return &StorageError{Op: "encode", Namespace: string(ns), Err: err}
	}
	if err := m.storage.Write(ctx, string(ns), payload); err != nil {
		return &StorageError{Op: "write", Namespace: string(ns), Err: err}
	}
	return nil
}

// SaveAll writes every namespace.
func (m *Manager) SaveAll(ctx context.Context, data Data) error {
	for _, ns := range Namespaces {
		if err := m.Save(ctx, ns, data); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) Close() error {
	return m.storage.Close()
}

// decode fills ns in data and reports whether payload was a legacy document.
func decode(ns Namespace, payload []byte, data *Data) (bool, error) {
	// Documents written before the envelope existed are bare arrays.
	if trimmed := bytes.TrimSpace(payload); len(trimmed) > 0 && trimmed[0] == '[' {
		switch ns {
		case NamespaceSessions:
			return true, json.Unmarshal(trimmed, &data.Sessions)
		case NamespacePrayers:
			return true, json.Unmarshal(trimmed, &data.Prayers)
		default:
			return true, json.Unmarshal(trimmed, &data.GuestPrayers)
		}
	}

	var version struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(payload, &version); err != nil {
		return false, err
	}
	if version.Version > envelopeVersion {
		return false, fmt.Errorf("unsupported version %d", version.Version)
	}

	switch ns {
	case NamespaceSessions:
		var env sessionsEnvelope
		if err := json.Unmarshal(payload, &env); err != nil {
			return false, err
		}
		data.Sessions = env.Sessions
	case NamespacePrayers, NamespaceGuestPrayers:
		var env prayersEnvelope
		if err := json.Unmarshal(payload, &env); err != nil {
			return false, err
		}
		if ns == NamespacePrayers {
			data.Prayers = env.Prayers
		} else {
			data.GuestPrayers = env.Prayers
		}
	}
	return false, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
