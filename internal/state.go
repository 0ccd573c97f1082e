package prayerlog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"prayerlog/internal/config"
	"prayerlog/internal/db"
	"prayerlog/internal/journal"
	"prayerlog/internal/stats"
)

// MaxDailyDays bounds the trailing-days chart.
const MaxDailyDays = 366

// Persister saves one namespace of the current data.
type Persister interface {
	Save(ctx context.Context, ns db.Namespace, data db.Data) error
}

// State owns the prayer stores, the stats snapshot derived from them and
// the connected websocket clients. All store access goes through its mutex.
type State struct {
	mu        sync.Mutex
	sessions  *journal.SessionStore
	prayers   *journal.PrayerStore
	guest     *journal.PrayerStore
	engine    *stats.Engine
	persister Persister
	now       func() time.Time

	snapshot    stats.PrayerStats
	snapshotDay string

	hooks []Hook

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]bool
}

// NewState builds an empty State. A nil persister keeps everything in memory.
func NewState(persister Persister, now func() time.Time, newID func() string) *State {
	if now == nil {
		now = time.Now
	}
	s := &State{
		sessions:  journal.NewSessionStore(newID, now),
		prayers:   journal.NewPrayerStore(newID, now),
		guest:     journal.NewPrayerStore(newID, now),
		persister: persister,
		now:       now,
		clients:   make(map[*websocket.Conn]bool),
	}
	s.engine = stats.New(s.sessions, s.prayers, now)
	s.recompute()
	return s
}

// Open loads persisted data through the configured storage and returns a
// ready State together with the manager backing it.
func Open(ctx context.Context, cfg config.Config) (*State, *db.Manager, error) {
	manager, err := db.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, nil, err
	}
	data, err := manager.Load(ctx)
	if err != nil {
		manager.Close()
		return nil, nil, err
	}
	state := NewState(manager, cfg.Now, nil)
	state.Restore(data)
	return state, manager, nil
}

// Restore replaces every store with data, typically loaded at startup.
func (s *State) Restore(data db.Data) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Replace(data.Sessions)
	s.prayers.Replace(data.Prayers)
	s.guest.Replace(data.GuestPrayers)
	s.recompute()
}

func (s *State) AddHook(h Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, h)
}

// recompute refreshes the snapshot; callers hold s.mu.
func (s *State) recompute() {
	s.snapshot = s.engine.Compute()
	s.snapshotDay = journal.FormatDate(s.now())
}

func (s *State) data() db.Data {
	return db.Data{
		Sessions:     s.sessions.All(),
		Prayers:      s.prayers.All(),
		GuestPrayers: s.guest.All(),
	}
}

// mutate runs op under the lock, refreshes the snapshot and saves the
// touched namespaces before releasing it. Hooks run after unlock and only
// for committed changes. A save failure is returned after the change is
// already visible in memory.
func (s *State) mutate(ctx context.Context, namespaces []db.Namespace, op func() (Event, error)) (Event, error) {
	s.mu.Lock()
	event, err := op()
	if err != nil {
		s.mu.Unlock()
		return event, err
	}
	s.recompute()

	var saveErr error
	if s.persister != nil {
		data := s.data()
		for _, ns := range namespaces {
			if err := s.persister.Save(ctx, ns, data); err != nil {
				saveErr = errors.Join(saveErr, err)
			}
		}
	}
	hooks := make([]Hook, len(s.hooks))
	copy(hooks, s.hooks)
	s.mu.Unlock()

	if saveErr != nil {
		log.Error("Failed to persist change", "event", event.Kind, "error_kind", ErrorKind(saveErr), "error", saveErr)
	}
	for _, h := range hooks {
		h(s, event)
	}
	return event, saveErr
}

// AddSession logs a completed prayer session. An empty date means today.
func (s *State) AddSession(ctx context.Context, duration int, notes journal.Notes, date string) (journal.Session, error) {
	var session journal.Session
	_, err := s.mutate(ctx, []db.Namespace{db.NamespaceSessions}, func() (Event, error) {
		var err error
		session, err = s.sessions.Add(duration, notes, date)
		if err != nil {
			return Event{}, err
		}
		log.Info("Session logged", "id", session.ID, "date", session.Date, "duration", session.Duration)
		return Event{Kind: EventSessionAdded, Session: &session}, nil
	})
	return session, err
}

func (s *State) SessionsOnDate(date string) ([]journal.Session, error) {
	if _, err := journal.ParseDate(date, time.UTC); err != nil {
		return nil, &journal.ValidationError{FieldErrors: map[string]string{"date": "date must be YYYY-MM-DD"}}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.OnDate(date), nil
}

func (s *State) SessionsInMonth(year int, month time.Month) ([]journal.Session, error) {
	if err := validateMonth(year, month); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.InMonth(year, month), nil
}

func (s *State) DistinctDates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.DistinctDates()
}

func (s *State) CreatePrayer(ctx context.Context, title, description string, category journal.Category) (journal.Prayer, error) {
	var prayer journal.Prayer
	_, err := s.mutate(ctx, []db.Namespace{db.NamespacePrayers}, func() (Event, error) {
		var err error
		prayer, err = s.prayers.Create(title, description, category)
		if err != nil {
			return Event{}, err
		}
		log.Info("Prayer created", "id", prayer.ID, "category", prayer.Category)
		return Event{Kind: EventPrayerCreated, Prayer: &prayer}, nil
	})
	return prayer, err
}

func (s *State) MarkAnswered(ctx context.Context, id string) (journal.Prayer, error) {
	var prayer journal.Prayer
	_, err := s.mutate(ctx, []db.Namespace{db.NamespacePrayers}, func() (Event, error) {
		var err error
		prayer, err = s.prayers.MarkAnswered(id)
		if err != nil {
			return Event{}, err
		}
		log.Info("Prayer answered", "id", prayer.ID)
		return Event{Kind: EventPrayerAnswered, Prayer: &prayer}, nil
	})
	return prayer, err
}

func (s *State) DeletePrayer(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, []db.Namespace{db.NamespacePrayers}, func() (Event, error) {
		if err := s.prayers.Delete(id); err != nil {
			return Event{}, err
		}
		log.Info("Prayer deleted", "id", id)
		return Event{Kind: EventPrayerDeleted, PrayerID: id}, nil
	})
	return err
}

func (s *State) Prayer(id string) (journal.Prayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prayers.Get(id)
}

func (s *State) Prayers(filter journal.Filter) []journal.Prayer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prayers.Filter(filter)
}

// Stats returns the current snapshot, recomputing it first when the local
// day has changed since it was taken.
func (s *State) Stats() stats.PrayerStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current()
}

// current returns the snapshot for today; callers hold s.mu.
func (s *State) current() stats.PrayerStats {
	if journal.FormatDate(s.now()) != s.snapshotDay {
		s.recompute()
	}
	return s.snapshot
}

func (s *State) Month(year int, month time.Month) (stats.MonthSummary, error) {
	if err := validateMonth(year, month); err != nil {
		return stats.MonthSummary{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Month(year, month), nil
}

func (s *State) Daily(days int) ([]stats.DayTotal, error) {
	if days < 1 || days > MaxDailyDays {
		return nil, &journal.ValidationError{FieldErrors: map[string]string{
			"days": fmt.Sprintf("days must be between 1 and %d", MaxDailyDays),
		}}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Daily(days), nil
}

// CreateGuestPrayer records a prayer made before the user signed in.
func (s *State) CreateGuestPrayer(ctx context.Context, title, description string, category journal.Category) (journal.Prayer, error) {
	var prayer journal.Prayer
	_, err := s.mutate(ctx, []db.Namespace{db.NamespaceGuestPrayers}, func() (Event, error) {
		var err error
		prayer, err = s.guest.Create(title, description, category)
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: EventGuestPrayerCreated, Prayer: &prayer}, nil
	})
	return prayer, err
}

func (s *State) GuestPrayers() []journal.Prayer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guest.All()
}

// DrainGuestPrayers hands the guest prayers to the caller and clears them.
func (s *State) DrainGuestPrayers(ctx context.Context) ([]journal.Prayer, error) {
	var drained []journal.Prayer
	_, err := s.mutate(ctx, []db.Namespace{db.NamespaceGuestPrayers}, func() (Event, error) {
		drained = s.guest.Drain()
		log.Info("Guest prayers drained", "count", len(drained))
		return Event{Kind: EventGuestDrained, Count: len(drained)}, nil
	})
	return drained, err
}

// MergeGuestPrayers moves every guest prayer into the user's prayers. On a
// validation failure the guest prayers stay where they were.
func (s *State) MergeGuestPrayers(ctx context.Context) (int, error) {
	var merged int
	_, err := s.mutate(ctx, []db.Namespace{db.NamespacePrayers, db.NamespaceGuestPrayers}, func() (Event, error) {
		drained := s.guest.Drain()
		n, err := s.prayers.Import(drained)
		if err != nil {
			s.guest.Replace(drained)
			return Event{}, err
		}
		merged = n
		log.Info("Guest prayers merged", "drained", len(drained), "imported", n)
		return Event{Kind: EventGuestMerged, Count: n}, nil
	})
	return merged, err
}

// Export is a full copy of the journal with the current stats.
type Export struct {
	ExportedAt   time.Time         `json:"exportedAt" yaml:"exportedAt"`
	Stats        stats.PrayerStats `json:"stats" yaml:"stats"`
	Sessions     []journal.Session `json:"sessions" yaml:"sessions"`
	Prayers      []journal.Prayer  `json:"prayers" yaml:"prayers"`
	GuestPrayers []journal.Prayer  `json:"guestPrayers" yaml:"guestPrayers"`
}

func (s *State) Export() Export {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.data()
	return Export{
		ExportedAt:   s.now(),
		Stats:        s.current(),
		Sessions:     data.Sessions,
		Prayers:      data.Prayers,
		GuestPrayers: data.GuestPrayers,
	}
}

func validateMonth(year int, month time.Month) error {
	vErr := &journal.ValidationError{FieldErrors: map[string]string{}}
	if year < 1 || year > 9999 {
		vErr.FieldErrors["year"] = "year must be between 1 and 9999"
	}
	if month < time.January || month > time.December {
		vErr.FieldErrors["month"] = "month must be between 1 and 12"
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}
