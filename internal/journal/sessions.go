package journal

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionStore is the append-only log of completed prayer sessions. It is
// not safe for concurrent use; the owning State serialises access.
type SessionStore struct {
	sessions []Session
	newID    func() string
	now      func() time.Time
}

// NewSessionStore constructs an empty store. Nil dependencies fall back to
// uuid and the wall clock.
func NewSessionStore(newID func() string, now func() time.Time) *SessionStore {
	if newID == nil {
		newID = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	return &SessionStore{newID: newID, now: now}
}

// Add appends a new session. An empty date means today in the clock's
// location.
func (s *SessionStore) Add(duration int, notes Notes, date string) (Session, error) {
	now := s.now()

	vErr := &ValidationError{}
	if duration < 0 {
		vErr.add("duration", "duration must not be negative")
	}
	day := FormatDate(now)
	if date != "" {
		normalized, err := NormalizeDate(date, now.Location())
		if err != nil {
			vErr.add("date", err.Error())
		}
		day = normalized
	}
	if vErr.HasErrors() {
		return Session{}, vErr
	}

	session := Session{
		ID:        s.newID(),
		Date:      day,
		Duration:  duration,
		Notes:     notes,
		Timestamp: now.UnixMilli(),
	}
	s.sessions = append(s.sessions, session)
	return session, nil
}

// OnDate returns the sessions dated exactly date, in insertion order.
func (s *SessionStore) OnDate(date string) []Session {
	out := []Session{}
	for _, session := range s.sessions {
		if session.Date == date {
			out = append(out, session)
		}
	}
	return out
}

// InMonth returns the sessions whose date falls in the given calendar month.
func (s *SessionStore) InMonth(year int, month time.Month) []Session {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	out := []Session{}
	for _, session := range s.sessions {
		if strings.HasPrefix(session.Date, prefix) {
			out = append(out, session)
		}
	}
	return out
}

// TotalTime sums the duration of every session, in seconds.
func (s *SessionStore) TotalTime() int {
	total := 0
	for _, session := range s.sessions {
		total += session.Duration
	}
	return total
}

// TimeInWindow sums durations of sessions dated within the trailing
// windowDays calendar days, today included. Dates after today are ignored.
func (s *SessionStore) TimeInWindow(windowDays int) int {
	if windowDays <= 0 {
		return 0
	}
	today := Midnight(s.now())
	from := FormatDate(AddDays(today, -(windowDays - 1)))
	to := FormatDate(today)

	total := 0
	for _, session := range s.sessions {
		// YYYY-MM-DD compares lexically in calendar order.
		if session.Date >= from && session.Date <= to {
			total += session.Duration
		}
	}
	return total
}

// DistinctDates returns the unique session dates in ascending order.
func (s *SessionStore) DistinctDates() []string {
	seen := make(map[string]struct{}, len(s.sessions))
	dates := make([]string, 0, len(s.sessions))
	for _, session := range s.sessions {
		if _, ok := seen[session.Date]; ok {
			continue
		}
		seen[session.Date] = struct{}{}
		dates = append(dates, session.Date)
	}
	sort.Strings(dates)
	return dates
}

// All returns a copy of every session in insertion order.
func (s *SessionStore) All() []Session {
	out := make([]Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

func (s *SessionStore) Len() int {
	return len(s.sessions)
}

// Replace swaps the store contents, typically with data loaded at startup.
// Dates stored as instants by older clients are reduced to calendar days.
func (s *SessionStore) Replace(sessions []Session) {
	loc := s.now().Location()
	s.sessions = make([]Session, len(sessions))
	for i, session := range sessions {
		if day, err := NormalizeDate(session.Date, loc); err == nil {
			session.Date = day
		}
		s.sessions[i] = session
	}
}
