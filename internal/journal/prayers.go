package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PrayerStore holds prayer requests in insertion order. Like SessionStore
// it relies on its owner for synchronisation.
type PrayerStore struct {
	prayers []Prayer
	newID   func() string
	now     func() time.Time
}

// NewPrayerStore constructs an empty store. Nil dependencies fall back to
// uuid and the wall clock.
func NewPrayerStore(newID func() string, now func() time.Time) *PrayerStore {
	if newID == nil {
		newID = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	return &PrayerStore{newID: newID, now: now}
}

// Create adds an active prayer. The title must be non-empty after trimming.
func (s *PrayerStore) Create(title, description string, category Category) (Prayer, error) {
	vErr := &ValidationError{}
	title = strings.TrimSpace(title)
	if title == "" {
		vErr.add("title", "title is required")
	}
	category, err := ParseCategory(string(category))
	if err != nil {
		vErr.add("category", "unknown category")
	}
	if vErr.HasErrors() {
		return Prayer{}, vErr
	}

	prayer := Prayer{
		ID:          s.newID(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Category:    category,
		DateCreated: s.now(),
	}
	s.prayers = append(s.prayers, prayer)
	return prayer, nil
}

// Get returns the prayer with the given id.
func (s *PrayerStore) Get(id string) (Prayer, error) {
	i := s.index(id)
	if i < 0 {
		return Prayer{}, fmt.Errorf("prayer %s: %w", id, ErrNotFound)
	}
	return s.prayers[i], nil
}

// MarkAnswered moves a prayer to the answered state. Marking an already
// answered prayer keeps its original answeredDate.
func (s *PrayerStore) MarkAnswered(id string) (Prayer, error) {
	i := s.index(id)
	if i < 0 {
		return Prayer{}, fmt.Errorf("prayer %s: %w", id, ErrNotFound)
	}
	p := &s.prayers[i]
	if !p.IsAnswered {
		answered := s.now()
		p.IsAnswered = true
		p.AnsweredDate = &answered
	}
	return *p, nil
}

// Delete removes a prayer permanently.
func (s *PrayerStore) Delete(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("prayer %s: %w", id, ErrNotFound)
	}
	s.prayers = append(s.prayers[:i], s.prayers[i+1:]...)
	return nil
}

// Filter returns the prayers matching f in insertion order.
func (s *PrayerStore) Filter(f Filter) []Prayer {
	out := []Prayer{}
	for _, p := range s.prayers {
		if f.match(p) {
			out = append(out, p)
		}
	}
	return out
}

// AnsweredCount counts prayers in the answered state.
func (s *PrayerStore) AnsweredCount() int {
	n := 0
	for _, p := range s.prayers {
		if p.IsAnswered {
			n++
		}
	}
	return n
}

// All returns a copy of every prayer in insertion order.
func (s *PrayerStore) All() []Prayer {
	return s.Filter(FilterAll)
}

func (s *PrayerStore) Len() int {
	return len(s.prayers)
}

// Replace swaps the store contents, typically with data loaded at startup.
func (s *PrayerStore) Replace(prayers []Prayer) {
	s.prayers = make([]Prayer, len(prayers))
	copy(s.prayers, prayers)
}

// Drain returns every prayer and leaves the store empty. It is the guest
// handoff: the returned prayers are meant for Import on another store.
func (s *PrayerStore) Drain() []Prayer {
	out := s.prayers
	if out == nil {
		out = []Prayer{}
	}
	s.prayers = nil
	return out
}

// Import appends prayers created elsewhere, keeping their ids and lifecycle
// state. Ids already present are skipped. If any entry is invalid nothing
// is imported.
func (s *PrayerStore) Import(prayers []Prayer) (int, error) {
	vErr := &ValidationError{}
	accepted := make([]Prayer, 0, len(prayers))
	seen := make(map[string]struct{}, len(s.prayers)+len(prayers))
	for _, p := range s.prayers {
		seen[p.ID] = struct{}{}
	}

	for i, p := range prayers {
		p.Title = strings.TrimSpace(p.Title)
		if p.Title == "" {
			vErr.add(fmt.Sprintf("prayers[%d].title", i), "title is required")
			continue
		}
		category, err := ParseCategory(string(p.Category))
		if err != nil {
			vErr.add(fmt.Sprintf("prayers[%d].category", i), "unknown category")
			continue
		}
		p.Category = category
		if p.ID == "" {
			p.ID = s.newID()
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		if p.DateCreated.IsZero() {
			p.DateCreated = s.now()
		}
		if p.IsAnswered && p.AnsweredDate == nil {
			answered := s.now()
			p.AnsweredDate = &answered
		}
		if !p.IsAnswered {
			p.AnsweredDate = nil
		}
		seen[p.ID] = struct{}{}
		accepted = append(accepted, p)
	}

	if vErr.HasErrors() {
		return 0, vErr
	}
	s.prayers = append(s.prayers, accepted...)
	return len(accepted), nil
}

func (s *PrayerStore) index(id string) int {
	for i, p := range s.prayers {
		if p.ID == id {
			return i
		}
	}
	return -1
}
