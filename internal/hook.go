package prayerlog

import (
	"prayerlog/internal/journal"
	"prayerlog/internal/stats"
)

type EventKind string

const (
	EventSessionAdded       EventKind = "session_added"
	EventPrayerCreated      EventKind = "prayer_created"
	EventPrayerAnswered     EventKind = "prayer_answered"
	EventPrayerDeleted      EventKind = "prayer_deleted"
	EventGuestPrayerCreated EventKind = "guest_prayer_created"
	EventGuestDrained       EventKind = "guest_drained"
	EventGuestMerged        EventKind = "guest_merged"
)

// Event describes a committed mutation.
type Event struct {
	Kind     EventKind        `json:"kind"`
	Session  *journal.Session `json:"session,omitempty"`
	Prayer   *journal.Prayer  `json:"prayer,omitempty"`
	PrayerID string           `json:"prayerId,omitempty"`
	Count    int              `json:"count,omitempty"`
}

// Hook is called after every committed mutation, outside the state lock.
type Hook func(*State, Event)

type StatsMessage struct {
	Event  string            `json:"event"`
	Change EventKind         `json:"change,omitempty"`
	Stats  stats.PrayerStats `json:"stats"`
}

// BroadcastHook pushes fresh stats to every websocket client.
func BroadcastHook(s *State, e Event) {
	s.NotifyAllClients(StatsMessage{
		Event:  "stats",
		Change: e.Kind,
		Stats:  s.Stats(),
	})
}
