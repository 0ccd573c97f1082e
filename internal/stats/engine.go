package stats

import (
	"sort"
	"time"

	"prayerlog/internal/journal"
)

const (
	WeekDays  = 7
	MonthDays = 30
)

// SessionSource is the read side of the session log the engine needs.
type SessionSource interface {
	All() []journal.Session
	InMonth(year int, month time.Month) []journal.Session
	TotalTime() int
	TimeInWindow(windowDays int) int
	DistinctDates() []string
}

type PrayerSource interface {
	AnsweredCount() int
}

// PrayerStats is the derived summary shown on the home screen.
type PrayerStats struct {
	ConsecutiveDays   int     `json:"consecutiveDays" yaml:"consecutiveDays"`
	LongestStreak     int     `json:"longestStreak" yaml:"longestStreak"`
	AnsweredPrayers   int     `json:"answeredPrayers" yaml:"answeredPrayers"`
	TotalPrayerTime   int     `json:"totalPrayerTime" yaml:"totalPrayerTime"`
	WeeklyPrayerTime  int     `json:"weeklyPrayerTime" yaml:"weeklyPrayerTime"`
	MonthlyPrayerTime int     `json:"monthlyPrayerTime" yaml:"monthlyPrayerTime"`
	LastPrayerDate    *string `json:"lastPrayerDate" yaml:"lastPrayerDate"`
}

// MonthSummary backs the calendar view of one month.
type MonthSummary struct {
	Year       int               `json:"year"`
	Month      int               `json:"month"`
	Sessions   []journal.Session `json:"sessions"`
	TotalTime  int               `json:"totalTime"`
	ActiveDays []string          `json:"activeDays"`
}

type DayTotal struct {
	Date    string `json:"date"`
	Seconds int    `json:"seconds"`
}

// Engine derives statistics from the stores. It holds no state of its own,
// so every call reflects the stores as they are now.
type Engine struct {
	sessions SessionSource
	prayers  PrayerSource
	now      func() time.Time
}

func New(sessions SessionSource, prayers PrayerSource, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{sessions: sessions, prayers: prayers, now: now}
}

func (e *Engine) today() time.Time {
	return journal.Midnight(e.now())
}

func (e *Engine) AnsweredPrayerCount() int {
	return e.prayers.AnsweredCount()
}

// ConsecutiveDayStreak counts consecutive prayer days ending today, or
// yesterday when nothing has been logged yet today.
func (e *Engine) ConsecutiveDayStreak() int {
	return Streak(e.sessions.DistinctDates(), e.today())
}

func (e *Engine) LongestStreak() int {
	return Longest(e.sessions.DistinctDates(), e.now().Location())
}

func (e *Engine) TotalPrayerTime() int {
	return e.sessions.TotalTime()
}

func (e *Engine) WeeklyPrayerTime() int {
	return e.sessions.TimeInWindow(WeekDays)
}

func (e *Engine) MonthlyPrayerTime() int {
	return e.sessions.TimeInWindow(MonthDays)
}

// Compute builds a full snapshot in one pass over the distinct dates.
func (e *Engine) Compute() PrayerStats {
	today := e.today()
	dates := e.sessions.DistinctDates()

	snapshot := PrayerStats{
		ConsecutiveDays:   Streak(dates, today),
		LongestStreak:     Longest(dates, today.Location()),
		AnsweredPrayers:   e.prayers.AnsweredCount(),
		TotalPrayerTime:   e.sessions.TotalTime(),
		WeeklyPrayerTime:  e.sessions.TimeInWindow(WeekDays),
		MonthlyPrayerTime: e.sessions.TimeInWindow(MonthDays),
	}
	if len(dates) > 0 {
		last := dates[len(dates)-1]
		snapshot.LastPrayerDate = &last
	}
	return snapshot
}

func (e *Engine) Month(year int, month time.Month) MonthSummary {
	sessions := e.sessions.InMonth(year, month)
	summary := MonthSummary{
		Year:       year,
		Month:      int(month),
		Sessions:   sessions,
		ActiveDays: []string{},
	}
	seen := map[string]bool{}
	for _, s := range sessions {
		summary.TotalTime += s.Duration
		if !seen[s.Date] {
			seen[s.Date] = true
			summary.ActiveDays = append(summary.ActiveDays, s.Date)
		}
	}
	sort.Strings(summary.ActiveDays)
	return summary
}

// Daily returns per-day totals for the trailing days, oldest first. Days
// without sessions are present with zero seconds.
func (e *Engine) Daily(days int) []DayTotal {
	if days <= 0 {
		return []DayTotal{}
	}
	byDay := map[string]int{}
	for _, s := range e.sessions.All() {
		byDay[s.Date] += s.Duration
	}

	today := e.today()
	out := make([]DayTotal, days)
	for i := 0; i < days; i++ {
		day := journal.FormatDate(journal.AddDays(today, i-(days-1)))
		out[i] = DayTotal{Date: day, Seconds: byDay[day]}
	}
	return out
}
