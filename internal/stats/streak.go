package stats

import (
	"sort"
	"time"

	"prayerlog/internal/journal"
)

// Streak counts the run of consecutive days in dates that ends at today or,
// when today is absent, at yesterday. dates are YYYY-MM-DD strings; order
// and duplicates do not matter. The most recent date must be today or
// yesterday, otherwise the streak is 0.
func Streak(dates []string, today time.Time) int {
	present := make(map[string]bool, len(dates))
	latest := ""
	for _, d := range dates {
		if _, err := journal.ParseDate(d, today.Location()); err != nil {
			continue
		}
		present[d] = true
		if d > latest {
			latest = d
		}
	}

	today = journal.Midnight(today)
	anchor := today
	switch latest {
	case journal.FormatDate(today):
	case journal.FormatDate(journal.AddDays(today, -1)):
		anchor = journal.AddDays(today, -1)
	default:
		return 0
	}

	streak := 0
	for day := anchor; present[journal.FormatDate(day)]; day = journal.AddDays(day, -1) {
		streak++
	}
	return streak
}

// Longest returns the longest run of consecutive days in dates. Dates that
// do not parse are ignored.
func Longest(dates []string, loc *time.Location) int {
	sorted := make([]string, 0, len(dates))
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		if _, err := journal.ParseDate(d, loc); err != nil || seen[d] {
			continue
		}
		seen[d] = true
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	longest, run := 0, 0
	prev := ""
	for _, d := range sorted {
		if prev != "" && nextDay(prev, loc) == d {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = d
	}
	return longest
}

func nextDay(date string, loc *time.Location) string {
	t, err := journal.ParseDate(date, loc)
	if err != nil {
		return ""
	}
	return journal.FormatDate(journal.AddDays(t, 1))
}
