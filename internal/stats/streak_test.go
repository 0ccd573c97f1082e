package stats

import (
	"testing"
	"time"

	"prayerlog/internal/testfixtures"
)

func TestStreak(t *testing.T) {
	clock := testfixtures.NewClock(time.Time{}) // 2025-03-12
	today := clock.Now()
	d := clock.DaysAgo

	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"no sessions", nil, 0},
		{"only today", []string{d(0)}, 1},
		{"today and the two days before", []string{d(2), d(1), d(0)}, 3},
		{"grace period counts through yesterday", []string{d(3), d(2), d(1)}, 3},
		{"last session two days ago", []string{d(3), d(2)}, 0},
		{"gap stops the count", []string{d(5), d(4), d(2), d(1), d(0)}, 3},
		{"duplicates and order do not matter", []string{d(0), d(1), d(0), d(1)}, 2},
		{"crosses a month boundary", []string{d(13), d(12), d(11), d(10), d(9), d(8), d(7), d(6), d(5), d(4), d(3), d(2), d(1), d(0)}, 14},
		{"session after today breaks the streak", []string{d(1), d(0), d(-2)}, 0},
		{"session tomorrow with nothing else", []string{d(-1)}, 0},
		{"ignores junk", []string{"garbage", d(1), d(0)}, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Streak(tc.dates, today); got != tc.want {
				t.Fatalf("Streak(%v) = %d, want %d", tc.dates, got, tc.want)
			}
		})
	}
}

func TestStreakAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Lisbon")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// Clocks go forward on 2025-03-30 in Lisbon.
	today := time.Date(2025, time.March, 31, 0, 30, 0, 0, loc)
	dates := []string{"2025-03-28", "2025-03-29", "2025-03-30", "2025-03-31"}
	if got := Streak(dates, today); got != 4 {
		t.Fatalf("expected 4 across DST, got %d", got)
	}
}

func TestLongest(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty", nil, 0},
		{"single day", []string{"2025-01-01"}, 1},
		{"picks the longer run", []string{"2025-01-01", "2025-01-02", "2025-01-05", "2025-01-06", "2025-01-07"}, 3},
		{"leap day", []string{"2024-02-28", "2024-02-29", "2024-03-01"}, 3},
		{"unsorted with duplicates", []string{"2025-01-03", "2025-01-01", "2025-01-02", "2025-01-02"}, 3},
		{"ignores junk", []string{"garbage", "2025-01-01"}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Longest(tc.dates, time.UTC); got != tc.want {
				t.Fatalf("Longest(%v) = %d, want %d", tc.dates, got, tc.want)
			}
		})
	}
}
