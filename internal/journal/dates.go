package journal

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for session dates.
const DateLayout = "2006-01-02"

// FormatDate returns the calendar day of t in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Midnight returns the start of t's calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays shifts a calendar day by n days. It works on civil dates so a
// DST transition never skips or repeats a day.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a YYYY-MM-DD day as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// NormalizeDate converts caller input into a YYYY-MM-DD day. Plain days are
// kept as given; RFC 3339 instants are converted to their calendar day in loc.
func NormalizeDate(input string, loc *time.Location) (string, error) {
	input = strings.TrimSpace(input)
	if t, err := ParseDate(input, loc); err == nil {
		return FormatDate(t), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, input); err == nil {
		return FormatDate(t.In(loc)), nil
	}
	return "", fmt.Errorf("date %q is neither YYYY-MM-DD nor RFC 3339", input)
}
