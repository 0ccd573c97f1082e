package testfixtures

import (
	"testing"
	"time"
)

func TestClock(t *testing.T) {
	clock := NewClock(time.Time{})
	if !clock.Now().Equal(ReferenceTime()) {
		t.Fatalf("expected reference time, got %s", clock.Now())
	}

	clock.Advance(24 * time.Hour)
	if clock.Today() != "2025-03-13" {
		t.Fatalf("expected 2025-03-13 after advancing a day, got %s", clock.Today())
	}
	if got := clock.DaysAgo(13); got != "2025-02-28" {
		t.Fatalf("expected month boundary 2025-02-28, got %s", got)
	}
}

func TestIDGenerator(t *testing.T) {
	gen := NewIDGenerator("")
	next := gen.NextFunc()
	if got := next(); got != "id-1" {
		t.Fatalf("expected id-1, got %s", got)
	}
	if got := next(); got != "id-2" {
		t.Fatalf("expected id-2, got %s", got)
	}

	var nilGen *IDGenerator
	if got := nilGen.NextFunc()(); got != "" {
		t.Fatalf("expected empty id from nil generator, got %q", got)
	}
}
