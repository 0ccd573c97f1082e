package journal

import (
	"errors"
	"testing"
	"time"

	"prayerlog/internal/testfixtures"
)

func newTestPrayerStore(clock *testfixtures.Clock) *PrayerStore {
	return NewPrayerStore(testfixtures.NewIDGenerator("prayer").NextFunc(), clock.NowFunc())
}

func TestPrayerStore_Create(t *testing.T) {
	t.Run("rejects empty and blank titles", func(t *testing.T) {
		store := newTestPrayerStore(testfixtures.NewClock(time.Time{}))

		for _, title := range []string{"", "   ", "\t\n"} {
			_, err := store.Create(title, "", CategoryPersonal)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("title %q: expected ValidationError, got %v", title, err)
			}
			if _, ok := vErr.FieldErrors["title"]; !ok {
				t.Fatalf("title %q: expected title field error, got %v", title, vErr.FieldErrors)
			}
		}
		if store.Len() != 0 {
			t.Fatalf("store changed after failed Create")
		}
	})

	t.Run("creates active prayers with trimmed fields", func(t *testing.T) {
		clock := testfixtures.NewClock(time.Time{})
		store := newTestPrayerStore(clock)

		prayer, err := store.Create("  Peace at work ", " for the team ", "work")
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if prayer.ID != "prayer-1" || prayer.Title != "Peace at work" || prayer.Description != "for the team" {
			t.Fatalf("unexpected prayer: %+v", prayer)
		}
		if prayer.Category != CategoryWork {
			t.Fatalf("expected category %q, got %q", CategoryWork, prayer.Category)
		}
		if prayer.IsAnswered || prayer.AnsweredDate != nil {
			t.Fatalf("new prayer must be active: %+v", prayer)
		}
		if !prayer.DateCreated.Equal(clock.Now()) {
			t.Fatalf("expected creation time %s, got %s", clock.Now(), prayer.DateCreated)
		}
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		store := newTestPrayerStore(testfixtures.NewClock(time.Time{}))
		_, err := store.Create("Title", "", "Hobbies")
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestPrayerStore_MarkAnsweredIsIdempotent(t *testing.T) {
	clock := testfixtures.NewClock(time.Time{})
	store := newTestPrayerStore(clock)
	prayer, err := store.Create("Healing", "", CategoryHealth)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, err := store.MarkAnswered(prayer.ID)
	if err != nil {
		t.Fatalf("MarkAnswered: %v", err)
	}
	firstStamp := *first.AnsweredDate

	clock.Advance(3 * time.Hour)
	second, err := store.MarkAnswered(prayer.ID)
	if err != nil {
		t.Fatalf("second MarkAnswered returned error: %v", err)
	}
	if !second.IsAnswered || !second.AnsweredDate.Equal(firstStamp) {
		t.Fatalf("answeredDate overwritten: first %s, second %v", firstStamp, second.AnsweredDate)
	}

	if _, err := store.MarkAnswered("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPrayerStore_Delete(t *testing.T) {
	store := newTestPrayerStore(testfixtures.NewClock(time.Time{}))
	a, _ := store.Create("A", "", "")
	b, _ := store.Create("B", "", "")

	if err := store.Delete("unknown"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("failed delete changed the store")
	}

	if err := store.Delete(a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	all := store.All()
	if len(all) != 1 || all[0].ID != b.ID {
		t.Fatalf("unexpected prayers after delete: %+v", all)
	}
	if _, err := store.Get(a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted prayer still reachable: %v", err)
	}
}

func TestPrayerStore_FilterPartitions(t *testing.T) {
	store := newTestPrayerStore(testfixtures.NewClock(time.Time{}))
	for _, title := range []string{"one", "two", "three", "four"} {
		if _, err := store.Create(title, "", ""); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if _, err := store.MarkAnswered("prayer-2"); err != nil {
		t.Fatalf("MarkAnswered: %v", err)
	}
	if _, err := store.MarkAnswered("prayer-4"); err != nil {
		t.Fatalf("MarkAnswered: %v", err)
	}

	all := store.Filter(FilterAll)
	active := store.Filter(FilterActive)
	answered := store.Filter(FilterAnswered)

	if len(active)+len(answered) != len(all) {
		t.Fatalf("active (%d) + answered (%d) != all (%d)", len(active), len(answered), len(all))
	}
	seen := map[string]bool{}
	for _, p := range active {
		seen[p.ID] = true
	}
	for _, p := range answered {
		if seen[p.ID] {
			t.Fatalf("prayer %s is both active and answered", p.ID)
		}
	}
	if active[0].Title != "one" || active[1].Title != "three" {
		t.Fatalf("active prayers out of insertion order: %+v", active)
	}
	if store.AnsweredCount() != 2 {
		t.Fatalf("expected 2 answered, got %d", store.AnsweredCount())
	}
}

func TestPrayerStore_DrainAndImport(t *testing.T) {
	clock := testfixtures.NewClock(time.Time{})
	guest := NewPrayerStore(testfixtures.NewIDGenerator("guest").NextFunc(), clock.NowFunc())
	account := newTestPrayerStore(clock)

	if _, err := account.Create("existing", "", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	g1, _ := guest.Create("guest one", "", CategoryFamily)
	if _, err := guest.Create("guest two", "", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := guest.MarkAnswered(g1.ID); err != nil {
		t.Fatalf("MarkAnswered: %v", err)
	}

	drained := guest.Drain()
	if len(drained) != 2 || guest.Len() != 0 {
		t.Fatalf("expected 2 drained and empty guest store, got %d / %d", len(drained), guest.Len())
	}
	if again := guest.Drain(); len(again) != 0 {
		t.Fatalf("second drain returned %d prayers", len(again))
	}

	n, err := account.Import(drained)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 2 || account.Len() != 3 {
		t.Fatalf("expected 2 imported and 3 total, got %d / %d", n, account.Len())
	}
	imported, err := account.Get(g1.ID)
	if err != nil {
		t.Fatalf("imported prayer missing: %v", err)
	}
	if !imported.IsAnswered || imported.AnsweredDate == nil {
		t.Fatalf("lifecycle state lost on import: %+v", imported)
	}

	n, err = account.Import(drained)
	if err != nil || n != 0 {
		t.Fatalf("re-import should skip known ids, got %d, %v", n, err)
	}

	_, err = account.Import([]Prayer{{ID: "x", Title: "ok"}, {ID: "y", Title: " "}})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if account.Len() != 3 {
		t.Fatalf("invalid import must not change the store, have %d", account.Len())
	}
}

func TestParseFilterAndCategory(t *testing.T) {
	for _, in := range []string{"", "all", "ACTIVE", " answered "} {
		if _, err := ParseFilter(in); err != nil {
			t.Errorf("ParseFilter(%q) returned %v", in, err)
		}
	}
	if _, err := ParseFilter("pending"); err == nil {
		t.Errorf("expected error for unknown filter")
	}

	tests := map[string]Category{
		"":        CategoryPersonal,
		"Saúde":   CategoryHealth,
		"família": CategoryFamily,
		"Other":   CategoryOther,
		"WORK":    CategoryWork,
	}
	for in, want := range tests {
		got, err := ParseCategory(in)
		if err != nil || got != want {
			t.Errorf("ParseCategory(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
}
