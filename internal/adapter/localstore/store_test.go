package localstore

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "diary.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_OwnerRoundtrip(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.OwnerID(); !errors.Is(err, domain.ErrNotLoggedIn) {
		t.Fatalf("OwnerID() before login: error = %v, want ErrNotLoggedIn", err)
	}

	if err := s.SetOwnerID("42"); err != nil {
		t.Fatalf("SetOwnerID() error = %v", err)
	}
	id, err := s.OwnerID()
	if err != nil {
		t.Fatalf("OwnerID() error = %v", err)
	}
	if id != "42" {
		t.Errorf("OwnerID() = %q, want %q", id, "42")
	}

	if err := s.SetOwnerID("7"); err != nil {
		t.Fatalf("SetOwnerID() overwrite error = %v", err)
	}
	id, _ = s.OwnerID()
	if id != "7" {
		t.Errorf("OwnerID() after overwrite = %q, want %q", id, "7")
	}

	if err := s.ClearOwnerID(); err != nil {
		t.Fatalf("ClearOwnerID() error = %v", err)
	}
	if _, err := s.OwnerID(); !errors.Is(err, domain.ErrNotLoggedIn) {
		t.Fatalf("OwnerID() after logout: error = %v, want ErrNotLoggedIn", err)
	}
}

func TestStore_CacheDayRoundtrip(t *testing.T) {
	s := openTestStore(t)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	records := []domain.MealRecord{
		{
			OwnerID:      "42",
			Slot:         domain.SlotBreakfast,
			Timestamp:    time.Date(2024, 3, 1, 8, 30, 0, 0, time.Local),
			ContentItems: []string{"奶茶", "蛋餅"},
		},
		{
			OwnerID: "42",
			Slot:    domain.SlotLunch,
			Skipped: true,
		},
	}

	if err := s.CacheDay("42", day, records); err != nil {
		t.Fatalf("CacheDay() error = %v", err)
	}

	got, fetchedAt, err := s.CachedDay("42", day)
	if err != nil {
		t.Fatalf("CachedDay() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("CachedDay() returned %d records, want 2", len(got))
	}
	if got[0].Slot != domain.SlotBreakfast {
		t.Errorf("record 0 slot = %v, want %v", got[0].Slot, domain.SlotBreakfast)
	}
	if !got[0].Timestamp.Equal(records[0].Timestamp) {
		t.Errorf("record 0 timestamp = %v, want %v", got[0].Timestamp, records[0].Timestamp)
	}
	if len(got[0].ContentItems) != 2 || got[0].ContentItems[0] != "奶茶" {
		t.Errorf("record 0 content = %v", got[0].ContentItems)
	}
	if got[1].HasTimestamp() {
		t.Errorf("record 1 should keep its zero timestamp")
	}
	if !got[1].Skipped {
		t.Errorf("record 1 should stay skipped")
	}
	if time.Since(fetchedAt) > time.Minute {
		t.Errorf("fetchedAt = %v, want recent", fetchedAt)
	}
}

func TestStore_CacheDayReplaces(t *testing.T) {
	s := openTestStore(t)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	first := []domain.MealRecord{{Slot: domain.SlotBreakfast}}
	second := []domain.MealRecord{{Slot: domain.SlotLunch}, {Slot: domain.SlotDinner}}

	if err := s.CacheDay("42", day, first); err != nil {
		t.Fatalf("CacheDay() first error = %v", err)
	}
	if err := s.CacheDay("42", day, second); err != nil {
		t.Fatalf("CacheDay() second error = %v", err)
	}

	got, _, err := s.CachedDay("42", day)
	if err != nil {
		t.Fatalf("CachedDay() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("CachedDay() returned %d records, want 2", len(got))
	}
	if got[0].Slot != domain.SlotLunch {
		t.Errorf("record 0 slot = %v, want %v", got[0].Slot, domain.SlotLunch)
	}
}

func TestStore_CachedDayMiss(t *testing.T) {
	s := openTestStore(t)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	if _, _, err := s.CachedDay("42", day); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("CachedDay() on empty cache: error = %v, want ErrNotFound", err)
	}

	if err := s.CacheDay("42", day, nil); err != nil {
		t.Fatalf("CacheDay() error = %v", err)
	}
	if _, _, err := s.CachedDay("other", day); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("CachedDay() for other owner: error = %v, want ErrNotFound", err)
	}
}
