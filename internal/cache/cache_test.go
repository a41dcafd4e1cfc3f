package cache

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/petdoor-tools/doorsched/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetScheduleEmpty(t *testing.T) {
	store := newTestStore(t)

	if _, _, err := store.GetSchedule("schedule.petdoor_inside_schedule"); !errors.Is(err, ErrNoSchedule) {
		t.Errorf("expected ErrNoSchedule, got %v", err)
	}
}

func TestPutAndGetSchedule(t *testing.T) {
	store := newTestStore(t)

	sched := models.Schedule{
		"monday":  {{From: "06:00", To: "20:00"}},
		"tuesday": {{From: "08:00", To: "09:00"}, {From: "18:00", To: "24:00"}},
	}
	if err := store.PutSchedule("schedule.petdoor_inside_schedule", sched); err != nil {
		t.Fatalf("PutSchedule failed: %v", err)
	}

	got, updatedAt, err := store.GetSchedule("schedule.petdoor_inside_schedule")
	if err != nil {
		t.Fatalf("GetSchedule failed: %v", err)
	}
	if len(got) != 2 || got["tuesday"][1].To != "24:00" {
		t.Errorf("unexpected cached schedule: %v", got)
	}
	if time.Since(updatedAt) > time.Minute {
		t.Errorf("stale updated_at: %v", updatedAt)
	}
}

func TestPutScheduleUpserts(t *testing.T) {
	store := newTestStore(t)

	first := models.Schedule{"monday": {{From: "06:00", To: "20:00"}}}
	second := models.Schedule{"friday": {{From: "10:00", To: "12:00"}}}

	if err := store.PutSchedule("schedule.petdoor_inside_schedule", first); err != nil {
		t.Fatalf("PutSchedule failed: %v", err)
	}
	if err := store.PutSchedule("schedule.petdoor_inside_schedule", second); err != nil {
		t.Fatalf("PutSchedule upsert failed: %v", err)
	}

	got, _, err := store.GetSchedule("schedule.petdoor_inside_schedule")
	if err != nil {
		t.Fatalf("GetSchedule failed: %v", err)
	}
	if _, ok := got["monday"]; ok {
		t.Errorf("old schedule not replaced: %v", got)
	}
	if len(got["friday"]) != 1 {
		t.Errorf("new schedule missing: %v", got)
	}
}

func TestCacheIsolatedPerEntity(t *testing.T) {
	store := newTestStore(t)

	inside := models.Schedule{"monday": {{From: "06:00", To: "20:00"}}}
	outside := models.Schedule{"sunday": {{From: "09:00", To: "17:00"}}}

	store.PutSchedule("schedule.petdoor_inside_schedule", inside)
	store.PutSchedule("schedule.petdoor_outside_schedule", outside)

	got, _, err := store.GetSchedule("schedule.petdoor_outside_schedule")
	if err != nil {
		t.Fatalf("GetSchedule failed: %v", err)
	}
	if _, ok := got["monday"]; ok {
		t.Errorf("entities share cache rows: %v", got)
	}
}
