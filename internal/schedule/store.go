// Package schedule holds the canonical weekly schedule store and its
// effective (displayed) projection.
//
// The stored schedule may be empty, meaning "no schedule configured": the
// door is active around the clock. The effective projection then shows one
// all-day window per day. The first direct user interaction with any
// displayed window materialises that implicit representation into an
// explicit all-day entry for every day, so subsequent edits stay local and
// predictable.
package schedule

import (
	"fmt"
	"sort"

	"github.com/petdoor-tools/doorsched/internal/models"
	"github.com/petdoor-tools/doorsched/internal/utils"
)

// AllDay returns the implicit full-day window.
func AllDay() models.Slot {
	return models.Slot{From: "00:00", To: "24:00"}
}

// Store is the canonical schedule for one entity. It is mutated only by
// user gestures and the edit dialog; transport reloads replace it wholesale
// via Hydrate.
type Store struct {
	days models.Schedule
}

// NewStore returns a store hydrated with a deep copy of s. A nil schedule
// yields an empty store.
func NewStore(s models.Schedule) *Store {
	st := &Store{days: models.Schedule{}}
	st.Hydrate(s)
	return st
}

// Hydrate replaces the stored schedule with a deep copy of s, dropping
// empty day keys.
func (st *Store) Hydrate(s models.Schedule) {
	st.days = models.Schedule{}
	for day, slots := range s {
		if len(slots) == 0 {
			continue
		}
		copied := make([]models.Slot, len(slots))
		copy(copied, slots)
		st.days[day] = copied
	}
}

// Snapshot returns a deep copy of the stored schedule for persistence.
func (st *Store) Snapshot() models.Schedule {
	return st.days.Clone()
}

// Day returns the stored slot sequence for a day (possibly nil).
func (st *Store) Day(day string) []models.Slot {
	return st.days[day]
}

// SlotAt returns the stored slot at day/index, if present.
func (st *Store) SlotAt(day string, index int) (models.Slot, bool) {
	slots := st.days[day]
	if index < 0 || index >= len(slots) {
		return models.Slot{}, false
	}
	return slots[index], true
}

// HasAny reports whether any day has a non-empty slot sequence.
func (st *Store) HasAny() bool {
	for _, slots := range st.days {
		if len(slots) > 0 {
			return true
		}
	}
	return false
}

// Effective returns the schedule the user sees: the stored schedule, or an
// all-day window for every day when nothing is stored. The projection is a
// deep copy and never writes back.
func (st *Store) Effective() models.Schedule {
	if !st.HasAny() {
		eff := models.Schedule{}
		for _, day := range models.Weekdays {
			eff[day] = []models.Slot{AllDay()}
		}
		return eff
	}
	return st.days.Clone()
}

// Materialize performs the implicit-to-explicit transition: if nothing is
// stored, every day gets an explicit all-day entry. Otherwise, a missing
// day/index is lazily filled from the effective projection (defensive; a
// no-op once explicit). Call it before mutating any displayed slot.
func (st *Store) Materialize(day string, index int) {
	if !st.HasAny() {
		st.days = models.Schedule{}
		for _, d := range models.Weekdays {
			st.days[d] = []models.Slot{AllDay()}
		}
		return
	}
	if index < 0 {
		return
	}
	if slots := st.days[day]; index < len(slots) {
		return
	}
	if eff := st.Effective()[day]; index < len(eff) {
		st.days[day] = eff
	}
}

// Insert adds a slot to the day (creating the day if absent), keeps the
// sequence sorted ascending by From with insertion order preserved for
// equal starts, and returns the index of the inserted slot, identified by
// value equality.
func (st *Store) Insert(day string, slot models.Slot) int {
	slots := append(st.days[day], slot)
	sortSlots(slots)
	st.days[day] = slots
	for i, s := range slots {
		if s.From == slot.From && s.To == slot.To {
			return i
		}
	}
	return len(slots) - 1
}

// DeleteAt removes the slot at day/index; the day key is dropped when the
// sequence becomes empty.
func (st *Store) DeleteAt(day string, index int) {
	slots := st.days[day]
	if index < 0 || index >= len(slots) {
		return
	}
	slots = append(slots[:index], slots[index+1:]...)
	if len(slots) == 0 {
		delete(st.days, day)
		return
	}
	st.days[day] = slots
}

// ReplaceAt overwrites the slot at day/index. The slot must satisfy
// from < to.
func (st *Store) ReplaceAt(day string, index int, slot models.Slot) error {
	from, err := utils.ParseMinutes(slot.From)
	if err != nil {
		return err
	}
	to, err := utils.ParseMinutes(slot.To)
	if err != nil {
		return err
	}
	if from >= to {
		return fmt.Errorf("slot start %s must precede end %s", slot.From, slot.To)
	}
	slots := st.days[day]
	if index < 0 || index >= len(slots) {
		return fmt.Errorf("no slot at %s[%d]", day, index)
	}
	slots[index] = slot
	return nil
}

// Summary renders the header line: "N time slot(s) across D day(s)", or
// the 24/7 text when nothing is stored.
func (st *Store) Summary() string {
	if !st.HasAny() {
		return "Active 24/7 (no schedule set)"
	}
	n := st.days.SlotCount()
	d := st.days.DayCount()
	return fmt.Sprintf("%d time slot%s across %d day%s", n, plural(n), d, plural(d))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// sortSlots orders a day's sequence ascending by From. Stability preserves
// relative insertion order for slots sharing a start time.
func sortSlots(slots []models.Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return fromMin(slots[i]) < fromMin(slots[j])
	})
}

func fromMin(s models.Slot) int {
	m, err := utils.ParseMinutes(s.From)
	if err != nil {
		return 0
	}
	return m
}
