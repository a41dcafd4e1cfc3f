package transport

import (
	"context"
	"sync"

	"github.com/petdoor-tools/doorsched/internal/models"
)

// Snapshot is the read-only fallback adapter: it serves the schedule
// mirrored into the entity's attributes by the hub. The TUI feeds it every
// incoming entity snapshot.
type Snapshot struct {
	mu   sync.Mutex
	last map[string]models.EntitySnapshot
}

// NewSnapshot returns an empty fallback adapter.
func NewSnapshot() *Snapshot {
	return &Snapshot{last: map[string]models.EntitySnapshot{}}
}

// Update records the latest snapshot for its entity.
func (s *Snapshot) Update(snap models.EntitySnapshot) {
	if snap.EntityID == "" {
		return
	}
	s.mu.Lock()
	s.last[snap.EntityID] = snap
	s.mu.Unlock()
}

// Latest returns the most recent snapshot for the entity, if any.
func (s *Snapshot) Latest(entityID string) (models.EntitySnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.last[entityID]
	return snap, ok
}

// Load returns a deep clone of the attribute schedule from the last known
// snapshot.
func (s *Snapshot) Load(_ context.Context, entityID string) (models.Schedule, error) {
	snap, ok := s.Latest(entityID)
	if !ok {
		return nil, ErrNoSnapshot
	}
	return NormalizeSchedule(snap.Attributes.Schedule.Clone())
}

// Save always fails; attribute snapshots are read-only.
func (s *Snapshot) Save(context.Context, string, models.Schedule) error {
	return ErrSaveUnsupported
}
