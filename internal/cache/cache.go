// Package cache persists the last known schedule per entity, standing in
// for the hub when it is unreachable.
package cache

import (
	"errors"
	"time"

	"github.com/petdoor-tools/doorsched/internal/models"
)

// ErrNoSchedule is returned when no schedule has been cached for the
// entity.
var ErrNoSchedule = errors.New("no cached schedule for entity")

// Store is the schedule cache.
type Store interface {
	Init() error
	// GetSchedule returns the cached schedule and when it was stored.
	GetSchedule(entityID string) (models.Schedule, time.Time, error)
	// PutSchedule upserts the cached schedule for the entity.
	PutSchedule(entityID string, sched models.Schedule) error
	Close() error
}
