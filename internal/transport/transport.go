// Package transport moves schedules between the widget and the hub. The
// preferred path is the hub's typed websocket RPC; a snapshot fallback
// serves the schedule mirrored into the entity's attributes when the RPC
// is unavailable.
package transport

import (
	"context"
	"errors"
	"fmt"

	"github.com/petdoor-tools/doorsched/internal/models"
	"github.com/petdoor-tools/doorsched/internal/utils"
)

// Typed RPC command names served by the hub.
const (
	CmdScheduleGet    = "powerpetdoor/schedule/get"
	CmdScheduleUpdate = "powerpetdoor/schedule/update"
	CmdScheduleList   = "powerpetdoor/schedule/list"
)

var (
	// ErrNotFound is returned when the hub does not know the entity.
	ErrNotFound = errors.New("schedule entity not found")
	// ErrNoSnapshot is returned by the fallback adapter before any entity
	// snapshot has arrived.
	ErrNoSnapshot = errors.New("no entity snapshot available")
	// ErrSaveUnsupported is returned by read-only adapters.
	ErrSaveUnsupported = errors.New("save is not supported by this transport")
)

// Adapter loads and saves the schedule for one entity.
type Adapter interface {
	Load(ctx context.Context, entityID string) (models.Schedule, error)
	Save(ctx context.Context, entityID string, sched models.Schedule) error
}

// NormalizeSchedule validates a wire schedule and canonicalises every time
// to "HH:MM". Hubs may transmit "HH:MM:SS"; both are accepted on read and
// "HH:MM" is emitted on write. Empty day sequences are dropped.
func NormalizeSchedule(in models.Schedule) (models.Schedule, error) {
	out := models.Schedule{}
	for day, slots := range in {
		if len(slots) == 0 {
			continue
		}
		normalized := make([]models.Slot, 0, len(slots))
		for _, slot := range slots {
			from, err := utils.ParseMinutes(slot.From)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", day, err)
			}
			to, err := utils.ParseMinutes(slot.To)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", day, err)
			}
			normalized = append(normalized, models.Slot{
				From: utils.FormatMinutes(from),
				To:   utils.FormatMinutes(to),
			})
		}
		out[day] = normalized
	}
	return out, nil
}
