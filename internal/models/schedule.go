package models

// Weekdays lists the wire-format day keys in hub order (Sunday first).
// The index of a key matches time.Weekday.
var Weekdays = []string{
	"sunday",
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
}

// Slot is a single activation window within one day. Times are "HH:MM"
// strings; "24:00" marks end of day.
type Slot struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Schedule maps a weekday key to its ordered slot sequence. Days without
// an active window are absent from the map.
type Schedule map[string][]Slot

// Clone returns a deep copy of the schedule.
func (s Schedule) Clone() Schedule {
	if s == nil {
		return nil
	}
	out := make(Schedule, len(s))
	for day, slots := range s {
		copied := make([]Slot, len(slots))
		copy(copied, slots)
		out[day] = copied
	}
	return out
}

// SlotCount returns the total number of slots across all days.
func (s Schedule) SlotCount() int {
	n := 0
	for _, slots := range s {
		n += len(slots)
	}
	return n
}

// DayCount returns the number of days with at least one slot.
func (s Schedule) DayCount() int {
	n := 0
	for _, slots := range s {
		if len(slots) > 0 {
			n++
		}
	}
	return n
}

// SnapshotAttrs is the attribute payload of an entity snapshot. The hub
// mirrors the structured schedule here so the widget has a fallback when
// the typed RPC is unavailable.
type SnapshotAttrs struct {
	FriendlyName  string   `json:"friendly_name,omitempty"`
	Schedule      Schedule `json:"schedule,omitempty"`
	ScheduleCount int      `json:"schedule_count,omitempty"`
}

// EntitySnapshot is the hub's read-only view of a schedule entity.
type EntitySnapshot struct {
	EntityID    string        `json:"entity_id"`
	State       string        `json:"state"`
	Attributes  SnapshotAttrs `json:"attributes"`
	LastChanged string        `json:"last_changed,omitempty"`
	LastUpdated string        `json:"last_updated,omitempty"`
}

// Identity returns a marker that changes whenever the hub publishes a new
// state object for the entity. Reloads are keyed on it.
func (e EntitySnapshot) Identity() string {
	return e.LastUpdated + "/" + e.State
}

// IsOn reports whether the entity is currently active.
func (e EntitySnapshot) IsOn() bool {
	return e.State == "on"
}
