package tui

import (
	"github.com/petdoor-tools/doorsched/internal/models"
	"github.com/petdoor-tools/doorsched/internal/utils"
)

// DragKind distinguishes the three pointer gestures on the grid.
type DragKind int

const (
	DragCreate DragKind = iota
	DragResizeTop
	DragResizeBottom
)

// DragSession tracks one press-move-release gesture. All minute values are
// quantized to the slot step the moment they enter the session, so previews
// and the committed slot always agree.
type DragSession struct {
	Kind       DragKind
	Day        string
	Index      int
	Original   models.Slot
	StartMin   int
	CurrentMin int
	Rect       utils.Rect
}

// NewCreateDrag starts a create gesture from a press on empty column space.
func NewCreateDrag(day string, y int, rect utils.Rect) *DragSession {
	m := utils.RoundToInterval(utils.MinutesFromY(y, rect), utils.SlotStepMin)
	return &DragSession{
		Kind:       DragCreate,
		Day:        day,
		Index:      -1,
		StartMin:   m,
		CurrentMin: m,
		Rect:       rect,
	}
}

// NewResizeDrag starts a resize gesture from a press on a slot edge.
func NewResizeDrag(kind DragKind, day string, index int, original models.Slot, rect utils.Rect) *DragSession {
	d := &DragSession{
		Kind:     kind,
		Day:      day,
		Index:    index,
		Original: original,
		Rect:     rect,
	}
	from, to := slotMinutes(original)
	if kind == DragResizeTop {
		d.StartMin = from
	} else {
		d.StartMin = to
	}
	d.CurrentMin = d.StartMin
	return d
}

// Track updates the gesture from a pointer motion event. Resizes are floored
// so the slot can never shrink below one step.
func (d *DragSession) Track(y int) {
	m := utils.RoundToInterval(utils.MinutesFromY(y, d.Rect), utils.SlotStepMin)
	from, to := slotMinutes(d.Original)
	switch d.Kind {
	case DragResizeTop:
		if limit := to - utils.SlotStepMin; m > limit {
			m = limit
		}
	case DragResizeBottom:
		if limit := from + utils.SlotStepMin; m < limit {
			m = limit
		}
	}
	d.CurrentMin = m
}

// Preview is the minute span the gesture would produce if released now.
func (d *DragSession) Preview() (from, to int) {
	switch d.Kind {
	case DragResizeTop:
		_, to = slotMinutes(d.Original)
		return d.CurrentMin, to
	case DragResizeBottom:
		from, _ = slotMinutes(d.Original)
		return from, d.CurrentMin
	default:
		from, to = d.StartMin, d.CurrentMin
		if to < from {
			from, to = to, from
		}
		return from, to
	}
}

// Removal is the span being cut off by a shrinking resize, when any.
func (d *DragSession) Removal() (from, to int, ok bool) {
	origFrom, origTo := slotMinutes(d.Original)
	switch d.Kind {
	case DragResizeTop:
		if d.CurrentMin > origFrom {
			return origFrom, d.CurrentMin, true
		}
	case DragResizeBottom:
		if d.CurrentMin < origTo {
			return d.CurrentMin, origTo, true
		}
	}
	return 0, 0, false
}

// Label renders the preview span in compact 12-hour form, e.g. "9a-11:30a".
func (d *DragSession) Label() string {
	from, to := d.Preview()
	return utils.FormatShort12(utils.FormatMinutes(from)) + "-" + utils.FormatShort12(utils.FormatMinutes(to))
}

// CreateSlot finalizes a create gesture. A plain click, with no meaningful
// vertical travel, yields a single-step slot anchored at the press point.
func (d *DragSession) CreateSlot() models.Slot {
	from, to := d.Preview()
	if to-from < utils.SlotStepMin {
		from = d.StartMin
		to = from + utils.SlotStepMin
		if to > utils.MinutesPerDay {
			to = utils.MinutesPerDay
			from = to - utils.SlotStepMin
		}
	}
	return models.Slot{From: utils.FormatMinutes(from), To: utils.FormatMinutes(to)}
}

// ResizedSlot finalizes a resize gesture against the original slot.
func (d *DragSession) ResizedSlot() models.Slot {
	from, to := slotMinutes(d.Original)
	if d.Kind == DragResizeTop {
		from = d.CurrentMin
	} else {
		to = d.CurrentMin
	}
	return models.Slot{From: utils.FormatMinutes(from), To: utils.FormatMinutes(to)}
}

func slotMinutes(s models.Slot) (int, int) {
	from, _ := utils.ParseMinutes(s.From)
	to, _ := utils.ParseMinutes(s.To)
	return from, to
}
