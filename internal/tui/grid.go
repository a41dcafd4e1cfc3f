package tui

import (
	"github.com/petdoor-tools/doorsched/internal/models"
	"github.com/petdoor-tools/doorsched/internal/utils"
)

// Layout maps the week grid onto screen cells. One column per weekday,
// a time gutter on the left, and Rows terminal rows covering a full day.
type Layout struct {
	Gutter   int // width of the hour-label gutter
	ColWidth int // width of one day column
	Top      int // screen row of the first grid row
	Left     int // screen column of the sunday column
	Rows     int // grid rows per day column
}

const (
	minGridRows = 12
	maxGridRows = 48
	minColWidth = 4
	maxColWidth = 14
	gutterWidth = 6
)

func computeLayout(width, height int) Layout {
	rows := height - 5
	if rows < minGridRows {
		rows = minGridRows
	}
	if rows > maxGridRows {
		rows = maxGridRows
	}
	colWidth := 0
	if width > gutterWidth {
		colWidth = (width - gutterWidth) / 7
	}
	if colWidth < minColWidth {
		colWidth = minColWidth
	}
	if colWidth > maxColWidth {
		colWidth = maxColWidth
	}
	return Layout{
		Gutter:   gutterWidth,
		ColWidth: colWidth,
		Top:      2,
		Left:     gutterWidth,
		Rows:     rows,
	}
}

// ColumnRect is the vertical extent shared by every day column.
func (l Layout) ColumnRect() utils.Rect {
	return utils.Rect{Top: l.Top, Height: l.Rows}
}

// SpanRows converts a minute range to a half-open row range. A slot always
// occupies at least one row so short slots stay visible and clickable.
func (l Layout) SpanRows(fromMin, toMin int) (int, int) {
	r0 := fromMin * l.Rows / utils.MinutesPerDay
	if r0 >= l.Rows {
		r0 = l.Rows - 1
	}
	r1 := toMin * l.Rows / utils.MinutesPerDay
	if r1 <= r0 {
		r1 = r0 + 1
	}
	if r1 > l.Rows {
		r1 = l.Rows
	}
	return r0, r1
}

// HitKind classifies what sits under the pointer.
type HitKind int

const (
	HitNone HitKind = iota
	HitHeader
	HitBackground
	HitBody
	HitEdgeTop
	HitEdgeBottom
)

// Hit is the result of mapping a pointer position onto the grid.
type Hit struct {
	Kind  HitKind
	Day   string
	Index int
}

// Hit resolves a screen coordinate against the rendered schedule. Edge rows
// win over body rows so resize grips stay reachable; slots shorter than two
// rows expose only a body, which opens the edit dialog instead of resizing.
func (l Layout) Hit(x, y int, sched models.Schedule) Hit {
	if y == 0 {
		return Hit{Kind: HitHeader}
	}
	if y < l.Top || y >= l.Top+l.Rows || x < l.Left {
		return Hit{Kind: HitNone}
	}
	dayIdx := (x - l.Left) / l.ColWidth
	if dayIdx < 0 || dayIdx > 6 {
		return Hit{Kind: HitNone}
	}
	day := models.Weekdays[dayIdx]
	row := y - l.Top

	for i, slot := range sched[day] {
		from, err := utils.ParseMinutes(slot.From)
		if err != nil {
			continue
		}
		to, err := utils.ParseMinutes(slot.To)
		if err != nil {
			continue
		}
		r0, r1 := l.SpanRows(from, to)
		if row < r0 || row >= r1 {
			continue
		}
		if r1-r0 >= 2 {
			if row == r0 {
				return Hit{Kind: HitEdgeTop, Day: day, Index: i}
			}
			if row == r1-1 {
				return Hit{Kind: HitEdgeBottom, Day: day, Index: i}
			}
		}
		return Hit{Kind: HitBody, Day: day, Index: i}
	}
	return Hit{Kind: HitBackground, Day: day, Index: -1}
}
