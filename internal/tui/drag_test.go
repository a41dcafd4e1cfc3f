package tui

import (
	"testing"

	"github.com/petdoor-tools/doorsched/internal/models"
	"github.com/petdoor-tools/doorsched/internal/utils"
)

// minuteRect maps one screen row to one minute, keeping the pointer math in
// these tests exact.
var minuteRect = utils.Rect{Top: 0, Height: utils.MinutesPerDay}

func TestCreateDragClick(t *testing.T) {
	d := NewCreateDrag("monday", 547, minuteRect)
	got := d.CreateSlot()
	want := models.Slot{From: "09:00", To: "09:15"}
	if got != want {
		t.Errorf("CreateSlot() = %v, want %v", got, want)
	}
}

func TestCreateDragSpan(t *testing.T) {
	d := NewCreateDrag("monday", 482, minuteRect)
	d.Track(658)
	got := d.CreateSlot()
	want := models.Slot{From: "08:00", To: "11:00"}
	if got != want {
		t.Errorf("CreateSlot() = %v, want %v", got, want)
	}
}

func TestCreateDragUpward(t *testing.T) {
	d := NewCreateDrag("friday", 600, minuteRect)
	d.Track(480)
	from, to := d.Preview()
	if from != 480 || to != 600 {
		t.Errorf("Preview() = (%d, %d), want (480, 600)", from, to)
	}
	got := d.CreateSlot()
	want := models.Slot{From: "08:00", To: "10:00"}
	if got != want {
		t.Errorf("CreateSlot() = %v, want %v", got, want)
	}
}

func TestCreateDragAtBottomOfDay(t *testing.T) {
	d := NewCreateDrag("sunday", 1438, minuteRect)
	got := d.CreateSlot()
	want := models.Slot{From: "23:45", To: "24:00"}
	if got != want {
		t.Errorf("CreateSlot() = %v, want %v", got, want)
	}
}

func TestResizeTopFloor(t *testing.T) {
	orig := models.Slot{From: "08:00", To: "09:00"}
	d := NewResizeDrag(DragResizeTop, "monday", 0, orig, minuteRect)
	d.Track(600)
	if d.CurrentMin != 525 {
		t.Errorf("CurrentMin = %d, want 525", d.CurrentMin)
	}
	got := d.ResizedSlot()
	want := models.Slot{From: "08:45", To: "09:00"}
	if got != want {
		t.Errorf("ResizedSlot() = %v, want %v", got, want)
	}
	rf, rt, ok := d.Removal()
	if !ok || rf != 480 || rt != 525 {
		t.Errorf("Removal() = (%d, %d, %v), want (480, 525, true)", rf, rt, ok)
	}
}

func TestResizeBottomFloor(t *testing.T) {
	orig := models.Slot{From: "08:00", To: "09:00"}
	d := NewResizeDrag(DragResizeBottom, "monday", 0, orig, minuteRect)
	d.Track(400)
	if d.CurrentMin != 495 {
		t.Errorf("CurrentMin = %d, want 495", d.CurrentMin)
	}
	got := d.ResizedSlot()
	want := models.Slot{From: "08:00", To: "08:15"}
	if got != want {
		t.Errorf("ResizedSlot() = %v, want %v", got, want)
	}
}

func TestResizeGrowHasNoRemoval(t *testing.T) {
	orig := models.Slot{From: "08:00", To: "09:00"}
	d := NewResizeDrag(DragResizeBottom, "monday", 0, orig, minuteRect)
	d.Track(660)
	if _, _, ok := d.Removal(); ok {
		t.Error("Removal() reported a span for a growing resize")
	}
	got := d.ResizedSlot()
	want := models.Slot{From: "08:00", To: "11:00"}
	if got != want {
		t.Errorf("ResizedSlot() = %v, want %v", got, want)
	}
}

func TestResizeWithoutMotionHasNoRemoval(t *testing.T) {
	orig := models.Slot{From: "08:00", To: "09:00"}
	d := NewResizeDrag(DragResizeTop, "monday", 0, orig, minuteRect)
	if _, _, ok := d.Removal(); ok {
		t.Error("Removal() reported a span before any motion")
	}
	if got := d.ResizedSlot(); got != orig {
		t.Errorf("ResizedSlot() = %v, want original %v", got, orig)
	}
}

func TestDragLabel(t *testing.T) {
	d := NewCreateDrag("monday", 480, minuteRect)
	d.Track(660)
	if got := d.Label(); got != "8a-11a" {
		t.Errorf("Label() = %q, want %q", got, "8a-11a")
	}

	d = NewCreateDrag("monday", 480, minuteRect)
	d.Track(570)
	if got := d.Label(); got != "8a-9:30a" {
		t.Errorf("Label() = %q, want %q", got, "8a-9:30a")
	}
}
