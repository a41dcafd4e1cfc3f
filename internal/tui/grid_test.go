package tui

import (
	"testing"

	"github.com/petdoor-tools/doorsched/internal/models"
)

func testLayout() Layout {
	return Layout{Gutter: 6, ColWidth: 10, Top: 2, Left: 6, Rows: 48}
}

func TestComputeLayoutClamps(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantCol       int
		wantRows      int
	}{
		{"standard", 80, 30, 10, 25},
		{"tall", 120, 80, 14, 48},
		{"tiny", 20, 10, 4, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := computeLayout(tt.width, tt.height)
			if l.ColWidth != tt.wantCol {
				t.Errorf("ColWidth = %d, want %d", l.ColWidth, tt.wantCol)
			}
			if l.Rows != tt.wantRows {
				t.Errorf("Rows = %d, want %d", l.Rows, tt.wantRows)
			}
		})
	}
}

func TestSpanRowsMinimumHeight(t *testing.T) {
	l := testLayout()
	r0, r1 := l.SpanRows(600, 615)
	if r0 != 20 || r1 != 21 {
		t.Errorf("SpanRows(600, 615) = (%d, %d), want (20, 21)", r0, r1)
	}
	r0, r1 = l.SpanRows(0, 1440)
	if r0 != 0 || r1 != 48 {
		t.Errorf("SpanRows(0, 1440) = (%d, %d), want (0, 48)", r0, r1)
	}
}

func TestHit(t *testing.T) {
	l := testLayout()
	sched := models.Schedule{
		"monday": {
			{From: "08:00", To: "10:00"},
			{From: "10:00", To: "10:30"},
		},
	}

	tests := []struct {
		name     string
		x, y     int
		wantKind HitKind
		wantDay  string
		wantIdx  int
	}{
		{"header row", 5, 0, HitHeader, "", 0},
		{"day names row", 16, 1, HitNone, "", 0},
		{"left of gutter", 2, 10, HitNone, "", 0},
		{"below grid", 16, 50, HitNone, "", 0},
		{"empty column", 6, 22, HitBackground, "sunday", -1},
		{"empty rows of monday", 16, 40, HitBackground, "monday", -1},
		{"slot top edge", 16, 18, HitEdgeTop, "monday", 0},
		{"slot bottom edge", 16, 21, HitEdgeBottom, "monday", 0},
		{"slot body", 16, 19, HitBody, "monday", 0},
		{"single row slot is body only", 16, 22, HitBody, "monday", 1},
		{"rightmost column", 73, 22, HitBackground, "saturday", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.Hit(tt.x, tt.y, sched)
			if got.Kind != tt.wantKind {
				t.Fatalf("Hit(%d, %d).Kind = %v, want %v", tt.x, tt.y, got.Kind, tt.wantKind)
			}
			if tt.wantDay != "" && got.Day != tt.wantDay {
				t.Errorf("Hit(%d, %d).Day = %q, want %q", tt.x, tt.y, got.Day, tt.wantDay)
			}
			if tt.wantKind == HitBody || tt.wantKind == HitEdgeTop || tt.wantKind == HitEdgeBottom {
				if got.Index != tt.wantIdx {
					t.Errorf("Hit(%d, %d).Index = %d, want %d", tt.x, tt.y, got.Index, tt.wantIdx)
				}
			}
		})
	}
}
