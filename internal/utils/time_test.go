package utils

import "testing"

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "midnight", in: "00:00", want: 0},
		{name: "morning", in: "09:07", want: 547},
		{name: "end of day sentinel", in: "24:00", want: 1440},
		{name: "with seconds", in: "06:30:00", want: 390},
		{name: "end of day with seconds", in: "24:00:00", want: 1440},
		{name: "last minute", in: "23:45", want: 1425},
		{name: "hour out of range", in: "25:00", wantErr: true},
		{name: "minute out of range", in: "12:61", wantErr: true},
		{name: "24 with minutes", in: "24:30", wantErr: true},
		{name: "garbage", in: "noon", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMinutes(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMinutes(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMinutes(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatMinutesRoundTrip(t *testing.T) {
	// Round-trip property for representative minutes, including the sentinel.
	for _, m := range []int{0, 15, 60, 720, 1425, 1440} {
		got, err := ParseMinutes(FormatMinutes(m))
		if err != nil {
			t.Fatalf("ParseMinutes(FormatMinutes(%d)) error: %v", m, err)
		}
		if got != m {
			t.Errorf("round trip %d -> %q -> %d", m, FormatMinutes(m), got)
		}
	}
}

func TestRoundToInterval(t *testing.T) {
	tests := []struct {
		name string
		m    int
		want int
	}{
		{name: "already aligned", m: 540, want: 540},
		{name: "rounds down", m: 547, want: 540},
		{name: "rounds up", m: 548, want: 555},
		{name: "near day start", m: 7, want: 0},
		{name: "near day end", m: 1437, want: 1440},
		{name: "clamps above range", m: 1500, want: 1440},
		{name: "clamps below range", m: -20, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundToInterval(tt.m, SlotStepMin); got != tt.want {
				t.Errorf("RoundToInterval(%d, 15) = %d, want %d", tt.m, got, tt.want)
			}
		})
	}
}

func TestRoundToIntervalProperties(t *testing.T) {
	for m := 0; m <= MinutesPerDay; m++ {
		got := RoundToInterval(m, SlotStepMin)
		if got < 0 || got > MinutesPerDay {
			t.Fatalf("RoundToInterval(%d) = %d out of range", m, got)
		}
		if got%SlotStepMin != 0 {
			t.Fatalf("RoundToInterval(%d) = %d not a multiple of %d", m, got, SlotStepMin)
		}
	}
}

func TestMinutesFromY(t *testing.T) {
	rect := Rect{Top: 2, Height: 48}

	tests := []struct {
		name string
		y    int
		want int
	}{
		{name: "top of column", y: 2, want: 0},
		{name: "above column clamps", y: 0, want: 0},
		{name: "bottom of column", y: 50, want: 1440},
		{name: "below column clamps", y: 90, want: 1440},
		{name: "midday", y: 26, want: 720},
		{name: "one row", y: 3, want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinutesFromY(tt.y, rect); got != tt.want {
				t.Errorf("MinutesFromY(%d, %+v) = %d, want %d", tt.y, rect, got, tt.want)
			}
		})
	}

	if got := MinutesFromY(10, Rect{Top: 0, Height: 0}); got != 0 {
		t.Errorf("MinutesFromY with zero height = %d, want 0", got)
	}
}

func TestFormat12(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "00:00", want: "12:00 AM"},
		{in: "09:05", want: "9:05 AM"},
		{in: "12:00", want: "12:00 PM"},
		{in: "18:30", want: "6:30 PM"},
		{in: "24:00", want: "12:00 AM"},
		{in: "bogus", want: "bogus"},
	}

	for _, tt := range tests {
		if got := Format12(tt.in); got != tt.want {
			t.Errorf("Format12(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatShort12(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "00:00", want: "12a"},
		{in: "09:00", want: "9a"},
		{in: "09:30", want: "9:30a"},
		{in: "12:00", want: "12p"},
		{in: "21:00", want: "9p"},
		{in: "24:00", want: "12a"},
	}

	for _, tt := range tests {
		if got := FormatShort12(tt.in); got != tt.want {
			t.Errorf("FormatShort12(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
