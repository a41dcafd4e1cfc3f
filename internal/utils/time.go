package utils

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinutesPerDay is the exclusive upper bound of a day's minute range.
	MinutesPerDay = 1440

	// SlotStepMin is the quantisation interval for slot boundaries.
	SlotStepMin = 15
)

// Rect is the cached geometry of a day column: Top is the first row of the
// column on screen, Height its row count. Rows stand in for pixels; the
// minute projection is resolution independent.
type Rect struct {
	Top    int
	Height int
}

// ParseMinutes parses "HH:MM" (or "HH:MM:SS", as some hubs transmit) into
// minutes from midnight. "24:00" is accepted as the end-of-day sentinel.
func ParseMinutes(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if len(parts) == 3 {
		if _, err := strconv.Atoi(parts[2]); err != nil {
			return 0, fmt.Errorf("invalid time %q: %w", s, err)
		}
	}
	if h == 24 && m == 0 {
		return MinutesPerDay, nil
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatMinutes renders minutes from midnight as zero-padded "HH:MM",
// preserving 1440 as "24:00".
func FormatMinutes(m int) string {
	if m >= MinutesPerDay {
		return "24:00"
	}
	if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// RoundToInterval rounds m to the nearest multiple of step, ties rounding
// up (half away from zero). The result is clamped to [0, 1440].
func RoundToInterval(m, step int) int {
	if step <= 0 {
		return clampMinutes(m)
	}
	r := (2*m + step) / (2 * step) * step
	return clampMinutes(r)
}

// MinutesFromY projects a screen row onto the day's minute range:
// floor(clamp(y-top, 0, height) / height * 1440).
func MinutesFromY(y int, r Rect) int {
	if r.Height <= 0 {
		return 0
	}
	rel := y - r.Top
	if rel < 0 {
		rel = 0
	}
	if rel > r.Height {
		rel = r.Height
	}
	return rel * MinutesPerDay / r.Height
}

// Format12 renders an "HH:MM" string in 12-hour clock form, e.g. "9:05 AM".
// Invalid input is returned unchanged; this is a rendering helper only.
func Format12(hhmm string) string {
	m, err := ParseMinutes(hhmm)
	if err != nil {
		return hhmm
	}
	h12, mm, suffix := twelveHour(m)
	return fmt.Sprintf("%d:%02d %s", h12, mm, strings.ToUpper(suffix)+"M")
}

// FormatShort12 renders an "HH:MM" string in compact 12-hour form for grid
// labels: "9a", "9:30a", "12p". Invalid input is returned unchanged.
func FormatShort12(hhmm string) string {
	m, err := ParseMinutes(hhmm)
	if err != nil {
		return hhmm
	}
	h12, mm, suffix := twelveHour(m)
	if mm == 0 {
		return fmt.Sprintf("%d%s", h12, suffix)
	}
	return fmt.Sprintf("%d:%02d%s", h12, mm, suffix)
}

func twelveHour(m int) (h12, mm int, suffix string) {
	m = m % MinutesPerDay // 24:00 renders as 12a
	h := m / 60
	mm = m % 60
	suffix = "a"
	if h >= 12 {
		suffix = "p"
	}
	h12 = h % 12
	if h12 == 0 {
		h12 = 12
	}
	return h12, mm, suffix
}

func clampMinutes(m int) int {
	if m < 0 {
		return 0
	}
	if m > MinutesPerDay {
		return MinutesPerDay
	}
	return m
}
