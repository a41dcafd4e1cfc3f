package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/petdoor-tools/doorsched/internal/models"
	"github.com/petdoor-tools/doorsched/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.edit != nil && m.form != nil {
		return m.viewDialogScreen()
	}
	header := m.viewHeader()
	if !m.expanded {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.viewStatus(), m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewGrid(), m.viewStatus(), m.help.View(m.keys))
}

func (m Model) viewHeader() string {
	dot := m.styles.DotOff.Render("●")
	if m.snapshot != nil && m.snapshot.IsOn() {
		dot = m.styles.DotOn.Render("●")
	}
	chevron := "▸"
	if m.expanded {
		chevron = "▾"
	}
	title := m.styles.Header.Render(m.sensorLabel())
	summary := m.styles.Summary.Render(m.store.Summary())
	return dot + " " + title + "  " + summary + "  " + chevron
}

func (m Model) sensorLabel() string {
	id := strings.ToLower(m.cfg.Entity)
	switch {
	case strings.Contains(id, "inside"):
		return "Inside schedule"
	case strings.Contains(id, "outside"):
		return "Outside schedule"
	}
	if m.snapshot != nil && m.snapshot.Attributes.FriendlyName != "" {
		return m.snapshot.Attributes.FriendlyName
	}
	return "Door schedule"
}

func (m Model) viewStatus() string {
	switch {
	case m.alert != "":
		return m.styles.Alert.Render(m.alert)
	case m.errText != "":
		return m.styles.Alert.Render(m.errText)
	case m.loading:
		return m.styles.Status.Render("Loading schedule…")
	case m.saving:
		return m.styles.Status.Render("Saving…")
	}
	return ""
}

func (m Model) viewGrid() string {
	l := m.layout
	eff := m.store.Effective()
	today := models.Weekdays[int(m.now.Weekday())]
	nowRow := minuteRow(m.nowMinutes(), l.Rows)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", l.Gutter))
	for _, day := range models.Weekdays {
		label := titleCase(day)[:3]
		style := m.styles.DayHeading
		if day == today {
			style = m.styles.TodayHeading
		}
		b.WriteString(style.Render(lipgloss.PlaceHorizontal(l.ColWidth, lipgloss.Center, label)))
	}
	b.WriteString("\n")

	gutter := m.gutterLines()
	cols := make([][]string, len(models.Weekdays))
	for i, day := range models.Weekdays {
		cols[i] = m.dayColumnLines(day, eff[day], day == today, nowRow)
	}
	for r := 0; r < l.Rows; r++ {
		b.WriteString(gutter[r])
		for i := range cols {
			b.WriteString(cols[i][r])
		}
		if r < l.Rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// gutterLines labels every third hour down the left edge.
func (m Model) gutterLines() []string {
	l := m.layout
	labels := make(map[int]string)
	for hour := 0; hour < 24; hour += 3 {
		labels[hour*l.Rows/24] = utils.FormatShort12(fmt.Sprintf("%02d:00", hour))
	}
	lines := make([]string, l.Rows)
	for r := range lines {
		lines[r] = m.styles.GutterLabel.Render(fmt.Sprintf("%*s ", l.Gutter-1, labels[r]))
	}
	return lines
}

func (m Model) dayColumnLines(day string, slots []models.Slot, isToday bool, nowRow int) []string {
	l := m.layout
	w := l.ColWidth - 1
	blank := strings.Repeat(" ", w)
	lines := make([]string, l.Rows)

	type span struct{ r0, r1, idx int }
	spans := make([]span, 0, len(slots))
	activeIdx := -1
	nowMin := m.nowMinutes()
	for i, slot := range slots {
		from, err1 := utils.ParseMinutes(slot.From)
		to, err2 := utils.ParseMinutes(slot.To)
		if err1 != nil || err2 != nil {
			continue
		}
		r0, r1 := l.SpanRows(from, to)
		spans = append(spans, span{r0, r1, i})
		if isToday && from <= nowMin && nowMin < to {
			activeIdx = i
		}
	}

	var preview, removal *[2]int
	var label string
	labelRow := -1
	if m.drag != nil && m.drag.Day == day {
		pf, pt := m.drag.Preview()
		p0, p1 := l.SpanRows(pf, pt)
		preview = &[2]int{p0, p1}
		labelRow = (p0 + p1 - 1) / 2
		label = m.drag.Label()
		if rf, rt, ok := m.drag.Removal(); ok {
			x0, x1 := l.SpanRows(rf, rt)
			removal = &[2]int{x0, x1}
		}
	}

	for r := 0; r < l.Rows; r++ {
		switch {
		case r == nowRow:
			lines[r] = m.styles.CurrentTime.Render(strings.Repeat("─", w)) + " "
		case r == labelRow:
			lines[r] = m.styles.PreviewLabel.Render(clipCenter(label, w)) + " "
		case removal != nil && r >= removal[0] && r < removal[1]:
			lines[r] = m.styles.Removal.Render(blank) + " "
		case preview != nil && r >= preview[0] && r < preview[1]:
			lines[r] = m.styles.Preview.Render(blank) + " "
		default:
			covered := false
			style := m.styles.Slot
			for _, s := range spans {
				if r >= s.r0 && r < s.r1 {
					covered = true
					if s.idx == activeIdx {
						style = m.styles.ActiveSlot
					}
					break
				}
			}
			if covered {
				lines[r] = style.Render(blank) + " "
			} else if g, ok := m.guideLine(r, w); ok {
				lines[r] = g + " "
			} else {
				lines[r] = blank + " "
			}
		}
	}
	return lines
}

// guideLine draws horizontal rules on three-hour boundaries, heavier on the
// six-hour ones.
func (m Model) guideLine(r, w int) (string, bool) {
	rows := m.layout.Rows
	for hour := 3; hour < 24; hour += 3 {
		if r != hour*rows/24 {
			continue
		}
		if hour%6 == 0 {
			return m.styles.GuideStrong.Render(strings.Repeat("─", w)), true
		}
		return m.styles.GuideThin.Render(strings.Repeat("┄", w)), true
	}
	return "", false
}

func (m Model) viewDialogScreen() string {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.renderDialog())
}

func (m Model) renderDialog() string {
	title := m.styles.DialogTitle.Render("Edit time slot: " + titleCase(m.edit.Day))
	parts := []string{title, m.form.View()}
	if m.formError != "" {
		parts = append(parts, m.styles.FormError.Render(m.formError))
	}
	return m.styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

type bounds struct{ x0, y0, x1, y1 int }

func (b bounds) contains(x, y int) bool {
	return x >= b.x0 && x < b.x1 && y >= b.y0 && y < b.y1
}

func (m Model) dialogBounds() bounds {
	if m.edit == nil || m.form == nil {
		return bounds{}
	}
	d := m.renderDialog()
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	dw, dh := lipgloss.Width(d), lipgloss.Height(d)
	x0 := (w - dw) / 2
	if x0 < 0 {
		x0 = 0
	}
	y0 := (h - dh) / 2
	if y0 < 0 {
		y0 = 0
	}
	return bounds{x0: x0, y0: y0, x1: x0 + dw, y1: y0 + dh}
}

func (m Model) nowMinutes() int {
	return m.now.Hour()*60 + m.now.Minute()
}

func minuteRow(min, rows int) int {
	r := min * rows / utils.MinutesPerDay
	if r >= rows {
		r = rows - 1
	}
	return r
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func clipCenter(s string, w int) string {
	if len(s) > w {
		if w <= 0 {
			return ""
		}
		return s[:w]
	}
	return lipgloss.PlaceHorizontal(w, lipgloss.Center, s)
}
