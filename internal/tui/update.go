package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/petdoor-tools/doorsched/internal/logger"
	"github.com/petdoor-tools/doorsched/internal/models"
	"github.com/petdoor-tools/doorsched/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout = computeLayout(msg.Width, msg.Height)
		if m.drag != nil {
			m.drag.Rect = m.layout.ColumnRect()
		}
		return m, nil

	case tickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		m.now = m.nowFn().In(m.loc)
		if m.expanded {
			return m, m.tickCmd()
		}
		return m, nil

	case snapshotMsg:
		return m.handleSnapshot(msg)

	case scheduleLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = fmt.Sprintf("Failed to load schedule: %v", msg.err)
			return m, nil
		}
		if m.drag != nil || m.edit != nil {
			// an in-flight load finishing mid-gesture must not clobber
			// the slots under the pointer
			return m, nil
		}
		m.errText = ""
		m.store.Hydrate(msg.schedule)
		return m, nil

	case scheduleSavedMsg:
		m.saving = false
		if msg.err != nil {
			logger.Error("schedule save failed", "entity", m.cfg.Entity, "error", msg.err)
			m.alert = fmt.Sprintf("Save failed: %v. Reloading.", msg.err)
			m.loading = true
			return m, m.loadCmd()
		}
		m.alert = ""
		return m, nil
	}

	if m.edit != nil && m.form != nil {
		return m.updateDialog(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleSnapshot(snap snapshotMsg) (tea.Model, tea.Cmd) {
	s := models.EntitySnapshot(snap)
	if m.fallback != nil {
		m.fallback.Update(s)
	}
	m.snapshot = &s

	cmds := []tea.Cmd{m.waitSnapshotCmd()}
	id := s.Identity()
	if m.drag == nil && m.edit == nil && id != m.reloadedID {
		m.reloadedID = id
		m.loading = true
		cmds = append(cmds, m.loadCmd())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Expand):
		return m.toggleExpand()
	case key.Matches(msg, m.keys.Refresh):
		if m.drag == nil && m.edit == nil {
			m.loading = true
			return m, m.loadCmd()
		}
	}
	return m, nil
}

func (m Model) toggleExpand() (tea.Model, tea.Cmd) {
	m.expanded = !m.expanded
	m.tickGen++
	if m.expanded {
		m.now = m.nowFn().In(m.loc)
		return m, m.tickCmd()
	}
	m.drag = nil
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.handlePress(msg.X, msg.Y)
	case tea.MouseActionMotion:
		if m.drag != nil {
			m.drag.Track(msg.Y)
		}
		return m, nil
	case tea.MouseActionRelease:
		return m.handleRelease()
	}
	return m, nil
}

func (m Model) handlePress(x, y int) (tea.Model, tea.Cmd) {
	if y == 0 {
		return m.toggleExpand()
	}
	if !m.expanded {
		return m, nil
	}

	// The implicit all-day week is display only. Gestures hit-test against
	// the stored slots, so pressing an untouched schedule starts a create
	// drag instead of grabbing the projected all-day slot.
	eff := m.store.Snapshot()
	hit := m.layout.Hit(x, y, eff)
	switch hit.Kind {
	case HitBackground:
		m.alert = ""
		m.drag = NewCreateDrag(hit.Day, y, m.layout.ColumnRect())
	case HitEdgeTop:
		m.alert = ""
		m.drag = NewResizeDrag(DragResizeTop, hit.Day, hit.Index, eff[hit.Day][hit.Index], m.layout.ColumnRect())
	case HitEdgeBottom:
		m.alert = ""
		m.drag = NewResizeDrag(DragResizeBottom, hit.Day, hit.Index, eff[hit.Day][hit.Index], m.layout.ColumnRect())
	case HitBody:
		m.alert = ""
		m.store.Materialize(hit.Day, hit.Index)
		return m.openDialog(hit.Day, hit.Index, false)
	}
	return m, nil
}

func (m Model) handleRelease() (tea.Model, tea.Cmd) {
	if m.drag == nil {
		// pointer-up with no session, e.g. a release that began on the
		// header or outside the window
		return m, nil
	}
	d := m.drag
	m.drag = nil

	switch d.Kind {
	case DragCreate:
		slot := d.CreateSlot()
		m.store.Materialize(d.Day, -1)
		idx := m.store.Insert(d.Day, slot)
		return m.openDialog(d.Day, idx, true)

	case DragResizeTop, DragResizeBottom:
		m.store.Materialize(d.Day, d.Index)
		if err := m.store.ReplaceAt(d.Day, d.Index, d.ResizedSlot()); err != nil {
			logger.Warn("resize rejected", "day", d.Day, "index", d.Index, "error", err)
			return m, nil
		}
		m.saving = true
		return m, m.saveCmd(m.store.Snapshot())
	}
	return m, nil
}

func (m Model) openDialog(day string, index int, isNew bool) (tea.Model, tea.Cmd) {
	slot, ok := m.store.SlotAt(day, index)
	if !ok {
		return m, nil
	}
	m.edit = &EditSession{Day: day, Index: index, IsNew: isNew}
	m.slotForm = &slotForm{From: slot.From, To: slot.To, Action: actionSave}
	m.formError = ""
	m.form = newSlotForm(m.slotForm)
	return m, m.form.Init()
}

func (m Model) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.cancelDialog(), nil
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && !m.dialogBounds().contains(msg.X, msg.Y) {
			return m.cancelDialog(), nil
		}
		// pointer events inside the dialog stay in the dialog
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.completeDialog(cmd)
	case huh.StateAborted:
		return m.cancelDialog(), cmd
	}
	return m, cmd
}

func (m Model) completeDialog(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	edit := m.edit
	switch m.slotForm.Action {
	case actionCancel:
		return m.cancelDialog(), cmd

	case actionDelete:
		m.store.DeleteAt(edit.Day, edit.Index)
		m.closeDialog()
		m.saving = true
		return m, tea.Batch(cmd, m.saveCmd(m.store.Snapshot()))

	default:
		from, err1 := utils.ParseMinutes(strings.TrimSpace(m.slotForm.From))
		to, err2 := utils.ParseMinutes(strings.TrimSpace(m.slotForm.To))
		if err1 != nil || err2 != nil || from >= to {
			m.formError = "Times must be HH:MM with start before end."
			m.form.State = huh.StateNormal
			return m, cmd
		}
		slot := models.Slot{From: utils.FormatMinutes(from), To: utils.FormatMinutes(to)}
		m.store.Materialize(edit.Day, edit.Index)
		if err := m.store.ReplaceAt(edit.Day, edit.Index, slot); err != nil {
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.closeDialog()
		m.saving = true
		return m, tea.Batch(cmd, m.saveCmd(m.store.Snapshot()))
	}
}

func (m Model) cancelDialog() Model {
	if m.edit != nil && m.edit.IsNew {
		m.store.DeleteAt(m.edit.Day, m.edit.Index)
	}
	m.closeDialog()
	return m
}

func (m *Model) closeDialog() {
	m.edit = nil
	m.form = nil
	m.slotForm = nil
	m.formError = ""
}
