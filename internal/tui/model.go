package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/petdoor-tools/doorsched/internal/cache"
	"github.com/petdoor-tools/doorsched/internal/config"
	"github.com/petdoor-tools/doorsched/internal/logger"
	"github.com/petdoor-tools/doorsched/internal/models"
	"github.com/petdoor-tools/doorsched/internal/schedule"
	"github.com/petdoor-tools/doorsched/internal/transport"
)

const rpcTimeout = 10 * time.Second

// Options wires the model to its transport, fallback, and cache.
type Options struct {
	Config    *config.Config
	Adapter   transport.Adapter
	Fallback  *transport.Snapshot
	Cache     cache.Store
	Snapshots <-chan models.EntitySnapshot
	Now       func() time.Time
}

// EditSession is an open slot dialog. IsNew marks a slot inserted by the
// gesture that opened the dialog, so cancel can take it back out.
type EditSession struct {
	Day   string
	Index int
	IsNew bool
}

type slotForm struct {
	From   string
	To     string
	Action string
}

const (
	actionSave   = "save"
	actionDelete = "delete"
	actionCancel = "cancel"
)

func newSlotForm(f *slotForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("From").
				Description("24-hour HH:MM").
				Value(&f.From),
			huh.NewInput().
				Title("To").
				Description("24-hour HH:MM, up to 24:00").
				Value(&f.To),
			huh.NewSelect[string]().
				Title("Action").
				Options(
					huh.NewOption("Save", actionSave),
					huh.NewOption("Delete slot", actionDelete),
					huh.NewOption("Cancel", actionCancel),
				).
				Value(&f.Action),
		),
	)
}

type Model struct {
	cfg      *config.Config
	adapter  transport.Adapter
	fallback *transport.Snapshot
	cache    cache.Store
	styles   Styles
	keys     KeyMap
	help     help.Model

	store *schedule.Store

	snapshots  <-chan models.EntitySnapshot
	snapshot   *models.EntitySnapshot
	reloadedID string

	expanded bool
	loading  bool
	saving   bool
	errText  string
	alert    string

	drag      *DragSession
	edit      *EditSession
	form      *huh.Form
	slotForm  *slotForm
	formError string

	nowFn func() time.Time
	loc   *time.Location
	now   time.Time

	layout   Layout
	width    int
	height   int
	tickGen  int
	quitting bool
}

func NewModel(opts Options) (Model, error) {
	if opts.Config == nil {
		return Model{}, errors.New("tui: config is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return Model{}, err
	}
	if opts.Adapter == nil {
		return Model{}, errors.New("tui: transport adapter is required")
	}

	nowFn := opts.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	loc := time.Local
	if opts.Config.Timezone != "" {
		if l, err := time.LoadLocation(opts.Config.Timezone); err == nil {
			loc = l
		} else {
			logger.Warn("invalid timezone in config, using local", "timezone", opts.Config.Timezone)
		}
	}

	m := Model{
		cfg:       opts.Config,
		adapter:   opts.Adapter,
		fallback:  opts.Fallback,
		cache:     opts.Cache,
		styles:    NewStyles(opts.Config),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		store:     schedule.NewStore(nil),
		snapshots: opts.Snapshots,
		expanded:  true,
		loading:   true,
		nowFn:     nowFn,
		loc:       loc,
	}
	m.now = nowFn().In(loc)
	m.layout = computeLayout(80, 24)
	return m, nil
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCmd(), m.tickCmd()}
	if cmd := m.waitSnapshotCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// CardSize reports the widget's relative footprint: a quarter card when
// collapsed, a full card when expanded.
func (m Model) CardSize() int {
	if m.expanded {
		return 4
	}
	return 1
}

// tickMsg carries the generation of the tick chain that produced it, so a
// tick left over from before a collapse cannot respawn a second chain.
type tickMsg struct {
	gen int
}

type snapshotMsg models.EntitySnapshot

type scheduleLoadedMsg struct {
	schedule models.Schedule
	err      error
}

type scheduleSavedMsg struct {
	err error
}

func (m Model) tickCmd() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(time.Minute, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m Model) loadCmd() tea.Cmd {
	adapter := m.adapter
	fallback := m.fallback
	store := m.cache
	entity := m.cfg.Entity
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		sched, err := adapter.Load(ctx, entity)
		if err == nil {
			if store != nil {
				if cerr := store.PutSchedule(entity, sched); cerr != nil {
					logger.Warn("schedule cache write failed", "error", cerr)
				}
			}
			return scheduleLoadedMsg{schedule: sched}
		}
		logger.Warn("schedule load failed, trying fallbacks", "entity", entity, "error", err)

		if fallback != nil {
			if fb, ferr := fallback.Load(ctx, entity); ferr == nil {
				return scheduleLoadedMsg{schedule: fb}
			}
		}
		if store != nil {
			if cached, _, cerr := store.GetSchedule(entity); cerr == nil {
				return scheduleLoadedMsg{schedule: cached}
			}
		}
		return scheduleLoadedMsg{err: err}
	}
}

func (m Model) saveCmd(sched models.Schedule) tea.Cmd {
	adapter := m.adapter
	store := m.cache
	entity := m.cfg.Entity
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
		defer cancel()

		if err := adapter.Save(ctx, entity, sched); err != nil {
			return scheduleSavedMsg{err: err}
		}
		if store != nil {
			if cerr := store.PutSchedule(entity, sched); cerr != nil {
				logger.Warn("schedule cache write failed", "error", cerr)
			}
		}
		return scheduleSavedMsg{}
	}
}

func (m Model) waitSnapshotCmd() tea.Cmd {
	ch := m.snapshots
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}
