package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/petdoor-tools/doorsched/internal/cache"
	"github.com/petdoor-tools/doorsched/internal/config"
	"github.com/petdoor-tools/doorsched/internal/logger"
	"github.com/petdoor-tools/doorsched/internal/models"
	"github.com/petdoor-tools/doorsched/internal/transport"
	"github.com/petdoor-tools/doorsched/internal/tui"
)

const dialTimeout = 10 * time.Second

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w (run `doorsched configure` first)", err)
	}

	var cacheStore cache.Store
	sqlStore := cache.NewSQLiteStore(filepath.Join(config.Dir(ctx.ConfigPath), "cache.db"))
	if err := sqlStore.Init(); err != nil {
		logger.Warn("schedule cache unavailable", "error", err)
	} else {
		cacheStore = sqlStore
		defer sqlStore.Close()
	}

	fallback := transport.NewSnapshot()
	var adapter transport.Adapter = fallback
	var snapshots <-chan models.EntitySnapshot

	dialCtx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	hub, err := transport.Dial(dialCtx, cfg.Hub.URL, ctx.Token())
	cancel()
	if err != nil {
		logger.Warn("hub connection failed, starting offline", "url", cfg.Hub.URL, "error", err)
	} else {
		defer hub.Close()
		adapter = hub

		stateCtx, cancel := context.WithTimeout(context.Background(), dialTimeout)
		if snap, serr := hub.FetchState(stateCtx, cfg.Entity); serr == nil {
			fallback.Update(snap)
		} else {
			logger.Warn("entity state unavailable", "entity", cfg.Entity, "error", serr)
		}
		if ch, serr := hub.SubscribeStates(stateCtx, cfg.Entity); serr == nil {
			snapshots = ch
		} else {
			logger.Warn("state subscription failed", "entity", cfg.Entity, "error", serr)
		}
		cancel()
	}

	m, err := tui.NewModel(tui.Options{
		Config:    cfg,
		Adapter:   adapter,
		Fallback:  fallback,
		Cache:     cacheStore,
		Snapshots: snapshots,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
