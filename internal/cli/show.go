package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/petdoor-tools/doorsched/internal/cache"
	"github.com/petdoor-tools/doorsched/internal/config"
	"github.com/petdoor-tools/doorsched/internal/logger"
	"github.com/petdoor-tools/doorsched/internal/models"
	"github.com/petdoor-tools/doorsched/internal/schedule"
	"github.com/petdoor-tools/doorsched/internal/transport"
	"github.com/petdoor-tools/doorsched/internal/utils"
)

type ShowCmd struct {
	JSON bool `help:"Emit the schedule as JSON."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w (run `doorsched configure` first)", err)
	}

	sched, source, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	store := schedule.NewStore(sched)
	eff := store.Effective()

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(eff)
	}

	fmt.Printf("%s\n", store.Summary())
	if source != "" {
		fmt.Printf("(%s)\n", source)
	}
	fmt.Println()
	for _, day := range models.Weekdays {
		slots := eff[day]
		if len(slots) == 0 {
			fmt.Printf("  %-10s closed\n", titleDay(day))
			continue
		}
		spans := make([]string, 0, len(slots))
		for _, slot := range slots {
			spans = append(spans, utils.Format12(slot.From)+" - "+utils.Format12(slot.To))
		}
		fmt.Printf("  %-10s %s\n", titleDay(day), strings.Join(spans, ", "))
	}
	return nil
}

func (c *ShowCmd) fetch(ctx *Context) (models.Schedule, string, error) {
	cfg := ctx.Config

	dialCtx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	hub, err := transport.Dial(dialCtx, cfg.Hub.URL, ctx.Token())
	if err == nil {
		defer hub.Close()
		sched, lerr := hub.Load(dialCtx, cfg.Entity)
		if lerr == nil {
			return sched, "", nil
		}
		err = lerr
	}
	logger.Warn("schedule fetch from hub failed, trying cache", "error", err)

	store := cache.NewSQLiteStore(filepath.Join(config.Dir(ctx.ConfigPath), "cache.db"))
	if cerr := store.Init(); cerr != nil {
		return nil, "", err
	}
	defer store.Close()
	sched, updated, cerr := store.GetSchedule(cfg.Entity)
	if cerr != nil {
		return nil, "", err
	}
	return sched, "cached " + updated.Format("2006-01-02 15:04"), nil
}

func titleDay(day string) string {
	if day == "" {
		return day
	}
	return strings.ToUpper(day[:1]) + day[1:]
}
