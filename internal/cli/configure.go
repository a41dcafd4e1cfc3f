package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/petdoor-tools/doorsched/internal/config"
	"github.com/petdoor-tools/doorsched/internal/keyring"
	"github.com/petdoor-tools/doorsched/internal/logger"
	"github.com/petdoor-tools/doorsched/internal/transport"
)

type ConfigureCmd struct{}

// colorResetHint documents the blank-resets behavior: Normalize refills an
// empty color field with its default before the config is saved.
func colorResetHint(def string) string {
	return fmt.Sprintf("Hex color; clear the field to reset to the default (%s)", def)
}

func (c *ConfigureCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	token := ctx.Token()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Hub URL").
				Description("Home Assistant base URL").
				Value(&cfg.Hub.URL),
			huh.NewInput().
				Title("Access token").
				Description("Long-lived access token").
				EchoMode(huh.EchoModePassword).
				Value(&token),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	entity := cfg.Entity
	if picked, ok := c.pickEntity(ctx, token); ok {
		entity = picked
	} else {
		manual := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Schedule entity").
					Description("e.g. binary_sensor.petdoor_inside_schedule").
					Value(&entity),
			),
		)
		if err := manual.Run(); err != nil {
			return err
		}
	}
	cfg.Entity = entity

	colors := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Slot color").
				Description(colorResetHint(config.DefaultSlotColor)).
				Value(&cfg.SlotColor),
			huh.NewInput().
				Title("Active slot color").
				Description(colorResetHint(config.DefaultActiveSlotColor)).
				Value(&cfg.ActiveSlotColor),
			huh.NewInput().
				Title("Removal preview color").
				Description(colorResetHint(config.DefaultRemovalColor)).
				Value(&cfg.RemovalColor),
		),
	)
	if err := colors.Run(); err != nil {
		return err
	}

	if token != "" {
		if err := keyring.SetToken(token); err != nil {
			logger.Warn("keyring unavailable, storing token in config file", "error", err)
			cfg.Hub.Token = token
		} else {
			cfg.Hub.Token = ""
		}
	}

	cfg.Normalize()
	if err := cfg.Save(ctx.ConfigPath); err != nil {
		return err
	}
	fmt.Printf("Configuration saved to %s\n", ctx.ConfigPath)
	return nil
}

// pickEntity offers the hub's schedule sensors as a selection list. A hub
// that is down or has no schedules falls back to manual entry.
func (c *ConfigureCmd) pickEntity(ctx *Context, token string) (string, bool) {
	dialCtx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	hub, err := transport.Dial(dialCtx, ctx.Config.Hub.URL, token)
	if err != nil {
		logger.Warn("hub connection failed during configure", "error", err)
		return "", false
	}
	defer hub.Close()

	infos, err := hub.ListSchedules(dialCtx)
	if err != nil || len(infos) == 0 {
		return "", false
	}

	opts := make([]huh.Option[string], 0, len(infos))
	for _, info := range infos {
		label := info.Name
		if label == "" {
			label = info.ID
		}
		opts = append(opts, huh.NewOption(label, info.ID))
	}
	var entity string
	pick := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Schedule sensor").
				Options(opts...).
				Value(&entity),
		),
	)
	if err := pick.Run(); err != nil {
		return "", false
	}
	return entity, entity != ""
}
