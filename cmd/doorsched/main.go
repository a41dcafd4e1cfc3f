package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/petdoor-tools/doorsched/internal/cli"
	"github.com/petdoor-tools/doorsched/internal/config"
	"github.com/petdoor-tools/doorsched/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Tui       cli.TuiCmd       `cmd:"" help:"Open the interactive schedule editor." default:"1"`
	Show      cli.ShowCmd      `cmd:"" help:"Print the effective weekly schedule."`
	Configure cli.ConfigureCmd `cmd:"" help:"Set up the hub connection and entity."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("doorsched"),
		kong.Description("Weekly schedule editor for Power Pet Door sensors"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	path := CLI.Config
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: config.Dir(path)}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Config:     cfg,
		ConfigPath: path,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
