package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/chrono/internal/cli"
)

// ShowConfig displays the current configuration
func ShowConfig(deps *cli.Deps) {
	if deps.Services == nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config location")
		deps.Exit(1)
		return
	}
	cfg := deps.Services.Config.Get()
	path := deps.Services.Config.GetPath()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", path)
	if deps.Services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "theme:               %s\n", cfg.Theme)
	_, _ = fmt.Fprintf(deps.Stdout, "stop_all_on_start:   %t\n", cfg.StopAllOnStart)
	_, _ = fmt.Fprintf(deps.Stdout, "confirm_actions:     %t\n", cfg.ConfirmActions)
	_, _ = fmt.Fprintf(deps.Stdout, "initial_stopwatches: %d\n", cfg.InitialStopwatches)
	_, _ = fmt.Fprintf(deps.Stdout, "log_level:           %s\n", cfg.LogLevel)
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps) {
	if deps.Services == nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config location")
		deps.Exit(1)
		return
	}
	if err := deps.Services.Config.Init(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	path := deps.Services.Config.GetPath()
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", path)
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}
