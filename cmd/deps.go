package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/logger"
	"github.com/xolan/chrono/internal/osutil"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps = cli.Deps

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	cli.SetDeps(d)
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	cli.ResetDeps()
}

// getDeps returns the dependencies shared by all commands.
func getDeps() *Deps {
	return cli.GetDeps()
}

// activeLog is the file logger opened by --log, closed after the command runs
var activeLog *logger.Logger

// setupLogging opens chrono.log in the application directory when --log is
// set. The level comes from log_level in the config file.
func setupLogging(cmd *cobra.Command) {
	enabled, _ := cmd.Root().PersistentFlags().GetBool("log")
	if !enabled {
		return
	}
	d := getDeps()
	if d.Services == nil {
		return
	}

	path, err := osutil.AppFile(logger.LogFile)
	if err != nil {
		_, _ = fmt.Fprintf(d.Stderr, "Warning: Failed to determine log file location: %v\n", err)
		return
	}
	level, err := logger.ParseLevel(d.Config.LogLevel)
	if err != nil {
		level = logger.LevelNormal
	}
	log, err := logger.OpenFile(path, level)
	if err != nil {
		_, _ = fmt.Fprintf(d.Stderr, "Warning: Failed to open log file: %v\n", err)
		return
	}

	d.Services.SetLogger(log)
	activeLog = log
	log.Debug("Command: %s", cmd.CommandPath())
}

func closeLogging() {
	if activeLog == nil {
		return
	}
	if d := getDeps(); d.Services != nil {
		d.Services.SetLogger(nil)
	}
	_ = activeLog.Close()
	activeLog = nil
}
