package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli/handlers"
)

var rootCmd = &cobra.Command{
	Use:   "chrono",
	Short: "Multiple stopwatches in your terminal",
	Long: `chrono keeps a list of named stopwatches that survive restarts.

Stopwatches left running when chrono exits keep counting: the time that
passed while chrono was not running is credited on the next start.

Usage:
  chrono                         List stopwatches
  chrono add [name]              Add a stopwatch (selects it)
  chrono start [n] / stop [n]    Start or stop stopwatch n (default: selected)
  chrono toggle                  Start or stop the selected stopwatch
  chrono select <n>              Select stopwatch n
  chrono reset                   Reset the selected stopwatch
  chrono rename <name>           Rename the selected stopwatch
  chrono remove <n>              Remove stopwatch n
  chrono tui                     Launch the interactive terminal UI

Positions are the numbers shown in list output (starting from 1).`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLogging()
	},
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		handlers.ListStopwatches(getDeps())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("log", "l", false, "Write a log to chrono.log in the config directory")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"chrono version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
