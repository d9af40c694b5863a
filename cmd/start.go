package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli/handlers"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start [n]",
	Short: "Start a stopwatch",
	Long: `Start the stopwatch at position n, or the selected one, and select it.

With stop_all_on_start = true in the config file, every other
stopwatch is stopped first.

Examples:
  chrono start
  chrono start 2`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.StartStopwatch(getDeps(), optionalArg(args))
	},
}

// toggleCmd represents the toggle command
var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Start or stop the selected stopwatch",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ToggleSelected(getDeps())
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(toggleCmd)
}

// optionalArg returns the first argument, or "" when there is none
func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
