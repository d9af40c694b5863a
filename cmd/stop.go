package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli/handlers"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop [n]",
	Short: "Stop a stopwatch",
	Long: `Stop the stopwatch at position n, or the selected one, and select it.
The elapsed time is kept.

Examples:
  chrono stop
  chrono stop 3`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.StopStopwatch(getDeps(), optionalArg(args))
	},
}

// stopAllCmd represents the stop-all command
var stopAllCmd = &cobra.Command{
	Use:   "stop-all",
	Short: "Stop every running stopwatch",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.StopAll(getDeps())
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(stopAllCmd)
}
