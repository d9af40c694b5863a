package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli/handlers"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "status"},
	Short:   "List stopwatches",
	Long: `List all stopwatches with their elapsed time.

The selected stopwatch is marked with '*'; running stopwatches with '●'.

Examples:
  chrono list
  chrono status`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ListStopwatches(getDeps())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
