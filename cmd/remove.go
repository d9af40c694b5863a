package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli/handlers"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:     "remove <n>",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a stopwatch",
	Long: `Remove the stopwatch at position n.

If it was selected, the selection moves to the stopwatch above it,
or to the one below when it was first.

Examples:
  chrono remove 2`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.RemoveStopwatch(getDeps(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
