package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli/handlers"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a stopwatch",
	Long: `Add a stopped stopwatch at the end of the list and select it.

Without a name the stopwatch is called "Stopwatch N".

Examples:
  chrono add
  chrono add code review`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.AddStopwatch(getDeps(), strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
