package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli/handlers"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the selected stopwatch to zero",
	Long: `Reset the selected stopwatch to zero.

A running stopwatch keeps running and counts up from zero.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ResetSelected(getDeps())
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
