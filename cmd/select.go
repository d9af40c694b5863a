package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli/handlers"
)

// selectCmd represents the select command
var selectCmd = &cobra.Command{
	Use:   "select <n>",
	Short: "Select a stopwatch",
	Long: `Select the stopwatch at position n. Commands without a position,
such as toggle, reset and rename, act on the selected stopwatch.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.SelectStopwatch(getDeps(), args[0])
	},
}

// upCmd represents the up command
var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Select the previous stopwatch",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.MoveSelection(getDeps(), -1)
	},
}

// downCmd represents the down command
var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Select the next stopwatch",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.MoveSelection(getDeps(), 1)
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
}
