package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli/handlers"
)

// renameCmd represents the rename command
var renameCmd = &cobra.Command{
	Use:   "rename <name>",
	Short: "Rename a stopwatch",
	Long: `Rename the selected stopwatch, or the one at --index.

Examples:
  chrono rename standup
  chrono rename --index 2 code review`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		index, _ := cmd.Flags().GetInt("index")
		position := ""
		if cmd.Flags().Changed("index") {
			position = strconv.Itoa(index)
		}
		handlers.RenameStopwatch(getDeps(), strings.Join(args, " "), position)
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
	renameCmd.Flags().IntP("index", "i", 0, "Position of the stopwatch to rename (default: selected)")
}
