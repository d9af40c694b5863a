package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/tui"
)

// runTUIFunc starts the interactive UI; replaced in tests
var runTUIFunc = tui.Run

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive Terminal User Interface for chrono.

Keyboard shortcuts:
  - j/k or arrows: Move the selection
  - space: Start or stop the selected stopwatch
  - a: Add a stopwatch
  - d: Delete the selected stopwatch
  - r: Reset the selected stopwatch
  - n: Rename the selected stopwatch
  - t: Switch color theme
  - S/L: Save or reload the session
  - s: Settings
  - ?: Show help
  - q: Save and quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	// Add --tui flag to root command for quick access
	rootCmd.PersistentFlags().Bool("tui", false, "Launch interactive terminal UI")
}

// runTUI initializes and runs the TUI application
func runTUI() {
	deps := getDeps()
	if deps.Services == nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine session location")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
		deps.Exit(1)
		return
	}

	if err := runTUIFunc(deps.Services); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error running TUI: %v\n", err)
		deps.Exit(1)
	}
}

// CheckTUIFlag checks if the --tui flag is set and runs the TUI if so.
// Returns true if the TUI was launched, false otherwise.
func CheckTUIFlag(cmd *cobra.Command) bool {
	tuiFlag, _ := cmd.Root().PersistentFlags().GetBool("tui")
	if tuiFlag {
		runTUI()
		return true
	}
	return false
}
