package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli/handlers"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [backup_number]",
	Short: "Restore the session from a backup file",
	Long: `Restore the saved session from a backup.

Every save keeps the previous session as a backup (up to 3).
By default, restores from the most recent backup (.bak.1).

Examples:
  chrono restore       Restore from most recent backup
  chrono restore 2     Restore from backup #2`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.RestoreSession(getDeps(), args)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
