package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for chrono.

chrono works without a configuration file. All settings have defaults:
  - theme: dracula
  - stop_all_on_start: false
  - confirm_actions: true
  - initial_stopwatches: 3
  - log_level: normal

Examples:
  chrono config          Show all current settings
  chrono config --init   Create a commented sample config file

Configuration file location:
  ~/.config/chrono/config.toml       Linux/macOS
  %APPDATA%\chrono\config.toml       Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initFlag, _ := cmd.Flags().GetBool("init")
		if initFlag {
			handlers.InitConfig(getDeps())
			return
		}
		handlers.ShowConfig(getDeps())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().Bool("init", false, "Create a sample config file")
}
