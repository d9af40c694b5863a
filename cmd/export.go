package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/chrono/internal/cli/handlers"
)

// exportCmd represents the export parent command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stopwatches to various formats",
	Long: `Export stopwatches for programmatic use.

Available formats:
  json    Export as JSON
  yaml    Export as YAML
  csv     Export as CSV

Examples:
  chrono export json > stopwatches.json
  chrono export csv --running`,
}

// exportJSONCmd represents the export json command
var exportJSONCmd = &cobra.Command{
	Use:   "json",
	Short: "Export stopwatches as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ExportJSON(getDeps(), runningOnly(cmd))
	},
}

// exportYAMLCmd represents the export yaml command
var exportYAMLCmd = &cobra.Command{
	Use:   "yaml",
	Short: "Export stopwatches as YAML",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ExportYAML(getDeps(), runningOnly(cmd))
	},
}

// exportCSVCmd represents the export csv command
var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export stopwatches as CSV",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ExportCSV(getDeps(), runningOnly(cmd))
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportJSONCmd)
	exportCmd.AddCommand(exportYAMLCmd)
	exportCmd.AddCommand(exportCSVCmd)

	exportCmd.PersistentFlags().Bool("running", false, "Only export running stopwatches")
}

func runningOnly(cmd *cobra.Command) bool {
	running, _ := cmd.Flags().GetBool("running")
	return running
}
