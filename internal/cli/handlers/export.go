package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/service"
)

type exportMetadata struct {
	ExportTimestamp  time.Time `json:"export_timestamp" yaml:"export_timestamp"`
	TotalStopwatches int       `json:"total_stopwatches" yaml:"total_stopwatches"`
	RunningOnly      bool      `json:"running_only" yaml:"running_only"`
}

type exportDocument struct {
	Metadata    exportMetadata         `json:"metadata" yaml:"metadata"`
	Stopwatches []service.ExportRecord `json:"stopwatches" yaml:"stopwatches"`
}

// exportRecords loads the session and returns its records, optionally only
// the running ones.
func exportRecords(deps *cli.Deps, runningOnly bool) ([]service.ExportRecord, bool) {
	session, ok := loadSession(deps)
	if !ok {
		return nil, false
	}

	records := session.Export()
	if !runningOnly {
		return records, true
	}
	filtered := make([]service.ExportRecord, 0, len(records))
	for _, r := range records {
		if r.Running {
			filtered = append(filtered, r)
		}
	}
	return filtered, true
}

func newExportDocument(records []service.ExportRecord, runningOnly bool) exportDocument {
	return exportDocument{
		Metadata: exportMetadata{
			ExportTimestamp:  time.Now(),
			TotalStopwatches: len(records),
			RunningOnly:      runningOnly,
		},
		Stopwatches: records,
	}
}

// ExportJSON writes the stopwatches as indented JSON
func ExportJSON(deps *cli.Deps, runningOnly bool) {
	records, ok := exportRecords(deps, runningOnly)
	if !ok {
		return
	}

	encoder := json.NewEncoder(deps.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(newExportDocument(records, runningOnly)); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to encode JSON output")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}

// ExportYAML writes the stopwatches as YAML
func ExportYAML(deps *cli.Deps, runningOnly bool) {
	records, ok := exportRecords(deps, runningOnly)
	if !ok {
		return
	}

	encoder := yaml.NewEncoder(deps.Stdout)
	encoder.SetIndent(2)
	err := encoder.Encode(newExportDocument(records, runningOnly))
	if err == nil {
		err = encoder.Close()
	}
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to encode YAML output")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}

// ExportCSV writes the stopwatches as CSV with a header row
func ExportCSV(deps *cli.Deps, runningOnly bool) {
	records, ok := exportRecords(deps, runningOnly)
	if !ok {
		return
	}

	writer := csv.NewWriter(deps.Stdout)
	rows := [][]string{{"name", "elapsed_seconds", "elapsed", "running", "selected"}}
	for _, r := range records {
		rows = append(rows, []string{
			r.Name,
			strconv.FormatFloat(r.ElapsedSeconds, 'f', 2, 64),
			r.Elapsed,
			strconv.FormatBool(r.Running),
			strconv.FormatBool(r.Selected),
		})
	}

	if err := writer.WriteAll(rows); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to write CSV output")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}
