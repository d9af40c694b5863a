// Package service provides the business logic layer for the chrono application.
// It wraps the stopwatch collection, the session snapshot file and the
// configuration, providing a clean API for both CLI and TUI frontends.
package service

import (
	"time"

	"github.com/xolan/chrono/internal/stopwatch"
)

// ExportRecord is one stopwatch as written by the export commands
type ExportRecord struct {
	Name           string  `json:"name" yaml:"name"`
	ElapsedSeconds float64 `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Elapsed        string  `json:"elapsed" yaml:"elapsed"`
	Running        bool    `json:"running" yaml:"running"`
	Selected       bool    `json:"selected" yaml:"selected"`
}

// LoadResult describes what happened when a session was loaded
type LoadResult struct {
	Seeded bool          // no session file existed and default stopwatches were created
	Gap    time.Duration // wall-clock time credited to running stopwatches
	Count  int           // number of stopwatches after loading
}

// NewExportRecord converts a stopwatch view into an export record
func NewExportRecord(info stopwatch.Info) ExportRecord {
	return ExportRecord{
		Name:           info.Name,
		ElapsedSeconds: info.Elapsed.Seconds(),
		Elapsed:        stopwatch.FormatElapsed(info.Elapsed),
		Running:        info.Running,
		Selected:       info.Selected,
	}
}
