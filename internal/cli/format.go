// Package cli provides the CLI presentation layer for the chrono application.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/xolan/chrono/internal/stopwatch"
)

// Markers used in list output
const (
	SelectedMarker = "*"
	RunningMarker  = "●"
	StoppedMarker  = "○"
)

// FormatStopwatch formats one stopwatch as a list line, padding the name to nameWidth.
// Example: "[1] * ● Work      00:01:02.00"
func FormatStopwatch(info stopwatch.Info, nameWidth int) string {
	selected := " "
	if info.Selected {
		selected = SelectedMarker
	}
	state := StoppedMarker
	if info.Running {
		state = RunningMarker
	}
	pad := nameWidth - runewidth.StringWidth(info.Name)
	if pad < 0 {
		pad = 0
	}
	return fmt.Sprintf("[%d] %s %s %s%s  %s",
		info.Index+1, selected, state, info.Name, strings.Repeat(" ", pad),
		stopwatch.FormatElapsed(info.Elapsed))
}

// FormatStopwatchList formats all stopwatches with aligned elapsed columns
func FormatStopwatchList(infos []stopwatch.Info) []string {
	width := 0
	for _, info := range infos {
		if n := runewidth.StringWidth(info.Name); n > width {
			width = n
		}
	}
	lines := make([]string, len(infos))
	for i, info := range infos {
		lines[i] = FormatStopwatch(info, width)
	}
	return lines
}

// FormatSummary describes the collection size and how many stopwatches are running.
// Example: "3 stopwatches, 1 running"
func FormatSummary(infos []stopwatch.Info) string {
	running := 0
	for _, info := range infos {
		if info.Running {
			running++
		}
	}
	return fmt.Sprintf("%d %s, %d running", len(infos), Pluralize("stopwatch", len(infos)), running)
}

// ParsePosition parses a 1-based position argument and returns the 0-based index.
// count is the number of stopwatches available.
func ParsePosition(arg string, count int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid position '%s', expected a number", arg)
	}
	if count == 0 {
		return 0, fmt.Errorf("no stopwatches exist")
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("position %d is out of range (valid: 1-%d)", n, count)
	}
	return n - 1, nil
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if strings.HasSuffix(word, "ch") {
		return word + "es"
	}
	return word + "s"
}
