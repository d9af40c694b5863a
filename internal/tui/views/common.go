// Package views holds the screens of the chrono TUI.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/chrono/internal/service"
	"github.com/xolan/chrono/internal/stopwatch"
)

// LoadStatus describes the outcome of a session load for the status line.
// The bool reports whether it is an error.
func LoadStatus(session *service.SessionService, res service.LoadResult, err error) (string, bool) {
	if err != nil {
		return fmt.Sprintf("Could not load session: %v", err), true
	}
	if res.Seeded {
		return fmt.Sprintf("New session with %d %s", res.Count, pluralize("stopwatch", res.Count)), false
	}

	text := fmt.Sprintf("Loaded %d %s", res.Count, pluralize("stopwatch", res.Count))
	if res.Gap > 0 && countRunning(session.List()) > 0 {
		text += fmt.Sprintf(", running ones credited %s", stopwatch.FormatElapsed(res.Gap))
	}
	return text, false
}

func countRunning(infos []stopwatch.Info) int {
	n := 0
	for _, info := range infos {
		if info.Running {
			n++
		}
	}
	return n
}

// padRight pads s with spaces to a display width of width
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if strings.HasSuffix(word, "ch") {
		return word + "es"
	}
	return word + "s"
}
