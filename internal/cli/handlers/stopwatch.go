package handlers

import (
	"errors"
	"fmt"

	"github.com/xolan/chrono/internal/cli"
	"github.com/xolan/chrono/internal/service"
	"github.com/xolan/chrono/internal/stopwatch"
)

// loadSession loads the saved session for a command. A session that cannot
// be read is reported as a warning and the command continues with an empty
// collection.
func loadSession(deps *cli.Deps) (*service.SessionService, bool) {
	if deps.Services == nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine session location")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
		deps.Exit(1)
		return nil, false
	}

	session := deps.Services.Session
	if _, err := session.Load(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Warning: Could not load the saved session, starting empty")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'chrono restore' to recover a backup")
	}
	return session, true
}

func saveSession(deps *cli.Deps, session *service.SessionService) bool {
	if err := session.Save(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to save session")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that the file is writable: %s\n", session.GetPath())
		deps.Exit(1)
		return false
	}
	return true
}

// resolveTarget returns the stopwatch at a 1-based position argument,
// or the selected stopwatch when arg is empty.
func resolveTarget(deps *cli.Deps, session *service.SessionService, arg string) (stopwatch.Info, bool) {
	if arg == "" {
		info, ok := session.Selected()
		if !ok {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: No stopwatch selected")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Select one with 'chrono select <n>' or add one with 'chrono add'")
			deps.Exit(1)
			return stopwatch.Info{}, false
		}
		return info, true
	}

	idx, err := cli.ParsePosition(arg, session.Len())
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'chrono list' to see stopwatch positions")
		deps.Exit(1)
		return stopwatch.Info{}, false
	}
	return session.List()[idx], true
}

func printSelected(deps *cli.Deps, session *service.SessionService) {
	if info, ok := session.Selected(); ok {
		_, _ = fmt.Fprintf(deps.Stdout, "Selected: [%d] %s\n", info.Index+1, info.Name)
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "No stopwatch selected")
	}
}

func describe(info stopwatch.Info) string {
	return fmt.Sprintf("[%d] %s (%s)", info.Index+1, info.Name, stopwatch.FormatElapsed(info.Elapsed))
}

// ListStopwatches prints every stopwatch with its elapsed time
func ListStopwatches(deps *cli.Deps) {
	session, ok := loadSession(deps)
	if !ok {
		return
	}

	infos := session.List()
	if len(infos) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No stopwatches")
		_, _ = fmt.Fprintln(deps.Stdout, "Add one with: chrono add [name]")
		return
	}

	for _, line := range cli.FormatStopwatchList(infos) {
		_, _ = fmt.Fprintln(deps.Stdout, line)
	}
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, cli.FormatSummary(infos))
}

// AddStopwatch adds a stopwatch and selects it. An empty name gets a default.
func AddStopwatch(deps *cli.Deps, name string) {
	session, ok := loadSession(deps)
	if !ok {
		return
	}

	info := session.Add(name)
	if !saveSession(deps, session) {
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Added: [%d] %s\n", info.Index+1, info.Name)
}

// RemoveStopwatch removes the stopwatch at a 1-based position
func RemoveStopwatch(deps *cli.Deps, arg string) {
	session, ok := loadSession(deps)
	if !ok {
		return
	}
	target, ok := resolveTarget(deps, session, arg)
	if !ok {
		return
	}

	removed, err := session.Remove(target.ID)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}
	if !saveSession(deps, session) {
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Removed: %s\n", describe(removed))
	printSelected(deps, session)
}

// SelectStopwatch selects the stopwatch at a 1-based position
func SelectStopwatch(deps *cli.Deps, arg string) {
	session, ok := loadSession(deps)
	if !ok {
		return
	}
	target, ok := resolveTarget(deps, session, arg)
	if !ok {
		return
	}

	if _, err := session.Select(target.ID); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}
	if !saveSession(deps, session) {
		return
	}
	printSelected(deps, session)
}

// MoveSelection moves the selection by delta positions without wrapping
func MoveSelection(deps *cli.Deps, delta int) {
	session, ok := loadSession(deps)
	if !ok {
		return
	}

	session.SelectRelative(delta)
	if !saveSession(deps, session) {
		return
	}
	printSelected(deps, session)
}

// ToggleSelected starts or stops the selected stopwatch
func ToggleSelected(deps *cli.Deps) {
	session, ok := loadSession(deps)
	if !ok {
		return
	}

	info, err := session.Toggle()
	if err != nil {
		if errors.Is(err, service.ErrNothingSelected) {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: No stopwatch selected")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Select one with 'chrono select <n>'")
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}
	if !saveSession(deps, session) {
		return
	}

	if info.Running {
		_, _ = fmt.Fprintf(deps.Stdout, "Started: %s\n", describe(info))
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Stopped: %s\n", describe(info))
	}
}

// StartStopwatch starts the stopwatch at a 1-based position, or the selected one
func StartStopwatch(deps *cli.Deps, arg string) {
	session, ok := loadSession(deps)
	if !ok {
		return
	}
	target, ok := resolveTarget(deps, session, arg)
	if !ok {
		return
	}

	info, err := session.Start(target.ID)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}
	if !saveSession(deps, session) {
		return
	}

	if target.Running {
		_, _ = fmt.Fprintf(deps.Stdout, "Already running: %s\n", describe(info))
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Started: %s\n", describe(info))
}

// StopStopwatch stops the stopwatch at a 1-based position, or the selected one
func StopStopwatch(deps *cli.Deps, arg string) {
	session, ok := loadSession(deps)
	if !ok {
		return
	}
	target, ok := resolveTarget(deps, session, arg)
	if !ok {
		return
	}

	info, err := session.Stop(target.ID)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}
	if !saveSession(deps, session) {
		return
	}

	if !target.Running {
		_, _ = fmt.Fprintf(deps.Stdout, "Not running: %s\n", describe(info))
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Stopped: %s\n", describe(info))
}

// StopAll stops every running stopwatch
func StopAll(deps *cli.Deps) {
	session, ok := loadSession(deps)
	if !ok {
		return
	}

	n := session.StopAll()
	if !saveSession(deps, session) {
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Stopped %d %s\n", n, cli.Pluralize("stopwatch", n))
}

// ResetSelected zeroes the selected stopwatch. A running stopwatch keeps running.
func ResetSelected(deps *cli.Deps) {
	session, ok := loadSession(deps)
	if !ok {
		return
	}

	info, err := session.Reset()
	if err != nil {
		if errors.Is(err, service.ErrNothingSelected) {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: No stopwatch selected")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Select one with 'chrono select <n>'")
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}
	if !saveSession(deps, session) {
		return
	}

	if info.Running {
		_, _ = fmt.Fprintf(deps.Stdout, "Reset: [%d] %s (still running)\n", info.Index+1, info.Name)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Reset: [%d] %s\n", info.Index+1, info.Name)
}

// RenameStopwatch renames the stopwatch at a 1-based position, or the selected one
func RenameStopwatch(deps *cli.Deps, name, arg string) {
	session, ok := loadSession(deps)
	if !ok {
		return
	}
	target, ok := resolveTarget(deps, session, arg)
	if !ok {
		return
	}

	info, err := session.Rename(target.ID, name)
	if err != nil {
		if errors.Is(err, stopwatch.ErrInvalidName) {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Name cannot be empty")
			_, _ = fmt.Fprintln(deps.Stderr, "Usage: chrono rename <name> [--index n]")
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		}
		deps.Exit(1)
		return
	}
	if !saveSession(deps, session) {
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Renamed: %s -> %s\n", target.Name, info.Name)
}
