// Package stopwatch implements named stopwatches and the ordered collection
// that owns them, including rehydration of a persisted session.
//
// Methods take the current instant explicitly. Instants obtained from
// time.Now carry a monotonic reading, so elapsed time is unaffected by
// wall-clock adjustments while a stopwatch runs.
package stopwatch

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stopwatch errors
var (
	ErrNotFound    = errors.New("stopwatch not found")
	ErrInvalidName = errors.New("stopwatch name cannot be empty")
	ErrNoSelection = errors.New("no stopwatch selected")
)

// Stopwatch accumulates the time spent in running intervals.
// The zero value is not usable; create one with New.
type Stopwatch struct {
	id          string
	name        string
	accumulated time.Duration // total of completed intervals
	startedAt   time.Time     // start of the current interval, valid while running
	running     bool
}

// New creates a stopped stopwatch with no elapsed time.
func New(name string) *Stopwatch {
	return &Stopwatch{
		id:   uuid.New().String(),
		name: name,
	}
}

// Restore creates a stopwatch with a previously accumulated total.
// A running stopwatch continues counting from now.
func Restore(name string, accumulated time.Duration, running bool, now time.Time) *Stopwatch {
	sw := New(name)
	if accumulated > 0 {
		sw.accumulated = accumulated
	}
	if running {
		sw.Start(now)
	}
	return sw
}

// ID returns the stopwatch identity. It is stable for the lifetime of the process.
func (s *Stopwatch) ID() string { return s.id }

// Name returns the display name.
func (s *Stopwatch) Name() string { return s.name }

// IsRunning reports whether an interval is in progress.
func (s *Stopwatch) IsRunning() bool { return s.running }

// Start begins a running interval. No-op if already running.
func (s *Stopwatch) Start(now time.Time) {
	if s.running {
		return
	}
	s.startedAt = now
	s.running = true
}

// Stop closes the current interval and adds it to the total. No-op if stopped.
func (s *Stopwatch) Stop(now time.Time) {
	if !s.running {
		return
	}
	s.accumulated += since(s.startedAt, now)
	s.startedAt = time.Time{}
	s.running = false
}

// Reset zeroes the total. A running stopwatch keeps running, measuring from now.
func (s *Stopwatch) Reset(now time.Time) {
	s.accumulated = 0
	if s.running {
		s.startedAt = now
	}
}

// Elapsed returns the total plus the current interval, if running.
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	if s.running {
		return s.accumulated + since(s.startedAt, now)
	}
	return s.accumulated
}

// Rename replaces the name. Returns ErrInvalidName for blank names.
func (s *Stopwatch) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	s.name = name
	return nil
}

// since never goes negative, so Elapsed is non-decreasing even if now
// precedes the start instant.
func since(start, now time.Time) time.Duration {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return d
}

// FormatElapsed renders d as HH:MM:SS.cc (hundredths of a second).
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	cs := int64(d / (10 * time.Millisecond))
	hours := cs / 360000
	minutes := (cs / 6000) % 60
	seconds := (cs / 100) % 60
	return fmt.Sprintf("%02d:%02d:%02d.%02d", hours, minutes, seconds, cs%100)
}
