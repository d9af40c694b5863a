// Package snapshot defines the on-disk session document and reads and writes it.
//
// The document is JSON:
//
//	{
//	  "stopwatches": [{"name": "Work", "time": 12.5, "running": true, "active": true}],
//	  "last_modified": "2024-01-15T10:30:00.123456+01:00"
//	}
//
// A bare array of stopwatch objects (no wrapper, no last_modified) is also accepted.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/xolan/chrono/internal/osutil"
)

const (
	// SessionFile is the name of the JSON session file
	SessionFile = "session.json"
	// DefaultName is used for entries whose name is missing or blank
	DefaultName = "Stopwatch"
)

// ErrInvalidFormat is returned when the document does not have the expected shape.
var ErrInvalidFormat = errors.New("invalid snapshot format")

// Entry is one persisted stopwatch.
type Entry struct {
	Name    string  `json:"name"`
	Time    float64 `json:"time"` // elapsed seconds at save time
	Running bool    `json:"running"`
	Active  bool    `json:"active"` // selected
}

// Snapshot is the persisted state of all stopwatches.
type Snapshot struct {
	Stopwatches  []Entry `json:"stopwatches"`
	LastModified string  `json:"last_modified,omitempty"`
}

// LoadError reports a snapshot that could not be read or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to load snapshot: %v", e.Err)
	}
	return fmt.Sprintf("failed to load snapshot %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// GetSessionPath returns the path to the session file.
// Creates the app directory if it doesn't exist.
func GetSessionPath() (string, error) {
	return osutil.AppFile(SessionFile)
}

// FormatTimestamp formats a wall-clock instant for last_modified.
func FormatTimestamp(t time.Time) string {
	return t.Round(0).Format(time.RFC3339Nano)
}

// timestampLayouts are the ISO 8601 shapes accepted for last_modified.
// Fractional seconds are accepted by all of them.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO 8601 timestamp. Timestamps without a zone
// are interpreted in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// SavedAt returns the parsed last_modified instant.
// ok is false when the field is absent or unparsable.
func (s Snapshot) SavedAt(loc *time.Location) (t time.Time, ok bool, err error) {
	if s.LastModified == "" {
		return time.Time{}, false, nil
	}
	t, err = ParseTimestamp(s.LastModified, loc)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// Decode parses a session document. Missing or mistyped per-entry fields
// fall back to defaults; a document of the wrong shape returns ErrInvalidFormat.
func Decode(data []byte) (Snapshot, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Snapshot{}, fmt.Errorf("%w: empty document", ErrInvalidFormat)
	}

	var snap Snapshot
	var rawEntries []json.RawMessage

	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &rawEntries); err != nil {
			return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	case '{':
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(data, &doc); err != nil {
			return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		raw, ok := doc["stopwatches"]
		if !ok {
			return Snapshot{}, fmt.Errorf("%w: missing \"stopwatches\"", ErrInvalidFormat)
		}
		if err := json.Unmarshal(raw, &rawEntries); err != nil {
			return Snapshot{}, fmt.Errorf("%w: \"stopwatches\" is not a list", ErrInvalidFormat)
		}
		// A last_modified of the wrong type only disables gap correction.
		if lm, ok := doc["last_modified"]; ok {
			_ = json.Unmarshal(lm, &snap.LastModified)
		}
	default:
		return Snapshot{}, fmt.Errorf("%w: expected an object or a list", ErrInvalidFormat)
	}

	snap.Stopwatches = make([]Entry, 0, len(rawEntries))
	for i, raw := range rawEntries {
		e, err := decodeEntry(raw)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: stopwatch %d: %v", ErrInvalidFormat, i+1, err)
		}
		snap.Stopwatches = append(snap.Stopwatches, e)
	}
	return snap, nil
}

func decodeEntry(raw json.RawMessage) (Entry, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Entry{}, errors.New("expected an object")
	}

	e := Entry{Name: DefaultName}

	var name string
	if err := json.Unmarshal(fields["name"], &name); err == nil && strings.TrimSpace(name) != "" {
		e.Name = name
	}

	var secs float64
	if err := json.Unmarshal(fields["time"], &secs); err == nil && secs > 0 && !math.IsInf(secs, 0) {
		e.Time = secs
	}

	_ = json.Unmarshal(fields["running"], &e.Running)
	_ = json.Unmarshal(fields["active"], &e.Active)
	return e, nil
}

// Encode renders the snapshot as indented JSON.
func Encode(snap Snapshot) ([]byte, error) {
	if snap.Stopwatches == nil {
		snap.Stopwatches = []Entry{}
	}
	return json.MarshalIndent(snap, "", "  ")
}

// Load reads and decodes the session file.
// Returns nil if the file doesn't exist (first run).
// Any other failure is a *LoadError.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	snap, err := Decode(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return &snap, nil
}

// Save writes the snapshot to path, keeping a rotated backup of the previous file.
// Uses atomic write pattern (write to temp file, then rename).
func Save(path string, snap Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}

	if err := CreateBackup(path); err != nil {
		return fmt.Errorf("failed to back up session: %w", err)
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	return nil
}
