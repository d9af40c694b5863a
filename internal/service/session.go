package service

import (
	"errors"
	"fmt"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/logger"
	"github.com/xolan/chrono/internal/snapshot"
	"github.com/xolan/chrono/internal/stopwatch"
)

// ErrNothingSelected is returned by operations on the selected stopwatch
// when the collection has no selection.
var ErrNothingSelected = errors.New("no stopwatch selected")

// SessionService owns the stopwatch collection and its session file.
// It applies configuration policies and logs every mutation.
type SessionService struct {
	path       string
	config     config.Config
	log        *logger.Logger
	collection *stopwatch.Collection
}

// NewSessionService creates a SessionService for the session file at path.
// The collection starts empty; call Load to read the file.
func NewSessionService(path string, cfg config.Config, log *logger.Logger, opts ...stopwatch.Option) *SessionService {
	if log == nil {
		log = logger.Discard()
	}
	return &SessionService{
		path:       path,
		config:     cfg,
		log:        log,
		collection: stopwatch.NewCollection(opts...),
	}
}

// GetPath returns the path to the session file
func (s *SessionService) GetPath() string {
	return s.path
}

// SetConfig replaces the configuration used for policies such as stop_all_on_start
func (s *SessionService) SetConfig(cfg config.Config) {
	s.config = cfg
}

// SetLogger replaces the logger used for session events
func (s *SessionService) SetLogger(log *logger.Logger) {
	s.log = log
}

// Load reads the session file into the collection.
// A missing file seeds the configured number of stopwatches. A file that
// cannot be read or decoded leaves the collection empty; the error is
// logged and returned so callers may surface it, but the service stays usable.
func (s *SessionService) Load() (LoadResult, error) {
	snap, err := snapshot.Load(s.path)
	if err != nil {
		s.collection.Clear()
		s.log.Error("Session load failed, starting empty: %v", err)
		return LoadResult{}, err
	}

	if snap == nil {
		s.collection.Clear()
		for i := 0; i < s.config.InitialStopwatches; i++ {
			s.collection.Add("")
		}
		if id, err := s.collection.IDAt(0); err == nil {
			_ = s.collection.Select(id)
		}
		s.log.Info("No session at %s, created %d stopwatches", s.path, s.collection.Len())
		return LoadResult{Seeded: true, Count: s.collection.Len()}, nil
	}

	if _, ok, err := snap.SavedAt(s.collection.Location()); !ok && err != nil {
		s.log.Warn("Ignoring unparsable last_modified %q: %v", snap.LastModified, err)
	}

	gap := s.collection.Rehydrate(*snap)
	s.log.Info("Session loaded: %d stopwatches, gap %s", s.collection.Len(), gap)
	return LoadResult{Gap: gap, Count: s.collection.Len()}, nil
}

// Save writes the collection to the session file, rotating backups.
func (s *SessionService) Save() error {
	if err := snapshot.Save(s.path, s.collection.Serialize()); err != nil {
		s.log.Error("Session save failed: %v", err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	s.log.Debug("Session saved: %d stopwatches", s.collection.Len())
	return nil
}

// List returns all stopwatches in display order
func (s *SessionService) List() []stopwatch.Info {
	return s.collection.List()
}

// Len returns the number of stopwatches
func (s *SessionService) Len() int {
	return s.collection.Len()
}

// Selected returns the selected stopwatch, if any
func (s *SessionService) Selected() (stopwatch.Info, bool) {
	return s.collection.Selected()
}

// IDAt resolves a 0-based position to a stopwatch ID
func (s *SessionService) IDAt(index int) (string, error) {
	return s.collection.IDAt(index)
}

// Add creates a stopwatch and selects it. A blank name gets a default.
func (s *SessionService) Add(name string) stopwatch.Info {
	id := s.collection.Add(name)
	info, _ := s.collection.Get(id)
	s.log.Info("Stopwatch added: %s", info.Name)
	return info
}

// Remove deletes a stopwatch and returns it as it was before removal.
func (s *SessionService) Remove(id string) (stopwatch.Info, error) {
	info, err := s.collection.Get(id)
	if err != nil {
		return stopwatch.Info{}, err
	}
	if err := s.collection.Remove(id); err != nil {
		return stopwatch.Info{}, err
	}
	s.log.Info("Stopwatch removed: %s", info.Name)
	return info, nil
}

// Select makes a stopwatch the selected one
func (s *SessionService) Select(id string) (stopwatch.Info, error) {
	if err := s.collection.Select(id); err != nil {
		return stopwatch.Info{}, err
	}
	info, _ := s.collection.Selected()
	s.log.Debug("Stopwatch selected: %s", info.Name)
	return info, nil
}

// SelectRelative moves the selection up (negative) or down (positive)
func (s *SessionService) SelectRelative(delta int) {
	s.collection.SelectRelative(delta)
}

// Toggle starts or stops the selected stopwatch.
// When stop_all_on_start is set, starting one stops all the others first.
func (s *SessionService) Toggle() (stopwatch.Info, error) {
	info, ok := s.collection.Selected()
	if !ok {
		return stopwatch.Info{}, ErrNothingSelected
	}
	if !info.Running && s.config.StopAllOnStart {
		s.stopAll()
	}
	s.collection.ToggleSelected()
	info, _ = s.collection.Selected()
	s.logRunState(info)
	return info, nil
}

// Start starts a stopwatch and selects it, honoring stop_all_on_start.
func (s *SessionService) Start(id string) (stopwatch.Info, error) {
	info, err := s.collection.Get(id)
	if err != nil {
		return stopwatch.Info{}, err
	}
	if !info.Running && s.config.StopAllOnStart {
		s.stopAll()
	}
	if err := s.collection.Start(id); err != nil {
		return stopwatch.Info{}, err
	}
	info, _ = s.collection.Get(id)
	s.logRunState(info)
	return info, nil
}

// Stop stops a stopwatch and selects it.
func (s *SessionService) Stop(id string) (stopwatch.Info, error) {
	if err := s.collection.Stop(id); err != nil {
		return stopwatch.Info{}, err
	}
	info, _ := s.collection.Get(id)
	s.logRunState(info)
	return info, nil
}

// StopAll stops every running stopwatch and returns how many were running.
func (s *SessionService) StopAll() int {
	n := s.stopAll()
	s.log.Info("Stopped %d stopwatches", n)
	return n
}

func (s *SessionService) stopAll() int {
	n := 0
	for _, info := range s.collection.List() {
		if info.Running {
			n++
		}
	}
	s.collection.StopAll()
	return n
}

// Reset zeroes the selected stopwatch. A running stopwatch keeps running.
func (s *SessionService) Reset() (stopwatch.Info, error) {
	if _, ok := s.collection.Selected(); !ok {
		return stopwatch.Info{}, ErrNothingSelected
	}
	s.collection.ResetSelected()
	info, _ := s.collection.Selected()
	s.log.Info("Stopwatch reset: %s", info.Name)
	return info, nil
}

// Rename renames a stopwatch. Blank names are rejected with stopwatch.ErrInvalidName.
func (s *SessionService) Rename(id, name string) (stopwatch.Info, error) {
	old, err := s.collection.Get(id)
	if err != nil {
		return stopwatch.Info{}, err
	}
	if err := s.collection.Rename(id, name); err != nil {
		return stopwatch.Info{}, err
	}
	info, _ := s.collection.Get(id)
	s.log.Info("Stopwatch renamed: %s -> %s", old.Name, info.Name)
	return info, nil
}

// RenameSelected renames the selected stopwatch.
func (s *SessionService) RenameSelected(name string) (stopwatch.Info, error) {
	info, ok := s.collection.Selected()
	if !ok {
		return stopwatch.Info{}, ErrNothingSelected
	}
	return s.Rename(info.ID, name)
}

// Export returns every stopwatch as an export record
func (s *SessionService) Export() []ExportRecord {
	list := s.collection.List()
	records := make([]ExportRecord, len(list))
	for i, info := range list {
		records[i] = NewExportRecord(info)
	}
	return records
}

// Backups lists the available session backups
func (s *SessionService) Backups() ([]snapshot.BackupInfo, error) {
	return snapshot.ListBackups(s.path)
}

// Restore replaces the session file with backup n and reloads it.
func (s *SessionService) Restore(n int) (LoadResult, error) {
	if err := snapshot.RestoreBackup(s.path, n); err != nil {
		return LoadResult{}, err
	}
	s.log.Info("Session restored from backup %d", n)
	return s.Load()
}

func (s *SessionService) logRunState(info stopwatch.Info) {
	if info.Running {
		s.log.Info("Stopwatch started: %s", info.Name)
	} else {
		s.log.Info("Stopwatch stopped: %s at %s", info.Name, stopwatch.FormatElapsed(info.Elapsed))
	}
}
