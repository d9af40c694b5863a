package service

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/chrono/internal/config"
	"github.com/xolan/chrono/internal/logger"
	"github.com/xolan/chrono/internal/snapshot"
	"github.com/xolan/chrono/internal/stopwatch"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// setupSession creates a SessionService on a temp session file with a fake
// clock, and returns the log output buffer.
func setupSession(t *testing.T, cfg config.Config) (*SessionService, *fakeClock, *bytes.Buffer) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)}
	var logBuf bytes.Buffer
	path := filepath.Join(t.TempDir(), snapshot.SessionFile)
	svc := NewSessionService(path, cfg, logger.New(logger.LevelVerbose, &logBuf),
		stopwatch.WithClock(clock.Now), stopwatch.WithLocation(time.UTC))
	return svc, clock, &logBuf
}

func TestSessionService_Load_SeedsOnFirstRun(t *testing.T) {
	svc, _, logBuf := setupSession(t, config.DefaultConfig())

	result, err := svc.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Seeded || result.Count != 3 {
		t.Errorf("expected 3 seeded stopwatches, got %+v", result)
	}
	list := svc.List()
	for i, name := range []string{"Stopwatch 1", "Stopwatch 2", "Stopwatch 3"} {
		if list[i].Name != name {
			t.Errorf("list[%d].Name = %q, expected %q", i, list[i].Name, name)
		}
	}
	if info, _ := svc.Selected(); info.Index != 0 {
		t.Errorf("expected first stopwatch selected, got index %d", info.Index)
	}
	if !strings.Contains(logBuf.String(), "created 3 stopwatches") {
		t.Errorf("expected seed log, got: %s", logBuf.String())
	}
}

func TestSessionService_Load_SeedCountFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.InitialStopwatches = 0
	svc, _, _ := setupSession(t, cfg)

	result, err := svc.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Count != 0 || svc.Len() != 0 {
		t.Errorf("expected no stopwatches, got %d", svc.Len())
	}
	if _, ok := svc.Selected(); ok {
		t.Error("expected no selection")
	}
}

func TestSessionService_Load_Malformed(t *testing.T) {
	svc, _, logBuf := setupSession(t, config.DefaultConfig())
	if err := os.WriteFile(svc.GetPath(), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Load()

	var loadErr *snapshot.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *snapshot.LoadError, got %v", err)
	}
	if svc.Len() != 0 {
		t.Errorf("expected empty collection, got %d stopwatches", svc.Len())
	}
	if !strings.Contains(logBuf.String(), "[ERR]") {
		t.Errorf("expected error log, got: %s", logBuf.String())
	}

	// The service stays usable after a failed load
	svc.Add("Fresh")
	if err := svc.Save(); err != nil {
		t.Fatalf("Save() after failed load returned error: %v", err)
	}
}

func TestSessionService_Load_UnparsableTimestampWarns(t *testing.T) {
	svc, _, logBuf := setupSession(t, config.DefaultConfig())
	content := `{"stopwatches":[{"name":"A","time":5,"running":true}],"last_modified":"someday"}`
	if err := os.WriteFile(svc.GetPath(), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := svc.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Gap != 0 {
		t.Errorf("expected zero gap, got %v", result.Gap)
	}
	if !strings.Contains(logBuf.String(), "[WRN]") {
		t.Errorf("expected warning log, got: %s", logBuf.String())
	}
	info, _ := svc.Selected()
	if info.Elapsed != 5*time.Second || !info.Running {
		t.Errorf("expected running stopwatch at 5s, got %+v", info)
	}
}

func TestSessionService_SaveAndLoad_GapCorrection(t *testing.T) {
	svc, clock, _ := setupSession(t, config.DefaultConfig())
	if _, err := svc.Load(); err != nil {
		t.Fatal(err)
	}
	first, _ := svc.IDAt(0)
	if _, err := svc.Start(first); err != nil {
		t.Fatal(err)
	}
	clock.Advance(10 * time.Second)
	if err := svc.Save(); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	clock.Advance(30 * time.Second)
	reloaded := NewSessionService(svc.GetPath(), config.DefaultConfig(), nil,
		stopwatch.WithClock(clock.Now), stopwatch.WithLocation(time.UTC))
	result, err := reloaded.Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if result.Seeded {
		t.Error("existing session should not be seeded")
	}
	if result.Gap != 30*time.Second {
		t.Errorf("expected 30s gap, got %v", result.Gap)
	}
	list := reloaded.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 stopwatches, got %d", len(list))
	}
	if !list[0].Running || list[0].Elapsed != 40*time.Second {
		t.Errorf("expected running stopwatch at 40s, got %+v", list[0])
	}
	if !list[0].Selected {
		t.Error("expected the started stopwatch to stay selected")
	}
	if list[1].Running || list[1].Elapsed != 0 {
		t.Errorf("expected idle stopwatch, got %+v", list[1])
	}
}

func TestSessionService_Save_Error(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", snapshot.SessionFile)
	var logBuf bytes.Buffer
	svc := NewSessionService(path, config.DefaultConfig(), logger.New(logger.LevelNormal, &logBuf))
	svc.Add("A")

	if err := svc.Save(); err == nil {
		t.Fatal("expected error when the session directory does not exist")
	}
	if !strings.Contains(logBuf.String(), "Session save failed") {
		t.Errorf("expected save failure log, got: %s", logBuf.String())
	}
	if svc.Len() != 1 {
		t.Error("in-memory state should survive a failed save")
	}
}

func TestSessionService_AddRemoveSelect(t *testing.T) {
	svc, _, logBuf := setupSession(t, config.DefaultConfig())

	a := svc.Add("A")
	b := svc.Add("")
	c := svc.Add("C")

	if b.Name != "Stopwatch 2" {
		t.Errorf("expected default name 'Stopwatch 2', got %q", b.Name)
	}
	if !c.Selected {
		t.Error("expected the added stopwatch to be selected")
	}

	if _, err := svc.Select(b.ID); err != nil {
		t.Fatal(err)
	}
	removed, err := svc.Remove(b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed.Name != "Stopwatch 2" {
		t.Errorf("expected removed 'Stopwatch 2', got %q", removed.Name)
	}
	if info, _ := svc.Selected(); info.ID != a.ID {
		t.Errorf("expected selection on previous stopwatch A, got %q", info.Name)
	}

	svc.SelectRelative(1)
	if info, _ := svc.Selected(); info.ID != c.ID {
		t.Errorf("expected selection on C, got %q", info.Name)
	}

	if _, err := svc.Remove("missing"); !errors.Is(err, stopwatch.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Select("missing"); !errors.Is(err, stopwatch.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(logBuf.String(), "Stopwatch removed: Stopwatch 2") {
		t.Errorf("expected remove log, got: %s", logBuf.String())
	}
}

func TestSessionService_Toggle(t *testing.T) {
	svc, clock, logBuf := setupSession(t, config.DefaultConfig())

	if _, err := svc.Toggle(); !errors.Is(err, ErrNothingSelected) {
		t.Errorf("expected ErrNothingSelected, got %v", err)
	}

	a := svc.Add("A")
	_, _ = svc.Start(a.ID)
	svc.Add("B")

	info, err := svc.Toggle()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !info.Running || info.Name != "B" {
		t.Errorf("expected B running, got %+v", info)
	}

	clock.Advance(time.Second)
	list := svc.List()
	if !list[0].Running {
		t.Error("A should keep running without stop_all_on_start")
	}

	info, _ = svc.Toggle()
	if info.Running {
		t.Error("second toggle should stop B")
	}
	if !strings.Contains(logBuf.String(), "Stopwatch started: B") ||
		!strings.Contains(logBuf.String(), "Stopwatch stopped: B at 00:00:01.00") {
		t.Errorf("expected start/stop logs, got: %s", logBuf.String())
	}
}

func TestSessionService_StopAllOnStart(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.StopAllOnStart = true
	svc, clock, _ := setupSession(t, cfg)

	a := svc.Add("A")
	b := svc.Add("B")
	c := svc.Add("C")
	_, _ = svc.Start(a.ID)
	clock.Advance(time.Second)

	if _, err := svc.Start(b.ID); err != nil {
		t.Fatal(err)
	}
	list := svc.List()
	if list[0].Running || !list[1].Running {
		t.Errorf("expected only B running, got A=%v B=%v", list[0].Running, list[1].Running)
	}

	_, _ = svc.Select(c.ID)
	_, _ = svc.Toggle()
	list = svc.List()
	if list[1].Running || !list[2].Running {
		t.Errorf("expected only C running, got B=%v C=%v", list[1].Running, list[2].Running)
	}

	// Stopping does not touch the others
	svc.SetConfig(config.DefaultConfig())
	_, _ = svc.Start(a.ID)
	_, _ = svc.Stop(a.ID)
	if !svc.List()[2].Running {
		t.Error("stopping A should leave C running")
	}
}

func TestSessionService_StartStop(t *testing.T) {
	svc, clock, _ := setupSession(t, config.DefaultConfig())
	a := svc.Add("A")
	svc.Add("B")

	info, err := svc.Start(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !info.Running || !info.Selected {
		t.Errorf("expected A running and selected, got %+v", info)
	}

	clock.Advance(2 * time.Second)
	info, err = svc.Stop(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if info.Running || info.Elapsed != 2*time.Second {
		t.Errorf("expected A stopped at 2s, got %+v", info)
	}

	if _, err := svc.Start("missing"); !errors.Is(err, stopwatch.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Stop("missing"); !errors.Is(err, stopwatch.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionService_StopAll(t *testing.T) {
	svc, _, _ := setupSession(t, config.DefaultConfig())
	a := svc.Add("A")
	b := svc.Add("B")
	svc.Add("C")
	_, _ = svc.Start(a.ID)
	_, _ = svc.Start(b.ID)

	if n := svc.StopAll(); n != 2 {
		t.Errorf("expected 2 stopped, got %d", n)
	}
	for _, info := range svc.List() {
		if info.Running {
			t.Errorf("%s still running", info.Name)
		}
	}
	if n := svc.StopAll(); n != 0 {
		t.Errorf("expected 0 stopped on second call, got %d", n)
	}
}

func TestSessionService_Reset(t *testing.T) {
	svc, clock, _ := setupSession(t, config.DefaultConfig())

	if _, err := svc.Reset(); !errors.Is(err, ErrNothingSelected) {
		t.Errorf("expected ErrNothingSelected, got %v", err)
	}

	a := svc.Add("A")
	_, _ = svc.Start(a.ID)
	clock.Advance(time.Minute)

	info, err := svc.Reset()
	if err != nil {
		t.Fatal(err)
	}
	if info.Elapsed != 0 || !info.Running {
		t.Errorf("expected running stopwatch at 0, got %+v", info)
	}
}

func TestSessionService_Rename(t *testing.T) {
	svc, _, logBuf := setupSession(t, config.DefaultConfig())

	if _, err := svc.RenameSelected("X"); !errors.Is(err, ErrNothingSelected) {
		t.Errorf("expected ErrNothingSelected, got %v", err)
	}

	a := svc.Add("A")
	svc.Add("B")

	info, err := svc.Rename(a.ID, "Focus")
	if err != nil {
		t.Fatal(err)
	}
	if info.Name != "Focus" {
		t.Errorf("expected 'Focus', got %q", info.Name)
	}

	info, err = svc.RenameSelected("Break")
	if err != nil {
		t.Fatal(err)
	}
	if info.Name != "Break" || info.Index != 1 {
		t.Errorf("expected selected B renamed to 'Break', got %+v", info)
	}

	if _, err := svc.RenameSelected("  "); !errors.Is(err, stopwatch.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
	if _, err := svc.Rename("missing", "X"); !errors.Is(err, stopwatch.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(logBuf.String(), "Stopwatch renamed: A -> Focus") {
		t.Errorf("expected rename log, got: %s", logBuf.String())
	}
}

func TestSessionService_Export(t *testing.T) {
	svc, clock, _ := setupSession(t, config.DefaultConfig())
	a := svc.Add("A")
	svc.Add("B")
	_, _ = svc.Start(a.ID)
	clock.Advance(90 * time.Second)

	records := svc.Export()

	expected := []ExportRecord{
		{Name: "A", ElapsedSeconds: 90, Elapsed: "00:01:30.00", Running: true, Selected: true},
		{Name: "B", ElapsedSeconds: 0, Elapsed: "00:00:00.00", Running: false, Selected: false},
	}
	if len(records) != len(expected) {
		t.Fatalf("expected %d records, got %d", len(expected), len(records))
	}
	for i := range expected {
		if records[i] != expected[i] {
			t.Errorf("records[%d] = %+v, expected %+v", i, records[i], expected[i])
		}
	}
}

func TestSessionService_BackupsAndRestore(t *testing.T) {
	svc, _, _ := setupSession(t, config.DefaultConfig())

	svc.Add("First")
	if err := svc.Save(); err != nil {
		t.Fatal(err)
	}
	svc.Add("Second")
	if err := svc.Save(); err != nil {
		t.Fatal(err)
	}

	backups, err := svc.Backups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}

	result, err := svc.Restore(1)
	if err != nil {
		t.Fatalf("Restore() returned error: %v", err)
	}
	if result.Count != 1 || svc.List()[0].Name != "First" {
		t.Errorf("expected the single-stopwatch session back, got %+v", svc.List())
	}

	if _, err := svc.Restore(3); err == nil {
		t.Error("expected error restoring a missing backup")
	}
}
