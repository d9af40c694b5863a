package stopwatch

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/xolan/chrono/internal/snapshot"
)

// DefaultNamePrefix is used to name stopwatches added without a name
const DefaultNamePrefix = "Stopwatch"

// Info is a read-only view of one stopwatch, for rendering.
type Info struct {
	ID       string
	Index    int // 0-based position in the collection
	Name     string
	Elapsed  time.Duration
	Running  bool
	Selected bool
}

// Option configures a Collection.
type Option func(*Collection)

// WithClock sets the clock used for all time measurements.
func WithClock(now func() time.Time) Option {
	return func(c *Collection) {
		c.now = now
	}
}

// WithLocation sets the zone used for saved timestamps that carry none.
func WithLocation(loc *time.Location) Option {
	return func(c *Collection) {
		c.loc = loc
	}
}

// Collection is an ordered set of stopwatches with at most one selected.
// It is not safe for concurrent use; callers mutate it from a single goroutine.
type Collection struct {
	entries  []*Stopwatch
	selected int // index into entries, -1 when nothing is selected
	now      func() time.Time
	loc      *time.Location
}

// NewCollection creates an empty collection.
func NewCollection(opts ...Option) *Collection {
	c := &Collection{
		selected: -1,
		now:      time.Now,
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Now returns the current instant according to the collection clock.
func (c *Collection) Now() time.Time {
	return c.now()
}

// Location returns the zone applied to saved timestamps without an offset.
func (c *Collection) Location() *time.Location {
	return c.loc
}

// Len returns the number of stopwatches.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Add appends a stopwatch and selects it. A blank name is replaced by
// "Stopwatch N" where N is the new length of the collection.
// Returns the new stopwatch's ID.
func (c *Collection) Add(name string) string {
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("%s %d", DefaultNamePrefix, len(c.entries)+1)
	}
	sw := New(name)
	c.entries = append(c.entries, sw)
	c.selected = len(c.entries) - 1
	return sw.ID()
}

// IndexOf returns the position of the stopwatch with the given ID, or -1.
func (c *Collection) IndexOf(id string) int {
	for i, sw := range c.entries {
		if sw.ID() == id {
			return i
		}
	}
	return -1
}

// IDAt returns the ID of the stopwatch at index i.
func (c *Collection) IDAt(i int) (string, error) {
	if i < 0 || i >= len(c.entries) {
		return "", fmt.Errorf("%w: no stopwatch at position %d", ErrNotFound, i+1)
	}
	return c.entries[i].ID(), nil
}

func (c *Collection) lookup(id string) (int, error) {
	i := c.IndexOf(id)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return i, nil
}

// Remove deletes a stopwatch. If it was selected, the selection moves to the
// previous stopwatch, else to the next one, else to nothing.
func (c *Collection) Remove(id string) error {
	i, err := c.lookup(id)
	if err != nil {
		return err
	}

	c.entries = append(c.entries[:i], c.entries[i+1:]...)

	switch {
	case i < c.selected:
		c.selected--
	case i == c.selected:
		switch {
		case i > 0:
			c.selected = i - 1
		case len(c.entries) > 0:
			c.selected = 0
		default:
			c.selected = -1
		}
	}
	return nil
}

// Select makes the stopwatch with the given ID the only selected one.
func (c *Collection) Select(id string) error {
	i, err := c.lookup(id)
	if err != nil {
		return err
	}
	c.selected = i
	return nil
}

// Deselect clears the selection.
func (c *Collection) Deselect() {
	c.selected = -1
}

// SelectRelative moves the selection by delta positions. It does not wrap:
// a move past either end is ignored, as is a move with nothing selected.
func (c *Collection) SelectRelative(delta int) {
	if c.selected < 0 {
		return
	}
	target := c.selected + delta
	if target < 0 || target >= len(c.entries) {
		return
	}
	c.selected = target
}

// Rename renames the stopwatch with the given ID.
func (c *Collection) Rename(id, name string) error {
	i, err := c.lookup(id)
	if err != nil {
		return err
	}
	return c.entries[i].Rename(name)
}

// RenameSelected renames the selected stopwatch.
func (c *Collection) RenameSelected(name string) error {
	if c.selected < 0 {
		return ErrNoSelection
	}
	return c.entries[c.selected].Rename(name)
}

// Start starts the stopwatch with the given ID and selects it.
func (c *Collection) Start(id string) error {
	i, err := c.lookup(id)
	if err != nil {
		return err
	}
	c.selected = i
	c.entries[i].Start(c.now())
	return nil
}

// Stop stops the stopwatch with the given ID and selects it.
func (c *Collection) Stop(id string) error {
	i, err := c.lookup(id)
	if err != nil {
		return err
	}
	c.selected = i
	c.entries[i].Stop(c.now())
	return nil
}

// StopAll stops every running stopwatch.
func (c *Collection) StopAll() {
	now := c.now()
	for _, sw := range c.entries {
		sw.Stop(now)
	}
}

// ToggleSelected stops the selected stopwatch if it is running, else starts it.
// No-op if nothing is selected.
func (c *Collection) ToggleSelected() {
	if c.selected < 0 {
		return
	}
	sw := c.entries[c.selected]
	if sw.IsRunning() {
		sw.Stop(c.now())
	} else {
		sw.Start(c.now())
	}
}

// ResetSelected resets the selected stopwatch. No-op if nothing is selected.
func (c *Collection) ResetSelected() {
	if c.selected < 0 {
		return
	}
	c.entries[c.selected].Reset(c.now())
}

// Selected returns the selected stopwatch, if any.
func (c *Collection) Selected() (Info, bool) {
	if c.selected < 0 {
		return Info{}, false
	}
	return c.info(c.selected, c.now()), true
}

// Get returns the stopwatch with the given ID.
func (c *Collection) Get(id string) (Info, error) {
	i, err := c.lookup(id)
	if err != nil {
		return Info{}, err
	}
	return c.info(i, c.now()), nil
}

// List returns all stopwatches in order, measured at a single instant.
func (c *Collection) List() []Info {
	now := c.now()
	infos := make([]Info, len(c.entries))
	for i := range c.entries {
		infos[i] = c.info(i, now)
	}
	return infos
}

func (c *Collection) info(i int, now time.Time) Info {
	sw := c.entries[i]
	return Info{
		ID:       sw.ID(),
		Index:    i,
		Name:     sw.Name(),
		Elapsed:  sw.Elapsed(now),
		Running:  sw.IsRunning(),
		Selected: i == c.selected,
	}
}

// Clear removes every stopwatch.
func (c *Collection) Clear() {
	c.entries = nil
	c.selected = -1
}

// Serialize captures the collection as a snapshot. Elapsed times are taken
// at the current instant; running stopwatches are not adjusted.
func (c *Collection) Serialize() snapshot.Snapshot {
	now := c.now()
	snap := snapshot.Snapshot{
		Stopwatches:  make([]snapshot.Entry, len(c.entries)),
		LastModified: snapshot.FormatTimestamp(now),
	}
	for i, sw := range c.entries {
		snap.Stopwatches[i] = snapshot.Entry{
			Name:    sw.Name(),
			Time:    sw.Elapsed(now).Seconds(),
			Running: sw.IsRunning(),
			Active:  i == c.selected,
		}
	}
	return snap
}

// Gap returns the wall-clock time that passed since the snapshot was saved.
// It is zero when the save time is missing, unparsable or in the future.
func (c *Collection) Gap(snap snapshot.Snapshot) time.Duration {
	saved, ok, err := snap.SavedAt(c.loc)
	if !ok || err != nil {
		return 0
	}
	// Round(0) drops the monotonic reading so both sides compare wall time.
	gap := c.now().Round(0).Sub(saved)
	if gap < 0 {
		return 0
	}
	return gap
}

// Rehydrate replaces the collection with the stopwatches of snap.
// Stopwatches that were running when the snapshot was saved are credited
// with the time that passed since, and keep running.
// Returns the credited gap.
func (c *Collection) Rehydrate(snap snapshot.Snapshot) time.Duration {
	gap := c.Gap(snap)
	now := c.now()

	entries := make([]*Stopwatch, 0, len(snap.Stopwatches))
	selected := -1
	for i, e := range snap.Stopwatches {
		name := e.Name
		if strings.TrimSpace(name) == "" {
			name = snapshot.DefaultName
		}
		elapsed := secondsToDuration(e.Time)
		if e.Running && gap > 0 {
			elapsed += gap
		}
		entries = append(entries, Restore(name, elapsed, e.Running, now))
		if e.Active {
			selected = i
		}
	}
	if selected < 0 && len(entries) > 0 {
		selected = 0
	}

	c.entries = entries
	c.selected = selected
	return gap
}

// Load decodes a session document and rehydrates from it. On failure the
// collection is left empty and a *snapshot.LoadError is returned.
func (c *Collection) Load(data []byte) error {
	snap, err := snapshot.Decode(data)
	if err != nil {
		c.Clear()
		return &snapshot.LoadError{Err: err}
	}
	c.Rehydrate(snap)
	return nil
}

func secondsToDuration(secs float64) time.Duration {
	if secs <= 0 || math.IsNaN(secs) {
		return 0
	}
	if secs >= float64(math.MaxInt64)/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(math.Round(secs * float64(time.Second)))
}
