// Package textfield provides autosave controllers for free-text fields on a
// day record, such as the notes or the day's focus line.
package textfield

import (
	"strings"
	"sync"
	"time"

	"tableflip.dev/planner/pkg/day"
)

// Host reads and writes day records. *planner.Store is a Host.
type Host interface {
	Day(iso string) *day.Record
	UpsertDay(iso string, fn func(*day.Record) *day.Record) bool
}

// Field binds a controller to one text field of a day.
type Field struct {
	// Select reads the field from a day.
	Select func(*day.Record) string
	// Apply writes the field, returning the day unchanged for a no-op.
	Apply func(*day.Record, string) *day.Record
	// ScheduleReset arranges for fn to run shortly after a commit to clear
	// the saving flag. Nil uses DefaultScheduleReset.
	ScheduleReset func(fn func())
}

// Notes is the day's free-form notes.
var Notes = Field{
	Select: func(d *day.Record) string {
		notes, _ := d.Notes()
		return notes
	},
	Apply: day.SetNotes,
}

// DayFocus is the one line intention for the day.
var DayFocus = Field{
	Select: func(d *day.Record) string {
		focus, _ := d.Focus()
		return focus
	},
	Apply: day.SetFocus,
}

// DefaultScheduleReset runs fn on a timer goroutine as soon as possible.
func DefaultScheduleReset(fn func()) {
	time.AfterFunc(0, fn)
}

// New returns a factory of controllers for f.
func New(f Field) func(host Host, iso string) *Controller {
	if f.ScheduleReset == nil {
		f.ScheduleReset = DefaultScheduleReset
	}
	return func(host Host, iso string) *Controller {
		c := &Controller{field: f, host: host}
		c.load(iso)
		return c
	}
}

// Controller holds the draft of one field on one day. It is safe for
// concurrent use.
type Controller struct {
	field Field
	host  Host

	mu        sync.Mutex
	iso       string
	value     string
	lastSaved string
	saving    bool
	closed    bool
}

func (c *Controller) load(iso string) {
	persisted := c.field.Select(c.host.Day(iso))
	c.mu.Lock()
	defer c.mu.Unlock()
	c.iso = iso
	c.value = persisted
	c.lastSaved = strings.TrimSpace(persisted)
}

// Day is the ISO date the controller edits.
func (c *Controller) Day() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.iso
}

// Value is the current draft.
func (c *Controller) Value() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// SetValue replaces the draft without saving it.
func (c *Controller) SetValue(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
}

// LastSaved is the trimmed value last read from or written to the day.
func (c *Controller) LastSaved() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSaved
}

// IsDirty reports whether the trimmed draft differs from LastSaved.
func (c *Controller) IsDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.TrimSpace(c.value) != c.lastSaved
}

// Saving is set by a commit until the scheduled reset runs.
func (c *Controller) Saving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saving
}

// Commit writes the trimmed draft through the host when it differs from
// LastSaved, and reports whether it did.
func (c *Controller) Commit() bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	trimmed := strings.TrimSpace(c.value)
	if trimmed == c.lastSaved {
		c.mu.Unlock()
		return false
	}
	iso := c.iso
	c.mu.Unlock()

	c.host.UpsertDay(iso, func(d *day.Record) *day.Record {
		return c.field.Apply(d, trimmed)
	})

	c.mu.Lock()
	c.lastSaved = trimmed
	c.saving = true
	c.mu.Unlock()

	c.field.ScheduleReset(c.resetSaving)
	return true
}

func (c *Controller) resetSaving() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.saving = false
}

// SetDay points the controller at iso, discarding any uncommitted draft.
func (c *Controller) SetDay(iso string) {
	if c.Day() == iso {
		return
	}
	c.load(iso)
}

// Close detaches the controller. Later commits and resets do nothing.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}
