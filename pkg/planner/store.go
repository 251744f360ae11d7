// Package planner owns the canonical day map, the focus date and the
// per-day selection, keeps them consistent after every update and mirrors
// them into a store.Persistence.
package planner

import (
	"errors"
	"fmt"
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/planner/pkg/codec"
	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/retention"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

// Persisted keys.
const (
	KeyDays           = "planner:days"
	KeyFocus          = "planner:focus"
	KeySelected       = "planner:selected"
	KeyLegacyProjects = "planner:projects"
	KeyLegacyTasks    = "planner:tasks"
)

// ErrInvalidDate is returned when a focus date is not a YYYY-MM-DD day.
var ErrInvalidDate = errors.New("planner: invalid date")

// Change describes what a commit touched. Days lists the affected day keys
// in ascending order.
type Change struct {
	Days      []string
	Focus     bool
	Selection bool
	Today     bool
	External  bool
}

func (c Change) empty() bool {
	return len(c.Days) == 0 && !c.Focus && !c.Selection && !c.Today
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRetention sets the history horizon in days. Negative disables
// pruning.
func WithRetention(maxAgeDays int) Option {
	return func(s *Store) {
		s.maxAge = maxAgeDays
	}
}

// Store is the planner state. Create it with Open; the zero value and a nil
// *Store panic on use.
type Store struct {
	mu       sync.Mutex
	p        store.Persistence
	log      *zap.Logger
	now      func() time.Time
	maxAge   int
	open     atomic.Bool
	days     map[string]*day.Record
	index    map[string]*day.Index
	focus    string
	today    string
	selected map[string]day.Selection
	lastDays []byte

	subMu  sync.Mutex
	subs   map[int]func(Change)
	nextID int
	stop   func()
}

func (s *Store) mustOpen() {
	if s == nil || !s.open.Load() {
		panic("planner: store used before Open or after Close")
	}
}

// Close stops Run and drops every subscriber. The store cannot be used
// afterwards.
func (s *Store) Close() error {
	s.mustOpen()
	s.mu.Lock()
	s.open.Store(false)
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
	s.subMu.Lock()
	s.subs = nil
	s.subMu.Unlock()
	return nil
}

// Days returns a copy of the day map.
func (s *Store) Days() map[string]*day.Record {
	s.mustOpen()
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.days)
}

// Day returns the record for iso, or the empty day.
func (s *Store) Day(iso string) *day.Record {
	s.mustOpen()
	s.mu.Lock()
	defer s.mu.Unlock()
	return day.Ensure(s.days, iso)
}

// TaskIndex returns the cached task lookup for iso. The pointer stays the
// same for as long as the day is untouched.
func (s *Store) TaskIndex(iso string) *day.Index {
	s.mustOpen()
	s.mu.Lock()
	defer s.mu.Unlock()
	if x, ok := s.index[iso]; ok {
		return x
	}
	return day.Empty().Index()
}

// Today is the current local calendar day as last seen by the store.
func (s *Store) Today() string {
	s.mustOpen()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.today
}

// Focus is the day being viewed. The placeholder resolves to today.
func (s *Store) Focus() string {
	s.mustOpen()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeFocus()
}

func (s *Store) activeFocus() string {
	if s.focus == codec.FocusPlaceholder {
		return s.today
	}
	return s.focus
}

// SetFocus moves the focus to iso.
func (s *Store) SetFocus(iso string) error {
	s.mustOpen()
	if !timeutil.IsISO(iso) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, iso)
	}
	s.mu.Lock()
	if s.focus == iso {
		s.mu.Unlock()
		return nil
	}
	s.focus = iso
	s.persistFocus()
	s.mu.Unlock()

	s.notify(Change{Focus: true})
	return nil
}

// Subscribe registers fn to run after every commit that changed something.
// fn runs on the committing goroutine without the store lock held.
func (s *Store) Subscribe(fn func(Change)) (cancel func()) {
	s.mustOpen()
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func(Change))
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(c Change) {
	if c.empty() {
		return
	}
	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

// persistDays, persistFocus and persistSelection must be called with s.mu
// held. Failures are logged; the in-memory state stays authoritative.
func (s *Store) persistDays() {
	b, err := codec.EncodeDayMap(s.days)
	if err != nil {
		s.log.Error("encode days", zap.Error(err))
		return
	}
	if err := s.p.Write(KeyDays, b); err != nil {
		s.log.Error("persist days", zap.Error(err))
		return
	}
	s.lastDays = b
}

func (s *Store) persistFocus() {
	b, err := codec.EncodeFocus(s.focus)
	if err == nil {
		err = s.p.Write(KeyFocus, b)
	}
	if err != nil {
		s.log.Error("persist focus", zap.String("focus", s.focus), zap.Error(err))
	}
}

func (s *Store) persistSelection() {
	b, err := codec.EncodeSelection(s.selected)
	if err == nil {
		err = s.p.Write(KeySelected, b)
	}
	if err != nil {
		s.log.Error("persist selection", zap.Error(err))
	}
}

// prune applies retention relative to the store clock.
func (s *Store) prune(days map[string]*day.Record) (map[string]*day.Record, []string) {
	return retention.Prune(days, s.maxAge, s.now())
}
