package planner

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"tableflip.dev/planner/pkg/codec"
	"tableflip.dev/planner/pkg/day"
)

// Update is a new day map plus an optional hint of which keys changed. A nil
// Changed means any key may have changed. The hint only limits which days
// are re-normalized; persistence is driven by the actual difference.
type Update struct {
	Days    map[string]*day.Record
	Changed []string
}

// Replace is an update where every key is considered changed.
func Replace(days map[string]*day.Record) Update {
	return Update{Days: days}
}

// Changed is an update that touched only isos.
func Changed(days map[string]*day.Record, isos ...string) Update {
	if isos == nil {
		isos = []string{}
	}
	return Update{Days: days, Changed: isos}
}

// Dispatch commits u and reports whether anything changed. After the
// commit, retention is applied, changed days are normalized, stale
// selections are dropped, the index cache is refreshed, the result is
// persisted and subscribers are notified.
func (s *Store) Dispatch(u Update) bool {
	s.mustOpen()
	return s.commit(u, false)
}

// DispatchFunc commits the update fn derives from a copy of the current day
// map. fn runs with the store locked and must not call back into the store.
func (s *Store) DispatchFunc(fn func(current map[string]*day.Record) Update) bool {
	s.mustOpen()
	return s.commitFunc(fn, false)
}

// UpsertDay replaces the record for iso with fn applied to it. The
// placeholder date is ignored.
func (s *Store) UpsertDay(iso string, fn func(*day.Record) *day.Record) bool {
	s.mustOpen()
	if iso == codec.FocusPlaceholder {
		return false
	}
	return s.DispatchFunc(func(days map[string]*day.Record) Update {
		current := day.Ensure(days, iso)
		if next := fn(current); next != current {
			days[iso] = next
		}
		return Changed(days, iso)
	})
}

// SetDay stores rec for iso. The placeholder date is ignored.
func (s *Store) SetDay(iso string, rec *day.Record) bool {
	s.mustOpen()
	if iso == codec.FocusPlaceholder {
		return false
	}
	return s.DispatchFunc(func(days map[string]*day.Record) Update {
		days[iso] = rec
		return Changed(days, iso)
	})
}

func (s *Store) commit(u Update, external bool) bool {
	return s.commitFunc(func(map[string]*day.Record) Update { return u }, external)
}

func (s *Store) commitFunc(fn func(map[string]*day.Record) Update, external bool) bool {
	s.mu.Lock()
	change, ok := s.apply(fn, external)
	s.mu.Unlock()
	if ok {
		s.notify(change)
	}
	return ok
}

// apply must be called with s.mu held.
func (s *Store) apply(fn func(map[string]*day.Record) Update, external bool) (Change, bool) {
	if !s.open.Load() {
		return Change{}, false
	}
	prev := s.days
	u := fn(maps.Clone(prev))

	next := make(map[string]*day.Record, len(u.Days))
	for iso, d := range u.Days {
		if d != nil {
			next[iso] = d
		}
	}

	next, pruned := s.prune(next)
	if len(pruned) > 0 {
		s.log.Info("pruned days", zap.Strings("days", pruned), zap.Int("maxAgeDays", s.maxAge))
	}

	targets := u.Changed
	if targets == nil {
		targets = slices.Collect(maps.Keys(next))
	}
	var repaired map[string]*day.Record
	for _, iso := range targets {
		d, ok := next[iso]
		if !ok || prev[iso] == d {
			continue
		}
		if n := day.Normalize(d); n != d {
			if repaired == nil {
				repaired = make(map[string]*day.Record)
			}
			repaired[iso] = n
		}
	}
	if len(repaired) > 0 {
		next = maps.Clone(next)
		for iso, d := range repaired {
			next[iso] = d
		}
		s.log.Debug("normalized inconsistent days", zap.Int("count", len(repaired)))
	}

	var change Change
	change.External = external
	change.Days = diffKeys(prev, next)

	if len(change.Days) > 0 {
		s.days = next
		for _, iso := range change.Days {
			if d, ok := next[iso]; ok {
				s.index[iso] = d.Index()
			} else {
				delete(s.index, iso)
			}
		}
		if !external {
			s.persistDays()
		}
	}

	if sel, changed := sweepSelections(s.selected, s.days); changed {
		s.selected = sel
		s.persistSelection()
		change.Selection = true
	}
	return change, !change.empty()
}

// diffKeys returns the sorted keys whose record differs between a and b.
func diffKeys(a, b map[string]*day.Record) []string {
	var out []string
	for iso, d := range a {
		if other, ok := b[iso]; !ok || other != d {
			out = append(out, iso)
		}
	}
	for iso := range b {
		if _, ok := a[iso]; !ok {
			out = append(out, iso)
		}
	}
	slices.Sort(out)
	return out
}
