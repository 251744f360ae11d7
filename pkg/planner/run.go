package planner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tableflip.dev/planner/pkg/codec"
	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

// AdvanceDay recomputes today from the store clock. When the day rolled
// over, a focus that was on the previous today (or unresolved) follows it,
// and retention is re-applied. It reports whether today changed.
func (s *Store) AdvanceDay() bool {
	s.mustOpen()
	return s.advanceDay()
}

func (s *Store) advanceDay() bool {
	s.mu.Lock()
	if !s.open.Load() {
		s.mu.Unlock()
		return false
	}
	today := timeutil.FormatISO(s.now())
	if today == s.today {
		s.mu.Unlock()
		return false
	}
	prev := s.today
	s.today = today
	change := Change{Today: true}
	if s.focus == prev || s.focus == codec.FocusPlaceholder {
		s.focus = today
		s.persistFocus()
		change.Focus = true
	}
	s.log.Debug("day rolled over", zap.String("from", prev), zap.String("to", today))
	s.mu.Unlock()

	s.notify(change)
	s.commitFunc(func(days map[string]*day.Record) Update {
		return Changed(days)
	}, false)
	return true
}

// Run drives the day-boundary scheduler and picks up writes to the days
// key made by other processes. It blocks until ctx is cancelled or Close is
// called, and returns nil in both cases.
func (s *Store) Run(ctx context.Context) error {
	s.mustOpen()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return errors.New("planner: already running")
	}
	s.stop = cancel
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.stop = nil
		s.mu.Unlock()
	}()

	events, err := s.p.Watch(ctx)
	if err != nil {
		return fmt.Errorf("planner: watch: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.scheduleMidnight(ctx)
	})
	g.Go(func() error {
		return s.syncExternal(ctx, events)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *Store) scheduleMidnight(ctx context.Context) error {
	for {
		now := s.now()
		timer := time.NewTimer(timeutil.NextMidnight(now).Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			s.advanceDay()
		}
	}
}

func (s *Store) syncExternal(ctx context.Context, events <-chan store.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return ctx.Err()
			}
			if ev.Type == store.EventInvalidated || ev.Key == KeyDays {
				s.syncDays()
			}
		}
	}
}

// syncDays reloads the days key when its bytes differ from what the store
// last read or wrote.
func (s *Store) syncDays() {
	raw, err := readKey(s.p, KeyDays)
	if err != nil {
		s.log.Warn("sync days", zap.Error(err))
		return
	}
	s.mu.Lock()
	if !s.open.Load() || bytes.Equal(raw, s.lastDays) {
		s.mu.Unlock()
		return
	}
	s.lastDays = raw
	s.mu.Unlock()

	days := codec.DecodeDayMapJSON(raw)
	if s.commit(Replace(days), true) {
		s.log.Info("picked up external change", zap.Int("days", len(days)))
	}
}
