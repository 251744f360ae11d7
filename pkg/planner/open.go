package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/planner/pkg/codec"
	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/retention"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

// Open hydrates a store from p. Persisted data that fails to decode is
// dropped; only read errors from p fail Open. The focus placeholder (or an
// unreadable focus) resolves to today, retention is applied and legacy
// unsharded data is folded into the focus day once.
func Open(ctx context.Context, p store.Persistence, opts ...Option) (*Store, error) {
	if p == nil {
		return nil, errors.New("planner: no persistence configured")
	}
	s := &Store{
		p:      p,
		log:    zap.NewNop(),
		now:    time.Now,
		maxAge: retention.DefaultMaxAgeDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	daysRaw, err := readKey(p, KeyDays)
	if err != nil {
		return nil, err
	}
	focusRaw, err := readKey(p, KeyFocus)
	if err != nil {
		return nil, err
	}
	selRaw, err := readKey(p, KeySelected)
	if err != nil {
		return nil, err
	}

	s.days = codec.DecodeDayMapJSON(daysRaw)
	s.lastDays = daysRaw
	s.selected = codec.DecodeSelectionJSON(selRaw)
	s.today = timeutil.FormatISO(s.now())

	focus, ok := codec.DecodeFocusJSON(focusRaw)
	if !ok || focus == codec.FocusPlaceholder {
		if len(focusRaw) > 0 && !ok {
			s.log.Warn("discarding invalid focus", zap.ByteString("focus", focusRaw))
		}
		focus = s.today
		s.focus = focus
		s.persistFocus()
	} else {
		s.focus = focus
	}

	s.index = make(map[string]*day.Index, len(s.days))
	for iso, d := range s.days {
		s.index[iso] = d.Index()
	}
	s.open.Store(true)
	s.log.Debug("hydrated", zap.Int("days", len(s.days)), zap.String("focus", s.focus))

	// Retention and the selection sweep run through the normal commit path.
	s.commit(Update{Days: s.days, Changed: []string{}}, false)

	if err := s.migrateLegacyIfPresent(); err != nil {
		return nil, err
	}
	return s, nil
}

func readKey(p store.Persistence, key string) ([]byte, error) {
	b, err := p.Read(key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("planner: hydrate %s: %w", key, err)
	}
	return b, nil
}

// migrateLegacyIfPresent folds the pre-sharding project and task lists into
// the focus day and erases them. It runs once, from Open.
func (s *Store) migrateLegacyIfPresent() error {
	projectsRaw, err := readKey(s.p, KeyLegacyProjects)
	if err != nil {
		return err
	}
	tasksRaw, err := readKey(s.p, KeyLegacyTasks)
	if err != nil {
		return err
	}
	if projectsRaw == nil && tasksRaw == nil {
		return nil
	}

	projects := codec.DecodeProjectsJSON(projectsRaw)
	tasks := codec.DecodeTasksJSON(tasksRaw)
	iso := s.Focus()
	s.UpsertDay(iso, func(d *day.Record) *day.Record {
		return day.Append(d, projects, tasks)
	})
	s.log.Info("migrated legacy planner data",
		zap.String("day", iso),
		zap.Int("projects", len(projects)),
		zap.Int("tasks", len(tasks)),
	)

	for _, key := range []string{KeyLegacyProjects, KeyLegacyTasks} {
		if err := s.p.Erase(key); err != nil {
			s.log.Error("erase legacy key", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}
