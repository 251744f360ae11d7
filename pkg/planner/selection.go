package planner

import (
	"maps"

	"tableflip.dev/planner/pkg/day"
)

// Selection returns the selection for iso.
func (s *Store) Selection(iso string) day.Selection {
	s.mustOpen()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected[iso]
}

// Selections returns a copy of every day's selection.
func (s *Store) Selections() map[string]day.Selection {
	s.mustOpen()
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.selected)
}

// SelectedProject is the selected project id for iso, if any. A selected
// task implies its project.
func (s *Store) SelectedProject(iso string) string {
	return s.Selection(iso).ProjectID
}

// SelectedTask is the selected task id for iso, if any.
func (s *Store) SelectedTask(iso string) string {
	return s.Selection(iso).TaskID
}

// SetSelectedProject selects projectID on iso, clearing any task selection.
// An empty id clears the day's selection.
func (s *Store) SetSelectedProject(iso, projectID string) bool {
	s.mustOpen()
	return s.setSelection(iso, func(*day.Record) day.Selection {
		return day.Selection{ProjectID: projectID}
	})
}

// SetSelectedTask selects taskID on iso together with the task's project.
// An empty id clears the day's selection.
func (s *Store) SetSelectedTask(iso, taskID string) bool {
	s.mustOpen()
	return s.setSelection(iso, func(d *day.Record) day.Selection {
		if taskID == "" {
			return day.Selection{}
		}
		sel := day.Selection{TaskID: taskID}
		if t, ok := d.Task(taskID); ok {
			sel.ProjectID = t.ProjectID
		}
		return sel
	})
}

func (s *Store) setSelection(iso string, build func(*day.Record) day.Selection) bool {
	s.mu.Lock()
	if !s.open.Load() {
		s.mu.Unlock()
		return false
	}
	want := build(day.Ensure(s.days, iso))
	current, had := s.selected[iso]
	if had && current == want {
		s.mu.Unlock()
		return false
	}
	next := maps.Clone(s.selected)
	if next == nil {
		next = make(map[string]day.Selection)
	}
	next[iso] = want
	next, _ = sweepSelections(next, s.days)
	if maps.Equal(next, s.selected) {
		s.mu.Unlock()
		return false
	}
	s.selected = next
	s.persistSelection()
	s.mu.Unlock()

	s.notify(Change{Selection: true})
	return true
}

// sweepSelections drops entries whose day is missing, whose selection is
// empty, or whose project or task no longer exists. It returns sel itself
// when nothing was dropped.
func sweepSelections(sel map[string]day.Selection, days map[string]*day.Record) (map[string]day.Selection, bool) {
	var stale []string
	for iso, entry := range sel {
		d, ok := days[iso]
		switch {
		case !ok || d == nil || entry.IsZero():
			stale = append(stale, iso)
		case entry.ProjectID != "" && !d.HasProject(entry.ProjectID):
			stale = append(stale, iso)
		case entry.TaskID != "" && !d.HasTask(entry.TaskID):
			stale = append(stale, iso)
		}
	}
	if len(stale) == 0 {
		return sel, false
	}
	out := maps.Clone(sel)
	for _, iso := range stale {
		delete(out, iso)
	}
	return out, true
}
