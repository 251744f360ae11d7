package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/timeutil"
)

// Service provides date-scoped operations over the planner store so the CLI
// and any other front end share one set of creation and editing flows.
type Service struct {
	Planner *planner.Store
	// IDs generates ids for new projects and tasks. Nil uses NewID.
	IDs func(prefix string) string
}

var (
	errNoStore = errors.New("app: no planner store configured")

	// ErrNotFound is returned when an operation names a project or task
	// that is not on the day.
	ErrNotFound = errors.New("app: not found")
)

// NewID returns prefix, an underscore and 16 random hex characters.
func NewID(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + id[:16]
}

func (s *Service) newID(prefix string) string {
	if s.IDs != nil {
		return s.IDs(prefix)
	}
	return NewID(prefix)
}

// Resolve turns an empty iso into the focus date and validates the rest.
func (s *Service) Resolve(iso string) (string, error) {
	if s.Planner == nil {
		return "", errNoStore
	}
	if iso == "" {
		return s.Planner.Focus(), nil
	}
	if !timeutil.IsISO(iso) {
		return "", planner.ErrInvalidDate
	}
	return iso, nil
}

// Day returns the record for iso.
func (s *Service) Day(iso string) (*day.Record, error) {
	iso, err := s.Resolve(iso)
	if err != nil {
		return nil, err
	}
	return s.Planner.Day(iso), nil
}

// apply runs fn against iso and reports whether the day changed.
func (s *Service) apply(iso string, fn func(*day.Record) *day.Record) (bool, error) {
	iso, err := s.Resolve(iso)
	if err != nil {
		return false, err
	}
	return s.Planner.UpsertDay(iso, fn), nil
}

// AddProject adds a project and returns its id, or "" when name is blank.
func (s *Service) AddProject(iso, name string) (string, error) {
	id := s.newID("p")
	changed, err := s.apply(iso, func(d *day.Record) *day.Record {
		return day.AddProject(d, id, name)
	})
	if err != nil || !changed {
		return "", err
	}
	return id, nil
}

// RenameProject renames a project.
func (s *Service) RenameProject(iso, id, name string) (bool, error) {
	return s.apply(iso, func(d *day.Record) *day.Record { return day.RenameProject(d, id, name) })
}

// ToggleProject flips a project and every task in it.
func (s *Service) ToggleProject(iso, id string) (bool, error) {
	return s.apply(iso, func(d *day.Record) *day.Record { return day.ToggleProject(d, id) })
}

// RemoveProject deletes a project and its tasks.
func (s *Service) RemoveProject(iso, id string) (bool, error) {
	return s.apply(iso, func(d *day.Record) *day.Record { return day.RemoveProject(d, id) })
}

// AddTask adds a task, owned by projectID when it is not empty, and returns
// its id, or "" when title is blank.
func (s *Service) AddTask(iso, title, projectID string) (string, error) {
	id := s.newID("t")
	changed, err := s.apply(iso, func(d *day.Record) *day.Record {
		if projectID != "" && !d.HasProject(projectID) {
			return d
		}
		return day.AddTask(d, id, title, projectID)
	})
	if err != nil || !changed {
		return "", err
	}
	return id, nil
}

// RenameTask retitles a task.
func (s *Service) RenameTask(iso, id, title string) (bool, error) {
	return s.apply(iso, func(d *day.Record) *day.Record { return day.RenameTask(d, id, title) })
}

// ToggleTask flips one task.
func (s *Service) ToggleTask(iso, id string) (bool, error) {
	return s.apply(iso, func(d *day.Record) *day.Record { return day.ToggleTask(d, id) })
}

// RemoveTask deletes one task.
func (s *Service) RemoveTask(iso, id string) (bool, error) {
	return s.apply(iso, func(d *day.Record) *day.Record { return day.RemoveTask(d, id) })
}

// ReorderTasks rearranges a project's tasks.
func (s *Service) ReorderTasks(iso, projectID string, ids []string) (bool, error) {
	return s.apply(iso, func(d *day.Record) *day.Record { return day.ReorderProjectTasks(d, projectID, ids) })
}

// SetReminder merges patch into a task's reminder. A nil patch clears it.
func (s *Service) SetReminder(iso, id string, patch *day.ReminderPatch) (bool, error) {
	return s.apply(iso, func(d *day.Record) *day.Record { return day.UpdateTaskReminder(d, id, patch) })
}

// AddImage attaches an image url to a task.
func (s *Service) AddImage(iso, id, url string) (bool, error) {
	return s.apply(iso, func(d *day.Record) *day.Record { return day.AddTaskImage(d, id, url) })
}

// RemoveImage detaches url from a task, preferring the copy at index when
// index is not negative.
func (s *Service) RemoveImage(iso, id, url string, index int) (bool, error) {
	return s.apply(iso, func(d *day.Record) *day.Record { return day.RemoveTaskImageAt(d, id, url, index) })
}

// SetNotes replaces the day's notes.
func (s *Service) SetNotes(iso, text string) (bool, error) {
	return s.apply(iso, func(d *day.Record) *day.Record { return day.SetNotes(d, text) })
}

// SetIntent replaces the day's focus line.
func (s *Service) SetIntent(iso, text string) (bool, error) {
	return s.apply(iso, func(d *day.Record) *day.Record { return day.SetFocus(d, text) })
}

// CreateProject adds a project and hands its id to selectFn. It returns ""
// without calling selectFn when nothing was created.
func (s *Service) CreateProject(iso, name string, selectFn func(id string)) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", nil
	}
	id, err := s.AddProject(iso, name)
	if err != nil || id == "" {
		return "", err
	}
	if selectFn != nil {
		selectFn(id)
	}
	return id, nil
}

// CreateTask adds a task to an existing project and hands its id to
// selectFn. It returns "" without calling selectFn when nothing was
// created.
func (s *Service) CreateTask(iso, projectID, title string, selectFn func(id string)) (string, error) {
	if projectID == "" || strings.TrimSpace(title) == "" {
		return "", nil
	}
	id, err := s.AddTask(iso, title, projectID)
	if err != nil || id == "" {
		return "", err
	}
	if selectFn != nil {
		selectFn(id)
	}
	return id, nil
}

// MoveTask moves a task from one day to another in a single commit. The
// task keeps its id; it keeps its project only if the target day has a
// project with the same id.
func (s *Service) MoveTask(fromISO, toISO, id string) error {
	from, err := s.Resolve(fromISO)
	if err != nil {
		return err
	}
	to, err := s.Resolve(toISO)
	if err != nil {
		return err
	}
	if from == to {
		return nil
	}
	task, ok := s.Planner.Day(from).Task(id)
	if !ok {
		return ErrNotFound
	}
	if s.Planner.Day(to).HasTask(id) {
		return fmt.Errorf("app: task %s already exists on %s", id, to)
	}
	s.Planner.DispatchFunc(func(days map[string]*day.Record) planner.Update {
		target := day.Ensure(days, to)
		if target.HasTask(id) {
			return planner.Changed(days)
		}
		if task.ProjectID != "" && !target.HasProject(task.ProjectID) {
			task.ProjectID = ""
		}
		days[from] = day.RemoveTask(day.Ensure(days, from), id)
		days[to] = day.Append(target, nil, []day.Task{task})
		return planner.Changed(days, from, to)
	})
	return nil
}
