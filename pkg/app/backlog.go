package app

import (
	"sort"

	"tableflip.dev/planner/pkg/codec"
	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/timeutil"
)

// BacklogItem is an unfinished task left on an earlier day.
type BacklogItem struct {
	Day     string
	Task    day.Task
	Project string
}

// Backlog lists open tasks from the days before today, newest day first.
// A positive windowDays only looks that many days back.
func (s *Service) Backlog(windowDays int) ([]BacklogItem, error) {
	if s.Planner == nil {
		return nil, errNoStore
	}
	today := s.Planner.Today()
	oldest := ""
	if windowDays > 0 {
		oldest, _ = timeutil.AddDays(today, -windowDays)
	}

	days := s.Planner.Days()
	var items []BacklogItem
	for _, iso := range codec.ISOKeys(days) {
		if iso >= today || iso < oldest || !timeutil.IsISO(iso) {
			continue
		}
		d := days[iso]
		for _, t := range d.Tasks() {
			if t.Done {
				continue
			}
			item := BacklogItem{Day: iso, Task: t}
			if p, ok := d.Project(t.ProjectID); ok {
				item.Project = p.Name
			}
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Day > items[j].Day
	})
	return items, nil
}
