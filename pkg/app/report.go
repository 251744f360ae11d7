package app

import (
	"tableflip.dev/planner/pkg/codec"
	"tableflip.dev/planner/pkg/day"
)

// ReportItem is one completed project or task.
type ReportItem struct {
	ID      string
	Title   string
	Project string // owning project name for tasks
	IsTask  bool
}

// ReportSection groups completed items by day.
type ReportSection struct {
	Day     string
	Done    int
	Total   int
	Entries []ReportItem
}

// ReportResult is a completion report for a range of days.
type ReportResult struct {
	Since    string
	Until    string
	Sections []ReportSection
	Done     int
	Total    int
}

// Report summarizes completed work on every day between since and until,
// inclusive. Bounds given in the wrong order are swapped.
func (s *Service) Report(since, until string) (ReportResult, error) {
	since, err := s.Resolve(since)
	if err != nil {
		return ReportResult{}, err
	}
	until, err = s.Resolve(until)
	if err != nil {
		return ReportResult{}, err
	}
	if since > until {
		since, until = until, since
	}

	days := s.Planner.Days()
	result := ReportResult{Since: since, Until: until}
	for _, iso := range codec.ISOKeys(days) {
		if iso < since || iso > until {
			continue
		}
		d := days[iso]
		if d.TotalCount() == 0 {
			continue
		}
		section := ReportSection{Day: iso, Done: d.DoneCount(), Total: d.TotalCount()}
		section.Entries = completed(d)
		result.Sections = append(result.Sections, section)
		result.Done += section.Done
		result.Total += section.Total
	}
	return result, nil
}

func completed(d *day.Record) []ReportItem {
	names := make(map[string]string, len(d.Projects()))
	var items []ReportItem
	for _, p := range d.Projects() {
		names[p.ID] = p.Name
		if p.Done {
			items = append(items, ReportItem{ID: p.ID, Title: p.Name})
		}
	}
	for _, t := range d.Tasks() {
		if t.Done {
			items = append(items, ReportItem{ID: t.ID, Title: t.Title, Project: names[t.ProjectID], IsTask: true})
		}
	}
	return items
}
