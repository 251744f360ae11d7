// Package day holds the planner's per-day record model and the pure
// functions that mutate it.
package day

import "time"

// Project is a top-level item on a day. CreatedAt is epoch milliseconds as
// stored, fractions and all. Disabled and Loading are UI hints carried
// through persistence untouched.
type Project struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Done      bool    `json:"done"`
	CreatedAt float64 `json:"createdAt"`
	Disabled  bool    `json:"disabled,omitempty"`
	Loading   bool    `json:"loading,omitempty"`
}

// Task is a checklist item, optionally owned by a project of the same day.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	ProjectID string    `json:"projectId,omitempty"`
	CreatedAt float64   `json:"createdAt"`
	Images    []string  `json:"images"`
	Reminder  *Reminder `json:"reminder,omitempty"`
}

// Created returns CreatedAt as a time.
func (p Project) Created() time.Time {
	return time.UnixMilli(int64(p.CreatedAt))
}

// Created returns CreatedAt as a time.
func (t Task) Created() time.Time {
	return time.UnixMilli(int64(t.CreatedAt))
}

// clock stamps CreatedAt on new projects and tasks.
var clock = time.Now

func nowMillis() float64 {
	return float64(clock().UnixMilli())
}

// Ptr returns a pointer to v. Handy for building ReminderPatch values.
func Ptr[T any](v T) *T {
	return &v
}

// Selection is a day's single-select state: nothing, a project, or a task
// together with its owning project.
type Selection struct {
	ProjectID string `json:"projectId,omitempty"`
	TaskID    string `json:"taskId,omitempty"`
}

// IsZero reports whether nothing is selected.
func (s Selection) IsZero() bool {
	return s.ProjectID == "" && s.TaskID == ""
}
