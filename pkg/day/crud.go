package day

import (
	"slices"
	"strings"
)

// Every mutator below returns d itself when the requested change has no
// effect (blank names, unknown ids, unchanged values), and a new record
// otherwise. Callers skip writes by comparing pointers. A nil d is the
// empty day.

// AddProject appends a project named name (trimmed). Blank names and ids
// already present on the day are ignored.
func AddProject(d *Record, id, name string) *Record {
	d = orEmpty(d)
	name = strings.TrimSpace(name)
	if name == "" || id == "" || d.HasProject(id) {
		return d
	}
	next := d.source()
	next.projects = append(slices.Clip(d.projects), Project{
		ID:        id,
		Name:      name,
		CreatedAt: nowMillis(),
	})
	return finalize(next)
}

// RenameProject sets the project's name to the trimmed name.
func RenameProject(d *Record, id, name string) *Record {
	d = orEmpty(d)
	name = strings.TrimSpace(name)
	i := d.projectIndex(id)
	if name == "" || i < 0 || d.projects[i].Name == name {
		return d
	}
	return withProject(d, i, func(p *Project) { p.Name = name })
}

// ToggleProject flips the project's done flag and forces every task of the
// project to the project's new state. Toggling a task never touches its
// project.
func ToggleProject(d *Record, id string) *Record {
	d = orEmpty(d)
	i := d.projectIndex(id)
	if i < 0 {
		return d
	}
	done := !d.projects[i].Done
	next := d.source()
	next.projects = slices.Clone(d.projects)
	next.projects[i].Done = done
	next.tasks = make([]Task, len(d.tasks))
	for j, t := range d.tasks {
		if t.ProjectID == id {
			t.Done = done
		}
		next.tasks[j] = t
	}
	return finalize(next)
}

// RemoveProject deletes the project and every task that belongs to it.
func RemoveProject(d *Record, id string) *Record {
	d = orEmpty(d)
	if id == "" {
		return d
	}
	hasTasks := slices.ContainsFunc(d.tasks, func(t Task) bool { return t.ProjectID == id })
	if !d.HasProject(id) && !hasTasks {
		return d
	}
	next := d.source()
	next.projects = slices.DeleteFunc(slices.Clone(d.projects), func(p Project) bool { return p.ID == id })
	next.tasks = slices.DeleteFunc(slices.Clone(d.tasks), func(t Task) bool { return t.ProjectID == id })
	return finalize(next)
}

// AddTask appends a task titled title (trimmed), owned by projectID when it
// is not empty.
func AddTask(d *Record, id, title, projectID string) *Record {
	d = orEmpty(d)
	title = strings.TrimSpace(title)
	if title == "" || id == "" || d.HasTask(id) {
		return d
	}
	next := d.source()
	next.tasks = append(slices.Clip(d.tasks), Task{
		ID:        id,
		Title:     title,
		ProjectID: projectID,
		CreatedAt: nowMillis(),
		Images:    []string{},
	})
	return finalize(next)
}

// RenameTask sets the task's title to the trimmed title.
func RenameTask(d *Record, id, title string) *Record {
	d = orEmpty(d)
	title = strings.TrimSpace(title)
	i := d.taskIndex(id)
	if title == "" || i < 0 || d.tasks[i].Title == title {
		return d
	}
	return withTask(d, i, func(t *Task) { t.Title = title })
}

// ToggleTask flips a single task's done flag.
func ToggleTask(d *Record, id string) *Record {
	d = orEmpty(d)
	i := d.taskIndex(id)
	if i < 0 {
		return d
	}
	return withTask(d, i, func(t *Task) { t.Done = !t.Done })
}

// RemoveTask deletes the task with id.
func RemoveTask(d *Record, id string) *Record {
	d = orEmpty(d)
	if d.taskIndex(id) < 0 {
		return d
	}
	next := d.source()
	next.tasks = slices.DeleteFunc(slices.Clone(d.tasks), func(t Task) bool { return t.ID == id })
	return finalize(next)
}

// ReorderProjectTasks rearranges the tasks of projectID to follow
// orderedIDs. Ids that are unknown, foreign to the project or repeated are
// skipped; project tasks missing from orderedIDs keep their relative order
// at the tail. Tasks of other projects keep their slots in the day.
func ReorderProjectTasks(d *Record, projectID string, orderedIDs []string) *Record {
	d = orEmpty(d)
	var members []Task
	byID := make(map[string][]Task)
	for _, t := range d.tasks {
		if t.ProjectID != projectID || projectID == "" {
			continue
		}
		members = append(members, t)
		byID[t.ID] = append(byID[t.ID], t)
	}
	if len(members) < 2 {
		return d
	}

	ordered := make([]Task, 0, len(members))
	used := make(map[string]bool, len(members))
	for _, id := range orderedIDs {
		if group, ok := byID[id]; ok && !used[id] {
			used[id] = true
			ordered = append(ordered, group...)
		}
	}
	for _, t := range members {
		if !used[t.ID] {
			ordered = append(ordered, t)
		}
	}

	same := true
	for i := range members {
		if members[i].ID != ordered[i].ID {
			same = false
			break
		}
	}
	if same {
		return d
	}

	next := d.source()
	next.tasks = make([]Task, len(d.tasks))
	k := 0
	for i, t := range d.tasks {
		if t.ProjectID == projectID {
			next.tasks[i] = ordered[k]
			k++
			continue
		}
		next.tasks[i] = t
	}
	return finalize(next)
}

// UpdateTaskReminder merges patch onto the task's reminder and sanitizes the
// result. A nil patch clears the reminder.
func UpdateTaskReminder(d *Record, id string, patch *ReminderPatch) *Record {
	d = orEmpty(d)
	i := d.taskIndex(id)
	if i < 0 {
		return d
	}
	current := d.tasks[i].Reminder
	if patch == nil {
		if current == nil {
			return d
		}
		return withTask(d, i, func(t *Task) { t.Reminder = nil })
	}
	sanitized := SanitizeReminder(current.Patch().Merge(*patch))
	if RemindersEqual(current, sanitized) {
		return d
	}
	return withTask(d, i, func(t *Task) { t.Reminder = sanitized })
}

// AddTaskImage appends url (trimmed) to the task's images.
func AddTaskImage(d *Record, id, url string) *Record {
	d = orEmpty(d)
	url = strings.TrimSpace(url)
	i := d.taskIndex(id)
	if url == "" || i < 0 {
		return d
	}
	return withTask(d, i, func(t *Task) {
		t.Images = append(slices.Clip(t.Images), url)
	})
}

// RemoveTaskImage removes the first image equal to url.
func RemoveTaskImage(d *Record, id, url string) *Record {
	return RemoveTaskImageAt(d, id, url, -1)
}

// RemoveTaskImageAt removes the image at index when it equals url, which
// keeps duplicate urls apart. Otherwise it removes the first match.
func RemoveTaskImageAt(d *Record, id, url string, index int) *Record {
	d = orEmpty(d)
	i := d.taskIndex(id)
	if i < 0 {
		return d
	}
	images := d.tasks[i].Images
	at := -1
	if index >= 0 && index < len(images) && images[index] == url {
		at = index
	} else {
		at = slices.Index(images, url)
	}
	if at < 0 {
		return d
	}
	return withTask(d, i, func(t *Task) {
		t.Images = slices.Delete(slices.Clone(images), at, at+1)
	})
}

// SetFocus sets the day's focus text.
func SetFocus(d *Record, text string) *Record {
	d = orEmpty(d)
	if current, ok := d.Focus(); ok && current == text {
		return d
	}
	next := d.source()
	next.focus, next.hasFocus = text, true
	return finalize(next)
}

// SetNotes sets the day's notes.
func SetNotes(d *Record, text string) *Record {
	d = orEmpty(d)
	if current, ok := d.Notes(); ok && current == text {
		return d
	}
	next := d.source()
	next.notes, next.hasNotes = text, true
	return finalize(next)
}

func orEmpty(d *Record) *Record {
	if d == nil {
		return empty
	}
	return d
}

func withProject(d *Record, i int, edit func(*Project)) *Record {
	next := d.source()
	next.projects = slices.Clone(d.projects)
	edit(&next.projects[i])
	return finalize(next)
}

func withTask(d *Record, i int, edit func(*Task)) *Record {
	next := d.source()
	next.tasks = slices.Clone(d.tasks)
	edit(&next.tasks[i])
	return finalize(next)
}

// Append adds the projects and tasks whose ids are not yet on the day,
// keeping existing entries as they are.
func Append(d *Record, projects []Project, tasks []Task) *Record {
	d = orEmpty(d)
	var addProjects []Project
	seen := make(map[string]bool)
	for _, p := range projects {
		if p.ID == "" || seen[p.ID] || d.HasProject(p.ID) {
			continue
		}
		seen[p.ID] = true
		addProjects = append(addProjects, p)
	}
	var addTasks []Task
	clear(seen)
	for _, t := range tasks {
		if t.ID == "" || seen[t.ID] || d.HasTask(t.ID) {
			continue
		}
		seen[t.ID] = true
		addTasks = append(addTasks, repairTask(t))
	}
	if len(addProjects) == 0 && len(addTasks) == 0 {
		return d
	}
	next := d.source()
	next.projects = append(slices.Clip(d.projects), addProjects...)
	next.tasks = append(slices.Clip(d.tasks), addTasks...)
	return finalize(next)
}
