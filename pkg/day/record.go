package day

import (
	"encoding/json"
	"sort"
)

// Record is one day shard. It is immutable once built: every constructor and
// mutator funnels through finalize, so the task index and the counts always
// agree with the project and task slices. Slices and pointers handed out by
// accessors are shared with the record and must not be modified.
type Record struct {
	projects []Project
	tasks    []Task
	index    *Index
	done     int
	total    int
	focus    string
	notes    string
	hasFocus bool
	hasNotes bool
}

// Option sets an optional text field on a new record.
type Option func(*Record)

// WithFocus sets the day's focus text.
func WithFocus(text string) Option {
	return func(r *Record) {
		r.focus, r.hasFocus = text, true
	}
}

// WithNotes sets the day's notes.
func WithNotes(text string) Option {
	return func(r *Record) {
		r.notes, r.hasNotes = text, true
	}
}

var empty = finalize(&Record{})

// Empty returns the shared empty day.
func Empty() *Record {
	return empty
}

// New builds a record from projects and tasks. The slices are copied, task
// images are made non-nil and reminders are sanitized.
func New(projects []Project, tasks []Task, opts ...Option) *Record {
	r := &Record{
		projects: append([]Project(nil), projects...),
		tasks:    make([]Task, len(tasks)),
	}
	for i, t := range tasks {
		r.tasks[i] = repairTask(t)
	}
	for _, opt := range opts {
		opt(r)
	}
	return finalize(r)
}

// Ensure returns the record stored for iso, or the empty day when absent.
func Ensure(days map[string]*Record, iso string) *Record {
	if r := days[iso]; r != nil {
		return r
	}
	return empty
}

// Normalize re-derives r's index and counts and repairs task images and
// reminders. It returns r itself when everything already agrees, which is
// the case for any record built by this package and left untouched.
func Normalize(r *Record) *Record {
	if r == nil {
		return empty
	}
	tasks := r.tasks
	copied := false
	for i, t := range r.tasks {
		fixed := repairTask(t)
		if sameTask(t, fixed) {
			continue
		}
		if !copied {
			tasks = append([]Task(nil), r.tasks...)
			copied = true
		}
		tasks[i] = fixed
	}

	index := buildIndex(tasks)
	done, total := countDone(r.projects, tasks)
	if !copied && r.index.equal(index) && done == r.done && total == r.total {
		return r
	}
	next := r.source()
	next.tasks = tasks
	next.index = index
	next.done, next.total = done, total
	return next
}

// finalize derives the index and counts from r's source fields. It is the
// single place records become valid.
func finalize(r *Record) *Record {
	r.index = buildIndex(r.tasks)
	r.done, r.total = countDone(r.projects, r.tasks)
	return r
}

// source copies only the authoritative fields of r.
func (r *Record) source() *Record {
	return &Record{
		projects: r.projects,
		tasks:    r.tasks,
		focus:    r.focus,
		notes:    r.notes,
		hasFocus: r.hasFocus,
		hasNotes: r.hasNotes,
	}
}

func repairTask(t Task) Task {
	if t.Images == nil {
		t.Images = []string{}
	}
	if t.Reminder != nil {
		t.Reminder = SanitizeReminder(t.Reminder.Patch())
	}
	return t
}

func sameTask(a, b Task) bool {
	if (a.Images == nil) != (b.Images == nil) {
		return false
	}
	return RemindersEqual(a.Reminder, b.Reminder)
}

func countDone(projects []Project, tasks []Task) (done, total int) {
	for _, p := range projects {
		total++
		if p.Done {
			done++
		}
	}
	for _, t := range tasks {
		total++
		if t.Done {
			done++
		}
	}
	return done, total
}

// Projects returns the day's projects in order.
func (r *Record) Projects() []Project {
	if r == nil {
		return nil
	}
	return r.projects
}

// Tasks returns the day's tasks in order.
func (r *Record) Tasks() []Task {
	if r == nil {
		return nil
	}
	return r.tasks
}

// Index returns the derived task lookup for the day.
func (r *Record) Index() *Index {
	if r == nil {
		return empty.index
	}
	return r.index
}

// Project looks up a project by id.
func (r *Record) Project(id string) (Project, bool) {
	if i := r.projectIndex(id); i >= 0 {
		return r.projects[i], true
	}
	return Project{}, false
}

// HasProject reports whether a project with id exists.
func (r *Record) HasProject(id string) bool {
	return r.projectIndex(id) >= 0
}

// Task looks up a task by id.
func (r *Record) Task(id string) (Task, bool) {
	t, ok := r.Index().Task(id)
	if !ok {
		return Task{}, false
	}
	return *t, true
}

// HasTask reports whether a task with id exists.
func (r *Record) HasTask(id string) bool {
	_, ok := r.Index().Task(id)
	return ok
}

// ProjectTasks returns the ids of the tasks owned by projectID, in order.
func (r *Record) ProjectTasks(projectID string) []string {
	return r.Index().ProjectTasks(projectID)
}

// DoneCount is the number of completed projects and tasks.
func (r *Record) DoneCount() int {
	if r == nil {
		return 0
	}
	return r.done
}

// TotalCount is the number of projects plus tasks.
func (r *Record) TotalCount() int {
	if r == nil {
		return 0
	}
	return r.total
}

// Focus returns the day's focus text and whether it is set.
func (r *Record) Focus() (string, bool) {
	if r == nil {
		return "", false
	}
	return r.focus, r.hasFocus
}

// Notes returns the day's notes and whether they are set.
func (r *Record) Notes() (string, bool) {
	if r == nil {
		return "", false
	}
	return r.notes, r.hasNotes
}

// IsEmpty reports whether the day has nothing worth persisting.
func (r *Record) IsEmpty() bool {
	if r == nil {
		return true
	}
	return len(r.projects) == 0 && len(r.tasks) == 0 && !r.hasFocus && !r.hasNotes
}

func (r *Record) projectIndex(id string) int {
	if r == nil {
		return -1
	}
	for i := range r.projects {
		if r.projects[i].ID == id {
			return i
		}
	}
	return -1
}

// taskIndex finds the last task with id, the same one the Index holds.
func (r *Record) taskIndex(id string) int {
	if r == nil {
		return -1
	}
	for i := len(r.tasks) - 1; i >= 0; i-- {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

type recordJSON struct {
	Projects       []Project           `json:"projects"`
	Tasks          []Task              `json:"tasks"`
	TasksByID      map[string]Task     `json:"tasksById"`
	TasksByProject map[string][]string `json:"tasksByProject"`
	DoneCount      int                 `json:"doneCount"`
	TotalCount     int                 `json:"totalCount"`
	Focus          *string             `json:"focus,omitempty"`
	Notes          *string             `json:"notes,omitempty"`
}

// MarshalJSON writes the persisted day shape, derived fields included so
// older readers keep working. Readers must not trust the derived fields.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		r = empty
	}
	if r.index == nil {
		r = Normalize(r)
	}
	out := recordJSON{
		Projects:       r.projects,
		Tasks:          r.tasks,
		TasksByID:      make(map[string]Task, r.index.Len()),
		TasksByProject: make(map[string][]string, len(r.index.byProject)),
		DoneCount:      r.done,
		TotalCount:     r.total,
	}
	if out.Projects == nil {
		out.Projects = []Project{}
	}
	if out.Tasks == nil {
		out.Tasks = []Task{}
	}
	for id, t := range r.index.byID {
		out.TasksByID[id] = *t
	}
	for id, ids := range r.index.byProject {
		out.TasksByProject[id] = ids
	}
	if r.hasFocus {
		out.Focus = &r.focus
	}
	if r.hasNotes {
		out.Notes = &r.notes
	}
	return json.Marshal(out)
}

// Index is the derived lookup over a day's tasks.
type Index struct {
	byID      map[string]*Task
	byProject map[string][]string
}

func buildIndex(tasks []Task) *Index {
	x := &Index{
		byID:      make(map[string]*Task, len(tasks)),
		byProject: make(map[string][]string),
	}
	for i := range tasks {
		t := &tasks[i]
		x.byID[t.ID] = t
		if t.ProjectID == "" {
			continue
		}
		x.byProject[t.ProjectID] = append(x.byProject[t.ProjectID], t.ID)
	}
	return x
}

// Task returns the indexed task with id.
func (x *Index) Task(id string) (*Task, bool) {
	if x == nil {
		return nil, false
	}
	t, ok := x.byID[id]
	return t, ok
}

// ProjectTasks returns the task ids owned by projectID, in task order.
func (x *Index) ProjectTasks(projectID string) []string {
	if x == nil {
		return nil
	}
	return x.byProject[projectID]
}

// ProjectIDs returns every project id that owns at least one task, sorted.
func (x *Index) ProjectIDs() []string {
	if x == nil {
		return nil
	}
	ids := make([]string, 0, len(x.byProject))
	for id := range x.byProject {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len is the number of distinct task ids.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.byID)
}

func (x *Index) equal(o *Index) bool {
	if x == nil || o == nil {
		return x == o
	}
	if len(x.byID) != len(o.byID) || len(x.byProject) != len(o.byProject) {
		return false
	}
	for id, t := range x.byID {
		if o.byID[id] != t {
			return false
		}
	}
	for id, ids := range x.byProject {
		other, ok := o.byProject[id]
		if !ok || len(other) != len(ids) {
			return false
		}
		for i := range ids {
			if ids[i] != other[i] {
				return false
			}
		}
	}
	return true
}
