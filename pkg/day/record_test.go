package day

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleDay() *Record {
	return New(
		[]Project{{ID: "p1", Name: "Garden"}, {ID: "p2", Name: "House", Done: true}},
		[]Task{
			{ID: "t1", Title: "Weed", ProjectID: "p1"},
			{ID: "t2", Title: "Loose", Done: true},
			{ID: "t3", Title: "Water", ProjectID: "p1"},
			{ID: "t4", Title: "Paint", ProjectID: "p2", Done: true},
		},
	)
}

// checkIndex asserts the derived fields agree with the slices.
func checkIndex(t *testing.T, r *Record) {
	t.Helper()
	want := map[string][]string{}
	done := 0
	for _, p := range r.Projects() {
		if p.Done {
			done++
		}
	}
	for _, task := range r.Tasks() {
		if task.Done {
			done++
		}
		if task.ProjectID != "" {
			want[task.ProjectID] = append(want[task.ProjectID], task.ID)
		}
		got, ok := r.Index().Task(task.ID)
		if !ok {
			t.Fatalf("task %q missing from index", task.ID)
		}
		if got.ID != task.ID {
			t.Fatalf("index for %q points at %q", task.ID, got.ID)
		}
	}
	for _, id := range r.Index().ProjectIDs() {
		if diff := cmp.Diff(want[id], r.ProjectTasks(id)); diff != "" {
			t.Fatalf("tasksByProject[%s] (-want +got):\n%s", id, diff)
		}
	}
	if len(r.Index().ProjectIDs()) != len(want) {
		t.Fatalf("expected %d indexed projects, got %d", len(want), len(r.Index().ProjectIDs()))
	}
	if r.TotalCount() != len(r.Projects())+len(r.Tasks()) {
		t.Fatalf("total = %d, want %d", r.TotalCount(), len(r.Projects())+len(r.Tasks()))
	}
	if r.DoneCount() != done {
		t.Fatalf("done = %d, want %d", r.DoneCount(), done)
	}
}

func TestNewBuildsIndex(t *testing.T) {
	r := sampleDay()
	checkIndex(t, r)
	if r.TotalCount() != 6 || r.DoneCount() != 3 {
		t.Fatalf("counts = %d/%d, want 3/6", r.DoneCount(), r.TotalCount())
	}
	if got := r.ProjectTasks("p1"); !cmp.Equal(got, []string{"t1", "t3"}) {
		t.Fatalf("p1 tasks = %v", got)
	}
	task, ok := r.Task("t2")
	if !ok || task.Images == nil {
		t.Fatalf("expected t2 with non-nil images, got %+v", task)
	}
}

func TestNewDuplicateTaskIDLastWins(t *testing.T) {
	r := New(nil, []Task{{ID: "t", Title: "first"}, {ID: "t", Title: "second"}})
	task, _ := r.Task("t")
	if task.Title != "second" {
		t.Fatalf("expected the last duplicate, got %q", task.Title)
	}
	if r.Index().Len() != 1 || r.TotalCount() != 2 {
		t.Fatalf("index len %d total %d", r.Index().Len(), r.TotalCount())
	}
}

func TestDuplicateTaskIDMutatorsEditIndexedCopy(t *testing.T) {
	r := New(nil, []Task{{ID: "t", Title: "first"}, {ID: "t", Title: "second"}})

	renamed := RenameTask(r, "t", "renamed")
	if task, _ := renamed.Task("t"); task.Title != "renamed" {
		t.Fatalf("Task() after rename = %q", task.Title)
	}
	if renamed.Tasks()[0].Title != "first" {
		t.Fatalf("rename touched the shadowed copy: %+v", renamed.Tasks())
	}

	toggled := ToggleTask(r, "t")
	if task, _ := toggled.Task("t"); !task.Done {
		t.Fatalf("Task() after toggle is not done")
	}
	if toggled.DoneCount() != 1 {
		t.Fatalf("DoneCount() = %d, want 1", toggled.DoneCount())
	}
}

func TestNewRepairsReminder(t *testing.T) {
	r := New(nil, []Task{{ID: "t", Title: "x", Reminder: &Reminder{Time: "99:00"}}})
	task, _ := r.Task("t")
	if task.Reminder != nil {
		t.Fatalf("expected invalid reminder to collapse, got %+v", task.Reminder)
	}
}

func TestNormalize(t *testing.T) {
	r := sampleDay()
	if got := Normalize(r); got != r {
		t.Fatalf("a consistent record should normalize to itself")
	}
	if Normalize(nil) != Empty() {
		t.Fatalf("nil should normalize to the empty day")
	}

	// Editing the shared slice in place leaves the counts stale.
	r.Tasks()[0].Done = true
	fixed := Normalize(r)
	if fixed == r {
		t.Fatalf("expected a rebuilt record")
	}
	checkIndex(t, fixed)

	zero := &Record{tasks: []Task{{ID: "a", Title: "a"}}}
	fixed = Normalize(zero)
	if fixed == zero {
		t.Fatalf("expected a rebuilt record")
	}
	checkIndex(t, fixed)
	if task, _ := fixed.Task("a"); task.Images == nil {
		t.Fatalf("images should be repaired")
	}
}

func TestEnsure(t *testing.T) {
	r := sampleDay()
	days := map[string]*Record{"2024-01-01": r}
	if Ensure(days, "2024-01-01") != r {
		t.Fatalf("expected the stored record")
	}
	missing := Ensure(days, "2024-01-02")
	if missing != Empty() || !missing.IsEmpty() {
		t.Fatalf("expected the empty day")
	}
	if Ensure(nil, "2024-01-02") != Empty() {
		t.Fatalf("nil map should ensure to the empty day")
	}
}

func TestIsEmpty(t *testing.T) {
	if !New(nil, nil).IsEmpty() {
		t.Fatalf("no content should be empty")
	}
	if New(nil, nil, WithNotes("")).IsEmpty() {
		t.Fatalf("present notes, even blank, are content")
	}
	if sampleDay().IsEmpty() {
		t.Fatalf("sample day is not empty")
	}
}

func TestMarshalJSON(t *testing.T) {
	r := New(
		[]Project{{ID: "p1", Name: "Garden", CreatedAt: 5}},
		[]Task{{ID: "t1", Title: "Weed", ProjectID: "p1", CreatedAt: 6}},
		WithFocus("ship it"),
	)
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() = %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal() = %v", err)
	}
	want := map[string]any{
		"projects": []any{map[string]any{"id": "p1", "name": "Garden", "done": false, "createdAt": 5.0}},
		"tasks": []any{map[string]any{
			"id": "t1", "title": "Weed", "done": false, "projectId": "p1", "createdAt": 6.0, "images": []any{},
		}},
		"tasksById": map[string]any{"t1": map[string]any{
			"id": "t1", "title": "Weed", "done": false, "projectId": "p1", "createdAt": 6.0, "images": []any{},
		}},
		"tasksByProject": map[string]any{"p1": []any{"t1"}},
		"doneCount":      0.0,
		"totalCount":     2.0,
		"focus":          "ship it",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json (-want +got):\n%s", diff)
	}
}
