package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/store"
)

func newService(t *testing.T) *Service {
	t.Helper()
	now, err := time.ParseInLocation("2006-01-02 15:04", "2024-01-10 09:00", time.Local)
	if err != nil {
		t.Fatal(err)
	}
	st, err := planner.Open(context.Background(), store.NewMemory(), planner.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	counter := 0
	return &Service{
		Planner: st,
		IDs: func(prefix string) string {
			counter++
			return fmt.Sprintf("%s_%d", prefix, counter)
		},
	}
}

func TestNewID(t *testing.T) {
	id := NewID("task")
	if !regexp.MustCompile(`^task_[0-9a-f]{16}$`).MatchString(id) {
		t.Fatalf("unexpected id %q", id)
	}
	if NewID("task") == id {
		t.Fatalf("ids should differ")
	}
}

func TestNoStoreConfigured(t *testing.T) {
	svc := &Service{}
	if _, err := svc.AddProject("", "x"); err == nil {
		t.Fatal("expected an error without a store")
	}
	if _, err := svc.Backlog(0); err == nil {
		t.Fatal("expected an error without a store")
	}
}

func TestResolve(t *testing.T) {
	svc := newService(t)
	if iso, _ := svc.Resolve(""); iso != "2024-01-10" {
		t.Fatalf("empty date should resolve to the focus, got %q", iso)
	}
	if _, err := svc.Resolve("2024-1-1"); !errors.Is(err, planner.ErrInvalidDate) {
		t.Fatalf("Resolve() = %v, want ErrInvalidDate", err)
	}
}

func TestProjectAndTaskFlow(t *testing.T) {
	svc := newService(t)

	pid, err := svc.AddProject("", "  Garden ")
	if err != nil || pid != "p_1" {
		t.Fatalf("AddProject() = %q, %v", pid, err)
	}
	if id, _ := svc.AddProject("", "   "); id != "" {
		t.Fatalf("blank project should not be created, got %q", id)
	}

	tid, err := svc.AddTask("", "Weed", pid)
	if err != nil || tid == "" {
		t.Fatalf("AddTask() = %q, %v", tid, err)
	}
	if id, _ := svc.AddTask("", "Orphan", "missing"); id != "" {
		t.Fatalf("task for a missing project should not be created")
	}

	if changed, _ := svc.ToggleProject("", pid); !changed {
		t.Fatal("expected toggle")
	}
	d, _ := svc.Day("")
	if task, _ := d.Task(tid); !task.Done {
		t.Fatalf("task should follow its project")
	}

	if changed, _ := svc.RenameTask("", tid, "Weed"); changed {
		t.Fatal("same title should not change anything")
	}
	if changed, _ := svc.SetReminder("", tid, &day.ReminderPatch{Time: day.Ptr("07:00")}); !changed {
		t.Fatal("expected reminder")
	}
	if changed, _ := svc.AddImage("", tid, "a.png"); !changed {
		t.Fatal("expected image")
	}
	if changed, _ := svc.RemoveImage("", tid, "a.png", 0); !changed {
		t.Fatal("expected image removal")
	}

	if changed, _ := svc.RemoveProject("", pid); !changed {
		t.Fatal("expected removal")
	}
	d, _ = svc.Day("")
	if d.TotalCount() != 0 {
		t.Fatalf("cascade left %d items", d.TotalCount())
	}
}

func TestCreateFlowsSelect(t *testing.T) {
	svc := newService(t)
	iso := "2024-01-10"

	var selected []string
	pid, err := svc.CreateProject(iso, "Garden", func(id string) {
		svc.Planner.SetSelectedProject(iso, id)
		selected = append(selected, id)
	})
	if err != nil || pid == "" {
		t.Fatalf("CreateProject() = %q, %v", pid, err)
	}
	if svc.Planner.SelectedProject(iso) != pid {
		t.Fatalf("project not selected")
	}

	tid, err := svc.CreateTask(iso, pid, "Weed", func(id string) {
		svc.Planner.SetSelectedTask(iso, id)
		selected = append(selected, id)
	})
	if err != nil || tid == "" {
		t.Fatalf("CreateTask() = %q, %v", tid, err)
	}
	if diff := cmp.Diff(day.Selection{ProjectID: pid, TaskID: tid}, svc.Planner.Selection(iso)); diff != "" {
		t.Fatalf("selection (-want +got):\n%s", diff)
	}

	if id, _ := svc.CreateTask(iso, "", "No project", func(string) { t.Fatal("unexpected select") }); id != "" {
		t.Fatalf("task without a project should not be created")
	}
	if id, _ := svc.CreateProject(iso, " ", func(string) { t.Fatal("unexpected select") }); id != "" {
		t.Fatalf("blank project should not be created")
	}
	if len(selected) != 2 {
		t.Fatalf("selected %v", selected)
	}
}

func TestMoveTask(t *testing.T) {
	svc := newService(t)
	pid, _ := svc.AddProject("2024-01-09", "Garden")
	tid, _ := svc.AddTask("2024-01-09", "Weed", pid)

	if err := svc.MoveTask("2024-01-09", "2024-01-10", tid); err != nil {
		t.Fatalf("MoveTask() = %v", err)
	}
	from, _ := svc.Day("2024-01-09")
	to, _ := svc.Day("2024-01-10")
	if from.HasTask(tid) {
		t.Fatal("task still on the source day")
	}
	task, ok := to.Task(tid)
	if !ok || task.ProjectID != "" {
		t.Fatalf("expected an unowned task on the target day, got %+v", task)
	}

	if err := svc.MoveTask("2024-01-09", "2024-01-10", tid); !errors.Is(err, ErrNotFound) {
		t.Fatalf("MoveTask() = %v, want ErrNotFound", err)
	}
}

func TestReportAndBacklog(t *testing.T) {
	svc := newService(t)
	old, _ := svc.AddTask("2024-01-08", "Call bank", "")
	doneID, _ := svc.AddTask("2024-01-09", "Pay rent", "")
	_, _ = svc.ToggleTask("2024-01-09", doneID)
	open, _ := svc.AddTask("2024-01-09", "File taxes", "")
	_, _ = svc.AddTask("2024-01-10", "Today", "")

	report, err := svc.Report("2024-01-10", "2024-01-08")
	if err != nil {
		t.Fatalf("Report() = %v", err)
	}
	if report.Since != "2024-01-08" || report.Done != 1 || report.Total != 4 || len(report.Sections) != 3 {
		t.Fatalf("unexpected report %+v", report)
	}
	if diff := cmp.Diff([]ReportItem{{ID: doneID, Title: "Pay rent", IsTask: true}}, report.Sections[1].Entries); diff != "" {
		t.Fatalf("entries (-want +got):\n%s", diff)
	}

	backlog, err := svc.Backlog(0)
	if err != nil {
		t.Fatalf("Backlog() = %v", err)
	}
	var ids []string
	for _, item := range backlog {
		ids = append(ids, item.Task.ID)
	}
	if diff := cmp.Diff([]string{open, old}, ids); diff != "" {
		t.Fatalf("backlog (-want +got):\n%s", diff)
	}
	if recent, _ := svc.Backlog(1); len(recent) != 1 {
		t.Fatalf("windowed backlog = %d items", len(recent))
	}
}
