package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/day"
)

func init() {
	color.NoColor = true
}

func TestDay(t *testing.T) {
	d := day.New(
		[]day.Project{{ID: "p1", Name: "Garden"}},
		[]day.Task{
			{ID: "t1", Title: "Weed", ProjectID: "p1", Done: true},
			{ID: "t2", Title: "Call bank", Images: []string{"a.png"}, Reminder: &day.Reminder{Enabled: true, Time: "09:30"}},
		},
		day.WithFocus("Ship it"),
		day.WithNotes("one two three four"),
	)

	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Width: 9}
	pp.Day("2024-01-10", d, day.Selection{ProjectID: "p1", TaskID: "t1"})

	want := []string{
		"2024-01-10 - 1/3 items",
		"Ship it",
		" □ Garden",
		"›  ✘ Weed",
		" ● Call bank  ⏰ 09:30  ▣ 1",
		"",
		"one two",
		"three",
		"four",
		"",
	}
	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Day() (-want +got):\n%s", diff)
	}
}

func TestDayEmpty(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Day("2024-01-10", day.Empty(), day.Selection{})
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected an empty marker, got %q", buf.String())
	}
}

func TestCalendarHelpers(t *testing.T) {
	feb := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.Local)
	if got := DaysIn(feb); got != 29 {
		t.Fatalf("DaysIn() = %d, want 29", got)
	}
	if got := StartDay(feb); got != time.Thursday {
		t.Fatalf("StartDay() = %v, want Thursday", got)
	}
	if got := NextMonth(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.Local)); got.Month() != time.February {
		t.Fatalf("NextMonth() = %v", got)
	}
}

func TestMonth(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	days := map[string]*day.Record{
		"2024-02-01": day.New(nil, []day.Task{{ID: "t1", Title: "a"}}),
	}
	pp.Month(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.Local), days, "2024-02-01")

	lines := strings.Split(buf.String(), "\n")
	if !strings.Contains(lines[0], "February 2024") {
		t.Fatalf("missing header: %q", lines[0])
	}
	// February 2024 starts on a Thursday.
	if want := strings.Repeat("   ", 4) + " 1  2  3 "; lines[1] != want {
		t.Fatalf("first week = %q, want %q", lines[1], want)
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Report(app.ReportResult{
		Since: "2024-01-08",
		Until: "2024-01-10",
		Sections: []app.ReportSection{{
			Day: "2024-01-09", Done: 1, Total: 2,
			Entries: []app.ReportItem{{ID: "t1", Title: "Weed", Project: "Garden", IsTask: true}},
		}},
		Done:  1,
		Total: 2,
	}, "3d")

	for _, want := range []string{"last 3d (2024-01-08 → 2024-01-10)", "2024-01-09  1/2", "✘ Weed (Garden)", "1 of 2 items completed"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("report missing %q:\n%s", want, buf.String())
		}
	}
}

func TestBacklog(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, ShowID: true}
	pp.Backlog([]app.BacklogItem{{Day: "2024-01-09", Task: day.Task{ID: "t1", Title: "Weed"}, Project: "Garden"}})
	for _, want := range []string{"t1", "2024-01-09", "● Weed", "Garden"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("backlog missing %q:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	pp.Backlog(nil)
	if !strings.Contains(buf.String(), "Nothing left behind.") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
