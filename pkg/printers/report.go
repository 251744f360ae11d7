package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/glyph"
)

func (pp *PrettyPrint) Report(result app.ReportResult, label string) {
	_, _ = fmt.Fprintf(pp.out(), "Report · last %s (%s → %s)\n", label, result.Since, result.Until)

	if result.Done == 0 {
		_, _ = fmt.Fprintln(pp.out(), "  No completed items found in this window.")
		pp.NewLine()
		return
	}

	b := color.New(color.Bold)
	for _, section := range result.Sections {
		if len(section.Entries) == 0 {
			continue
		}
		_, _ = b.Fprintf(pp.out(), "\n%s", section.Day)
		_, _ = fmt.Fprintf(pp.out(), "  %d/%d\n", section.Done, section.Total)
		for _, item := range section.Entries {
			mark := glyph.ProjectDone
			if item.IsTask {
				mark = glyph.TaskDone
			}
			title := item.Title
			if strings.TrimSpace(title) == "" {
				title = "<empty>"
			}
			if item.Project != "" {
				title = fmt.Sprintf("%s (%s)", title, item.Project)
			}
			_, _ = fmt.Fprintf(pp.out(), "  %s %s\n", mark, title)
		}
	}
	_, _ = fmt.Fprintf(pp.out(), "\n%d of %d items completed\n\n", result.Done, result.Total)
}

func (pp *PrettyPrint) Backlog(items []app.BacklogItem) {
	if len(items) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), "Nothing left behind.")
		return
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(pp.width() / 2)
	tbl.Wrap = true
	header := []interface{}{bold.Sprint("Day"), bold.Sprint("Task"), bold.Sprint("Project")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, item := range items {
		row := []interface{}{item.Day, glyph.Task.String() + " " + item.Task.Title, item.Project}
		if pp.ShowID {
			row = append([]interface{}{item.Task.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
