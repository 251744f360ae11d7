// Package printers renders planner days for the terminal.
package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/glyph"
)

// DefaultWidth is where notes wrap when no width is set.
const DefaultWidth = 80

type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	Width  int
}

var (
	spacing = strings.Repeat(" ", len("t_171dff69f8b99dca  "))
)

// DetectColor turns colour off when stdout is not a terminal or NO_COLOR
// is set.
func DetectColor() {
	fd := os.Stdout.Fd()
	if termenv.EnvNoColor() || (!isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)) {
		color.NoColor = true
	}
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return DefaultWidth
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, done, total int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d/%d", done, total)

	switch total {
	case 1:
		_, _ = c.Fprintln(pp.out(), " item")
	default:
		_, _ = c.Fprintln(pp.out(), " items")
	}
}

// Day renders one day: focus text, projects with their tasks, loose
// tasks and notes. The selected project or task is marked.
func (pp *PrettyPrint) Day(iso string, d *day.Record, sel day.Selection) {
	pp.TitleWithCount(iso, d.DoneCount(), d.TotalCount())

	if focus, ok := d.Focus(); ok && focus != "" {
		i := color.New(color.Italic)
		pp.pad()
		_, _ = i.Fprintf(pp.out(), "%s\n", focus)
	}

	if d.TotalCount() == 0 {
		f := color.New(color.Faint, color.Italic)
		pp.pad()
		_, _ = f.Fprint(pp.out(), " none\n")
	}

	owned := make(map[string]bool)
	for _, p := range d.Projects() {
		pp.line(p.ID, sel.ProjectID == p.ID && sel.TaskID == "", glyph.ForProject(p.Done), p.Name, p.Done, 0)
		for _, id := range d.ProjectTasks(p.ID) {
			owned[id] = true
			t, _ := d.Task(id)
			pp.task(t, sel, 1)
		}
	}
	for _, t := range d.Tasks() {
		if !owned[t.ID] {
			pp.task(t, sel, 0)
		}
	}

	if notes, ok := d.Notes(); ok && strings.TrimSpace(notes) != "" {
		pp.NewLine()
		f := color.New(color.Faint)
		for _, l := range strings.Split(wordwrap.String(notes, pp.width()), "\n") {
			pp.pad()
			_, _ = f.Fprintln(pp.out(), l)
		}
	}
	pp.NewLine()
}

func (pp *PrettyPrint) task(t day.Task, sel day.Selection, depth int) {
	title := t.Title
	var extras []string
	if t.Reminder != nil {
		mark := glyph.ReminderOff
		if t.Reminder.Enabled {
			mark = glyph.Reminder
		}
		extras = append(extras, strings.TrimSpace(mark.String()+" "+t.Reminder.Time))
	}
	if len(t.Images) > 0 {
		extras = append(extras, fmt.Sprintf("%s %d", glyph.Image, len(t.Images)))
	}
	if len(extras) > 0 {
		title += "  " + strings.Join(extras, "  ")
	}
	pp.line(t.ID, sel.TaskID == t.ID, glyph.ForTask(t.Done), title, t.Done, depth)
}

func (pp *PrettyPrint) line(id string, selected bool, mark glyph.Mark, text string, done bool, depth int) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	t := color.New()
	if done {
		t = color.New(color.Faint)
	}
	if selected {
		t = color.New(color.Bold)
	}

	if pp.ShowID {
		_, _ = y.Fprint(pp.out(), id)
		if n := len(spacing) - len(id); n > 0 {
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", n))
		} else {
			_, _ = y.Fprint(pp.out(), " ")
		}
	}
	cursor := " "
	if selected {
		cursor = glyph.Selected.String()
	}
	_, _ = t.Fprintf(pp.out(), "%s%s%s %s\n", cursor, strings.Repeat("  ", depth), mark, text)
}

func (pp *PrettyPrint) pad() {
	if pp.ShowID {
		_, _ = fmt.Fprint(pp.out(), spacing)
	}
}

// Key prints the glyph legend.
func (pp *PrettyPrint) Key() {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Glyph"), bold.Sprint("Meaning"))
	for _, g := range glyph.DefaultGlyphs() {
		tbl.AddRow(g.Symbol, g.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// JSON writes v as indented json.
func (pp *PrettyPrint) JSON(v any) error {
	enc := json.NewEncoder(pp.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
