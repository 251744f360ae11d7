package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/timeutil"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Month prints the calendar for then's month. Days with open work are
// bold, fully completed days are green and today is underlined.
func (pp *PrettyPrint) Month(then time.Time, days map[string]*day.Record, today string) {
	n := DaysIn(then)
	open := make([]int, n)
	done := make([]int, n)
	for i := 0; i < n; i++ {
		d := days[isoOf(then, i+1)]
		done[i] = d.DoneCount()
		open[i] = d.TotalCount() - d.DoneCount()
	}
	pp.PrintMonthCount(then, open, done, today)
}

// PrintMonthCount prints a month grid. open and done are indexed by day of
// month minus one; short slices count as zero.
func (pp *PrettyPrint) PrintMonthCount(then time.Time, open, done []int, today string) {
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", then.Month(), then.Year())
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	days := DaysIn(then)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(pp.out(), "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	l3 := color.New(color.FgGreen)

	for i := 0; i < days; i++ {
		printer := l1
		switch {
		case at(open, i) > 0:
			printer = l2
		case at(done, i) > 0:
			printer = l3
		}
		if isoOf(then, i+1) == today {
			printer = color.New(color.Underline, color.Bold)
		}
		_, _ = printer.Fprintf(pp.out(), "%2d", i+1)
		_, _ = fmt.Fprint(pp.out(), " ")

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

func isoOf(then time.Time, dom int) string {
	return timeutil.FormatISO(time.Date(then.Year(), then.Month(), dom, 0, 0, 0, 0, time.Local))
}

func at(counts []int, i int) int {
	if i < len(counts) {
		return counts[i]
	}
	return 0
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
