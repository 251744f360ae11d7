package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/timeutil"
)

type monthDay struct {
	Date  string `json:"date"`
	Done  int    `json:"done"`
	Total int    `json:"total"`
}

func addMonth(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	year := false

	cmd := &cobra.Command{
		Use:     "month",
		Aliases: []string{"calendar", "cal"},
		Short:   "Show a calendar of the month around a day.",
		Example: `
planner month
planner month --on 2024-02-01
planner month --year
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				iso, err := s.day(on)
				if err != nil {
					return err
				}
				then, _ := timeutil.ParseISO(iso)
				months := 1
				if year {
					then = time.Date(then.Year(), time.January, 1, 0, 0, 0, 0, time.Local)
					months = 12
				}

				days := s.planner.Days()
				var counts []monthDay
				for m, t := 0, then; m < months; m, t = m+1, printers.NextMonth(t) {
					for i := 1; i <= printers.DaysIn(t); i++ {
						date := timeutil.FormatISO(time.Date(t.Year(), t.Month(), i, 0, 0, 0, 0, time.Local))
						if d, ok := days[date]; ok && d.TotalCount() > 0 {
							counts = append(counts, monthDay{Date: date, Done: d.DoneCount(), Total: d.TotalCount()})
						}
					}
				}

				pp := &printers.PrettyPrint{}
				return oo.Emit(counts, func() {
					for m, t := 0, then; m < months; m, t = m+1, printers.NextMonth(t) {
						pp.Month(t, days, s.planner.Today())
					}
				})
			})
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&year, "year", false, "Show the whole year.")
	topLevel.AddCommand(cmd)
}
