package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/codec"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/printers"
)

type dayView struct {
	Date      string        `json:"date"`
	Focus     bool          `json:"focus"`
	Day       *day.Record   `json:"day"`
	Selection day.Selection `json:"selection"`
}

func addGet(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}
	all := false

	cmd := &cobra.Command{
		Use:     "get",
		Aliases: []string{"show"},
		Short:   "Show the projects and tasks of a day.",
		Example: `
planner get
planner get --on tomorrow --show-id
planner get --all --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				pp := &printers.PrettyPrint{ShowID: io.ShowID}
				if all {
					days := s.planner.Days()
					views := make([]dayView, 0, len(days))
					for _, iso := range codec.ISOKeys(days) {
						views = append(views, dayView{Date: iso, Focus: iso == s.planner.Focus(), Day: days[iso], Selection: s.planner.Selection(iso)})
					}
					return oo.Emit(views, func() {
						if len(views) == 0 {
							pp.Title("No days planned yet.")
						}
						for _, v := range views {
							pp.Day(v.Date, v.Day, v.Selection)
						}
					})
				}

				iso, err := s.day(on)
				if err != nil {
					return err
				}
				v := dayView{Date: iso, Focus: iso == s.planner.Focus(), Day: s.planner.Day(iso), Selection: s.planner.Selection(iso)}
				return oo.Emit(v, func() {
					pp.Day(v.Date, v.Day, v.Selection)
				})
			})
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&all, "all", false, "Show every stored day.")

	topLevel.AddCommand(cmd)
}
