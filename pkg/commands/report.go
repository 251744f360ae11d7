package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display recently completed projects and tasks grouped by day",
		Long: `Report lists completed projects and tasks per day within the specified window,
ending today.

Examples:
  planner report
  planner report --last 3d
  planner report --last 1w2d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			days, label, err := wo.Days()
			if err != nil {
				return err
			}
			return withSession(func(s *session) error {
				until := s.planner.Today()
				since, _ := timeutil.AddDays(until, -days)
				result, err := s.svc.Report(since, until)
				if err != nil {
					return err
				}
				return oo.Emit(result, func() {
					(&printers.PrettyPrint{}).Report(result, label)
				})
			})
		},
	}

	options.AddWindowArgs(cmd, wo, "1w")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
