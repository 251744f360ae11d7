package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/printers"
)

func addBacklog(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "backlog",
		Short: "List open tasks left behind on earlier days.",
		Example: `
planner backlog
planner backlog --last 0 --show-id
planner task move t_1 --on 2024-01-09 --to today
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			days, _, err := wo.Days()
			if err != nil {
				return err
			}
			return withSession(func(s *session) error {
				items, err := s.svc.Backlog(days)
				if err != nil {
					return err
				}
				return oo.Emit(items, func() {
					(&printers.PrettyPrint{ShowID: io.ShowID}).Backlog(items)
				})
			})
		},
	}

	options.AddWindowArgs(cmd, wo, "2w")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
