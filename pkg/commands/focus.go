package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
)

func addFocus(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "focus [day]",
		Short: "Show or move the focus day that commands default to.",
		Example: `
planner focus
planner focus tomorrow
planner focus 2024-03-01
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				if len(args) == 1 {
					iso, err := options.ParseDay(args[0], time.Now())
					if err != nil {
						return err
					}
					if err := s.planner.SetFocus(iso); err != nil {
						return err
					}
				}
				focus := s.planner.Focus()
				return oo.Emit(map[string]string{"focus": focus, "today": s.planner.Today()}, func() {
					_, _ = fmt.Fprintln(color.Output, focus)
				})
			})
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
