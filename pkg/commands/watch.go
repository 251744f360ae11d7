package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/printers"
)

func addWatch(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the focus day on screen, following midnight and edits from other shells.",
		Example: `
planner watch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			pp := &printers.PrettyPrint{ShowID: io.ShowID}
			show := func() {
				focus := s.planner.Focus()
				pp.Day(focus, s.planner.Day(focus), s.planner.Selection(focus))
			}
			show()

			cancel := s.planner.Subscribe(func(c planner.Change) {
				s.log.Debug("change",
					zap.Strings("days", c.Days),
					zap.Bool("focus", c.Focus),
					zap.Bool("selection", c.Selection),
					zap.Bool("today", c.Today),
					zap.Bool("external", c.External))
				show()
			})
			defer cancel()

			return s.planner.Run(ctx)
		},
	}

	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}
