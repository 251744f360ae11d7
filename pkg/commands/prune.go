package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/retention"
	"tableflip.dev/planner/pkg/timeutil"
)

func addPrune(topLevel *cobra.Command) {
	maxAge := ""
	dryRun := false

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Drop days older than the retention window.",
		Long: `Prune removes stored days that fall before the retention window. The
configured retention applies on every write; prune lets a different
window be applied once.`,
		Example: `
planner prune
planner prune --max-age 52w --dry-run
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			// Retention is off for this session, --max-age decides what goes.
			return withSession(func(s *session) error {
				days := s.settings.RetentionDays()
				if maxAge != "" {
					d, _, err := timeutil.ParseWindow(maxAge)
					if err != nil {
						return err
					}
					days = timeutil.WindowDays(d)
				}

				kept, removed := retention.Prune(s.planner.Days(), days, time.Now())
				if !dryRun && len(removed) > 0 {
					s.planner.Dispatch(planner.Replace(kept))
					s.log.Info("pruned days", zap.Int("count", len(removed)), zap.Int("maxAgeDays", days))
				}
				return oo.Emit(map[string]any{"removed": removed, "dryRun": dryRun}, func() {
					verb := "removed"
					if dryRun {
						verb = "would remove"
					}
					_, _ = fmt.Fprintf(color.Output, "%s %d day(s)\n", verb, len(removed))
					for _, iso := range removed {
						_, _ = fmt.Fprintf(color.Output, "  %s\n", iso)
					}
				})
			}, planner.WithRetention(-1))
		},
	}

	cmd.Flags().StringVar(&maxAge, "max-age", "", "Retention window, for example 365d or 52w. Defaults to the configured retention.")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the days that would be removed.")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
