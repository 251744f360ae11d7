package commands

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(planner completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(planner completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

type completer func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

func projectCompletions(on *options.OnOptions) completer {
	return dayCompletions(on, func(svc *app.Service, iso string) []string {
		d, err := svc.Day(iso)
		if err != nil {
			return nil
		}
		var out []string
		for _, p := range d.Projects() {
			out = append(out, p.ID+"\t"+p.Name)
		}
		return out
	})
}

func taskCompletions(on *options.OnOptions) completer {
	return dayCompletions(on, func(svc *app.Service, iso string) []string {
		d, err := svc.Day(iso)
		if err != nil {
			return nil
		}
		var out []string
		for _, t := range d.Tasks() {
			out = append(out, t.ID+"\t"+t.Title)
		}
		return out
	})
}

// dayCompletions completes the first argument with ids from the --on day.
func dayCompletions(on *options.OnOptions, list func(svc *app.Service, iso string) []string) completer {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		iso, err := on.ISO(time.Now())
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		s, err := openSession(context.Background())
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		defer s.Close()
		return list(s.svc, iso), cobra.ShellCompDirectiveNoFileComp
	}
}
