package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/printers"
)

var (
	oo = &options.OutputOptions{}
	so = &options.StoreOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "planner",
		Short: base.Wrap80("Plan projects and tasks day by day on the command line."),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			printers.DetectColor()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddStoreArgs(cmd, so)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addGet(topLevel)
	addProject(topLevel)
	addTask(topLevel)
	addFocus(topLevel)
	addSelect(topLevel)
	addNotes(topLevel)
	addIntent(topLevel)
	addPrune(topLevel)
	addMonth(topLevel)
	addWatch(topLevel)
	addReport(topLevel)
	addBacklog(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
