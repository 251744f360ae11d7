package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/printers"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "key",
		Aliases: []string{"legend"},
		Short:   "Show the glyph legend.",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			(&printers.PrettyPrint{}).Key()
		},
	}
	topLevel.AddCommand(cmd)
}
