package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/textfield"
)

func addNotes(topLevel *cobra.Command) {
	cmd := textFieldCommand("notes [text]", "Show or replace the notes of a day", textfield.Notes)
	cmd.Aliases = []string{"note"}
	cmd.Example = `
planner notes
planner notes --on yesterday Fixed the fence.
planner notes --clear
`
	topLevel.AddCommand(cmd)
}

func addIntent(topLevel *cobra.Command) {
	cmd := textFieldCommand("intent [text]", "Show or replace the one line intention of a day", textfield.DayFocus)
	cmd.Example = `
planner intent Finish the tax return
`
	topLevel.AddCommand(cmd)
}

func textFieldCommand(use, short string, field textfield.Field) *cobra.Command {
	unset := false
	newController := textfield.New(field)

	cmd, _ := dayCommand(use, short, cobra.ArbitraryArgs,
		func(s *session, iso string, args []string) error {
			ctl := newController(s.planner, iso)
			defer ctl.Close()

			if len(args) == 0 && !unset {
				value := ctl.Value()
				return oo.Emit(map[string]string{"date": iso, "text": value}, func() {
					if value == "" {
						_, _ = fmt.Fprintln(color.Output, "(empty)")
						return
					}
					_, _ = fmt.Fprintln(color.Output, value)
				})
			}

			ctl.SetValue(strings.Join(args, " "))
			return changed(ctl.Commit(), "saved")
		})
	cmd.Flags().BoolVar(&unset, "clear", false, "Clear the text.")
	return cmd
}
