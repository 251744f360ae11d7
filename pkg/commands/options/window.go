package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/timeutil"
)

// WindowOptions is a look-back window such as 3d or 1w2d.
type WindowOptions struct {
	Last string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions, def string) {
	cmd.Flags().StringVar(&o.Last, "last", def,
		"Time window to include (for example 3d, 1w).")
}

// Days returns the window in whole days and its normalized label.
func (o *WindowOptions) Days() (int, string, error) {
	d, label, err := timeutil.ParseWindow(o.Last)
	if err != nil {
		return 0, "", err
	}
	return timeutil.WindowDays(d), label, nil
}
