package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/timeutil"
)

const (
	layoutISOLoose = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions selects the day a command works on.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a day, example: --on="2020-02-28", --on="2/28" or --on=tomorrow. Defaults to the focus day.`)
}

// ISO resolves the flag against now. An empty flag resolves to "", which
// the planner reads as the focus day.
func (o *OnOptions) ISO(now time.Time) (string, error) {
	return ParseDay(o.OnString, now)
}

// ParseDay accepts YYYY-MM-DD, YYYY-M-D, M/D, today, tomorrow and
// yesterday.
func ParseDay(in string, now time.Time) (string, error) {
	in = strings.TrimSpace(in)
	switch strings.ToLower(in) {
	case "":
		return "", nil
	case "today":
		return timeutil.FormatISO(now), nil
	case "tomorrow":
		return timeutil.FormatISO(now.AddDate(0, 0, 1)), nil
	case "yesterday":
		return timeutil.FormatISO(now.AddDate(0, 0, -1)), nil
	}
	if timeutil.IsISO(in) {
		return in, nil
	}
	if t, err := time.ParseInLocation(layoutISOLoose, in, time.Local); err == nil {
		return timeutil.FormatISO(t), nil
	}
	t, err := time.ParseInLocation(layoutISOShort, in, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid day %q, want YYYY-MM-DD or M/D", in)
	}
	t = t.AddDate(now.Year(), 0, 0)
	// I am gonna assume if you said 1/3 on 12/5, you meant next year, not 11 months ago.
	if t.Before(timeutil.StartOfDay(now)) {
		t = t.AddDate(1, 0, 0)
	}
	return timeutil.FormatISO(t), nil
}
