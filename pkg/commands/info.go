package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
)

type infoView struct {
	Path      string   `json:"path"`
	Backend   string   `json:"backend"`
	Retention string   `json:"retention"`
	LogLevel  string   `json:"logLevel"`
	Ephemeral bool     `json:"ephemeral"`
	Today     string   `json:"today"`
	Focus     string   `json:"focus"`
	Days      int      `json:"days"`
	Keys      []string `json:"keys"`
}

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the store and where it lives.",
		Example: `
planner info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				v := infoView{
					Path:      s.settings.BasePath(),
					Backend:   s.settings.Backend,
					Retention: s.settings.Window,
					LogLevel:  s.settings.LogLevel(),
					Ephemeral: so.Ephemeral,
					Today:     s.planner.Today(),
					Focus:     s.planner.Focus(),
					Days:      len(s.planner.Days()),
					Keys:      s.p.Keys(context.Background()),
				}
				return oo.Emit(v, func() {
					tbl := uitable.New()
					tbl.Separator = "  "
					tbl.AddRow("path", v.Path)
					tbl.AddRow("backend", v.Backend)
					tbl.AddRow("retention", v.Retention)
					tbl.AddRow("log level", v.LogLevel)
					tbl.AddRow("today", v.Today)
					tbl.AddRow("focus", v.Focus)
					tbl.AddRow("days", v.Days)
					for _, k := range v.Keys {
						tbl.AddRow("key", k)
					}
					_, _ = fmt.Fprintln(color.Output, tbl)
				})
			})
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
