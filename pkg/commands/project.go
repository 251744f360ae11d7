package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
)

func addProject(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects", "p"},
		Short:   "Add, rename, toggle or remove projects on a day.",
	}

	addProjectAdd(cmd)
	addProjectRename(cmd)
	addProjectToggle(cmd)
	addProjectRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addProjectAdd(parent *cobra.Command) {
	on := &options.OnOptions{}
	sel := false

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a project",
		Example: `
planner project add Garden
planner project add --on tomorrow --select Tax return
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a project name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			name := strings.Join(args, " ")
			return withSession(func(s *session) error {
				iso, err := s.day(on)
				if err != nil {
					return err
				}
				var selectFn func(string)
				if sel {
					selectFn = func(id string) { s.planner.SetSelectedProject(iso, id) }
				}
				id, err := s.svc.CreateProject(iso, name, selectFn)
				if err != nil {
					return err
				}
				return created(id, "added project")
			})
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&sel, "select", false, "Select the new project.")
	parent.AddCommand(cmd)
}

func addProjectRename(parent *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "rename <project id> <name>",
		Short: "Rename a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				iso, err := s.day(on)
				if err != nil {
					return err
				}
				ok, err := s.svc.RenameProject(iso, args[0], strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				return changed(ok, "renamed project "+args[0])
			})
		},
		ValidArgsFunction: projectCompletions(on),
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addProjectToggle(parent *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:     "toggle <project id>",
		Aliases: []string{"done", "complete"},
		Short:   "Flip a project and all of its tasks between open and done",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				iso, err := s.day(on)
				if err != nil {
					return err
				}
				ok, err := s.svc.ToggleProject(iso, args[0])
				if err != nil {
					return err
				}
				return changed(ok, "toggled project "+args[0])
			})
		},
		ValidArgsFunction: projectCompletions(on),
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addProjectRemove(parent *cobra.Command) {
	on := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:     "rm <project id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a project together with its tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				iso, err := s.day(on)
				if err != nil {
					return err
				}
				ok, err := s.svc.RemoveProject(iso, args[0])
				if err != nil {
					return err
				}
				return changed(ok, "removed project "+args[0])
			})
		},
		ValidArgsFunction: projectCompletions(on),
	}

	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}
