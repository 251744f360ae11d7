package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func addSelect(topLevel *cobra.Command) {
	cmd, _ := dayCommand("select", "Show the selection of a day", cobra.NoArgs,
		func(s *session, iso string, _ []string) error {
			sel := s.planner.Selection(iso)
			return oo.Emit(sel, func() {
				switch {
				case sel.TaskID != "":
					_, _ = fmt.Fprintf(color.Output, "task %s (project %q)\n", sel.TaskID, sel.ProjectID)
				case sel.ProjectID != "":
					_, _ = fmt.Fprintf(color.Output, "project %s\n", sel.ProjectID)
				default:
					_, _ = fmt.Fprintln(color.Output, "nothing selected")
				}
			})
		})
	cmd.Long = "A day has at most one selection: a project, or a task together with its project."

	project, on := dayCommand("project <project id>", "Select a project", cobra.ExactArgs(1),
		func(s *session, iso string, args []string) error {
			if !s.planner.Day(iso).HasProject(args[0]) {
				return fmt.Errorf("no project %s on %s", args[0], iso)
			}
			return changed(s.planner.SetSelectedProject(iso, args[0]), "selected project "+args[0])
		})
	project.ValidArgsFunction = projectCompletions(on)
	cmd.AddCommand(project)

	task, on := dayCommand("task <task id>", "Select a task and its project", cobra.ExactArgs(1),
		func(s *session, iso string, args []string) error {
			if !s.planner.Day(iso).HasTask(args[0]) {
				return fmt.Errorf("no task %s on %s", args[0], iso)
			}
			return changed(s.planner.SetSelectedTask(iso, args[0]), "selected task "+args[0])
		})
	task.ValidArgsFunction = taskCompletions(on)
	cmd.AddCommand(task)

	reset, _ := dayCommand("clear", "Clear the selection", cobra.NoArgs,
		func(s *session, iso string, _ []string) error {
			return changed(s.planner.SetSelectedProject(iso, ""), "cleared selection")
		})
	cmd.AddCommand(reset)

	topLevel.AddCommand(cmd)
}
