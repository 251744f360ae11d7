package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/day"
)

// dayCommand builds a command that runs against the --on day.
func dayCommand(use, short string, args cobra.PositionalArgs, run func(s *session, iso string, args []string) error) (*cobra.Command, *options.OnOptions) {
	on := &options.OnOptions{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return withSession(func(s *session) error {
				iso, err := s.day(on)
				if err != nil {
					return err
				}
				return run(s, iso, args)
			})
		},
	}
	options.AddOnArgs(cmd, on)
	options.AddOutputArg(cmd, oo)
	return cmd, on
}

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Add, edit, reorder or move tasks on a day.",
	}

	addTaskAdd(cmd)

	rename, on := dayCommand("rename <task id> <title>", "Retitle a task", cobra.MinimumNArgs(2),
		func(s *session, iso string, args []string) error {
			ok, err := s.svc.RenameTask(iso, args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			return changed(ok, "renamed task "+args[0])
		})
	rename.ValidArgsFunction = taskCompletions(on)
	cmd.AddCommand(rename)

	toggle, on := dayCommand("toggle <task id>", "Flip a task between open and done", cobra.ExactArgs(1),
		func(s *session, iso string, args []string) error {
			ok, err := s.svc.ToggleTask(iso, args[0])
			if err != nil {
				return err
			}
			return changed(ok, "toggled task "+args[0])
		})
	toggle.Aliases = []string{"done", "complete"}
	toggle.ValidArgsFunction = taskCompletions(on)
	cmd.AddCommand(toggle)

	remove, on := dayCommand("rm <task id>", "Remove a task", cobra.ExactArgs(1),
		func(s *session, iso string, args []string) error {
			ok, err := s.svc.RemoveTask(iso, args[0])
			if err != nil {
				return err
			}
			return changed(ok, "removed task "+args[0])
		})
	remove.Aliases = []string{"remove", "delete"}
	remove.ValidArgsFunction = taskCompletions(on)
	cmd.AddCommand(remove)

	reorder, _ := dayCommand("reorder <project id> <task id>...", "Reorder the tasks of a project", cobra.MinimumNArgs(2),
		func(s *session, iso string, args []string) error {
			ok, err := s.svc.ReorderTasks(iso, args[0], args[1:])
			if err != nil {
				return err
			}
			return changed(ok, "reordered tasks of "+args[0])
		})
	reorder.Example = `
planner task reorder p_1 t_3 t_1
`
	cmd.AddCommand(reorder)

	addTaskRemind(cmd)
	addTaskImage(cmd)
	addTaskMove(cmd)

	topLevel.AddCommand(cmd)
}

func addTaskAdd(parent *cobra.Command) {
	project := ""
	sel := false

	cmd, _ := dayCommand("add <title>", "Add a task", func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("requires a task")
		}
		return nil
	}, func(s *session, iso string, args []string) error {
		title := strings.Join(args, " ")
		if sel {
			if project == "" {
				return errors.New("--select needs --project")
			}
			id, err := s.svc.CreateTask(iso, project, title, func(id string) {
				s.planner.SetSelectedTask(iso, id)
			})
			if err != nil {
				return err
			}
			return created(id, "added task")
		}
		id, err := s.svc.AddTask(iso, title, project)
		if err != nil {
			return err
		}
		return created(id, "added task")
	})
	cmd.Example = `
planner task add Call the bank
planner task add --project p_1 --select Weed the beds
`
	cmd.Flags().StringVarP(&project, "project", "p", "", "Owning project id.")
	cmd.Flags().BoolVar(&sel, "select", false, "Select the new task.")

	parent.AddCommand(cmd)
}

func addTaskRemind(parent *cobra.Command) {
	var (
		at      string
		lead    int
		id      string
		enable  bool
		disable bool
		unset   bool
	)

	cmd, on := dayCommand("remind <task id>", "Set, change or clear a task reminder", cobra.ExactArgs(1),
		func(s *session, iso string, args []string) error {
			var patch *day.ReminderPatch
			if !unset {
				patch = &day.ReminderPatch{}
				if at != "" {
					patch.Time = day.Ptr(at)
				}
				if lead >= 0 {
					patch.LeadMinutes = day.Ptr(float64(lead))
				}
				if id != "" {
					patch.ReminderID = day.Ptr(id)
				}
				switch {
				case enable && disable:
					return errors.New("--enable and --disable are exclusive")
				case enable:
					patch.Enabled = day.Ptr(true)
				case disable:
					patch.Enabled = day.Ptr(false)
				}
				if *patch == (day.ReminderPatch{}) {
					return errors.New("nothing to set, use --time, --lead, --enable, --disable or --clear")
				}
			}
			ok, err := s.svc.SetReminder(iso, args[0], patch)
			if err != nil {
				return err
			}
			return changed(ok, "updated reminder of "+args[0])
		})
	cmd.Example = `
planner task remind t_1 --time 09:30 --lead 15 --enable
planner task remind t_1 --clear
`
	cmd.ValidArgsFunction = taskCompletions(on)
	cmd.Flags().StringVar(&at, "time", "", "Reminder time as HH:MM.")
	cmd.Flags().IntVar(&lead, "lead", -1, "Minutes before the time to fire.")
	cmd.Flags().StringVar(&id, "reminder-id", "", "External reminder id.")
	cmd.Flags().BoolVar(&enable, "enable", false, "Enable the reminder.")
	cmd.Flags().BoolVar(&disable, "disable", false, "Disable the reminder.")
	cmd.Flags().BoolVar(&unset, "clear", false, "Remove the reminder.")

	parent.AddCommand(cmd)
}

func addTaskImage(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "image",
		Aliases: []string{"images"},
		Short:   "Attach or detach task images.",
	}

	add, on := dayCommand("add <task id> <url>", "Attach an image url to a task", cobra.ExactArgs(2),
		func(s *session, iso string, args []string) error {
			ok, err := s.svc.AddImage(iso, args[0], args[1])
			if err != nil {
				return err
			}
			return changed(ok, "attached image to "+args[0])
		})
	add.ValidArgsFunction = taskCompletions(on)
	cmd.AddCommand(add)

	index := -1
	remove, on := dayCommand("rm <task id> <url>", "Detach an image url from a task", cobra.ExactArgs(2),
		func(s *session, iso string, args []string) error {
			ok, err := s.svc.RemoveImage(iso, args[0], args[1], index)
			if err != nil {
				return err
			}
			return changed(ok, "detached image from "+args[0])
		})
	remove.Aliases = []string{"remove"}
	remove.ValidArgsFunction = taskCompletions(on)
	remove.Flags().IntVar(&index, "index", -1, "Position of the copy to remove when the url is attached more than once.")
	cmd.AddCommand(remove)

	parent.AddCommand(cmd)
}

func addTaskMove(parent *cobra.Command) {
	to := &options.OnOptions{}

	cmd, on := dayCommand("move <task id>", "Move a task to another day", cobra.ExactArgs(1),
		func(s *session, iso string, args []string) error {
			if to.OnString == "" {
				return errors.New("requires --to")
			}
			target, err := s.day(to)
			if err != nil {
				return err
			}
			if err := s.svc.MoveTask(iso, target, args[0]); err != nil {
				return err
			}
			return changed(iso != target, fmt.Sprintf("moved %s to %s", args[0], target))
		})
	cmd.Aliases = []string{"mv", "migrate"}
	cmd.Example = `
planner task move t_1 --to tomorrow
planner task move t_1 --on 2024-01-09 --to 2024-01-10
`
	cmd.ValidArgsFunction = taskCompletions(on)
	cmd.Flags().StringVar(&to.OnString, "to", "", "Target day.")

	parent.AddCommand(cmd)
}
