// Command demo seeds the configured store with a few days of sample plans.
package main

import (
	"context"
	"io"
	"log"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/day"
	"tableflip.dev/planner/pkg/logging"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

type plan struct {
	offset   int
	project  string
	tasks    []string
	done     int
	intent   string
	reminder string
}

var week = []plan{
	{offset: -2, project: "Garden", tasks: []string{"Buy seeds", "Turn the compost"}, done: 2},
	{offset: -1, project: "Taxes", tasks: []string{"Find receipts", "Call the accountant"}, done: 1},
	{offset: 0, project: "Ship the release", tasks: []string{"Write changelog", "Tag the build", "Announce"}, intent: "Get it out the door", reminder: "16:30"},
	{offset: 1, project: "Errands", tasks: []string{"Post office"}},
}

func main() {
	settings, err := store.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(settings)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	p, err := store.Open(settings, store.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}
	if c, ok := p.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}
	st, err := planner.Open(context.Background(), p, planner.WithLogger(logger), planner.WithRetention(settings.RetentionDays()))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = st.Close() }()

	svc := &app.Service{Planner: st}
	today := st.Today()
	for _, pl := range week {
		iso, _ := timeutil.AddDays(today, pl.offset)
		pid, err := svc.AddProject(iso, pl.project)
		if err != nil {
			log.Fatal(err)
		}
		for i, title := range pl.tasks {
			tid, err := svc.AddTask(iso, title, pid)
			if err != nil {
				log.Fatal(err)
			}
			if i < pl.done {
				_, _ = svc.ToggleTask(iso, tid)
			}
			if i == 0 && pl.reminder != "" {
				_, _ = svc.SetReminder(iso, tid, &day.ReminderPatch{Enabled: day.Ptr(true), Time: day.Ptr(pl.reminder)})
			}
		}
		if pl.intent != "" {
			_, _ = svc.SetIntent(iso, pl.intent)
		}
	}

	pp := &printers.PrettyPrint{}
	days := st.Days()
	for _, pl := range week {
		iso, _ := timeutil.AddDays(today, pl.offset)
		pp.Day(iso, days[iso], st.Selection(iso))
	}
	pp.Month(time.Now(), days, today)
}
