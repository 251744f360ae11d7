package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/logging"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/store"
)

// session is one opened planner store and everything built on it.
type session struct {
	settings *store.Settings
	log      *zap.Logger
	p        store.Persistence
	planner  *planner.Store
	svc      *app.Service
}

type logConfig struct {
	level, format string
}

func (c logConfig) LogLevel() string  { return c.level }
func (c logConfig) LogFormat() string { return c.format }

// openSession loads config, builds the logger and hydrates the store.
// Extra options are applied after the configured ones.
func openSession(ctx context.Context, opts ...planner.Option) (*session, error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	lc := logConfig{level: settings.LogLevel(), format: settings.LogFormat()}
	if so.LogLevel != "" {
		lc.level = so.LogLevel
	}
	log, err := logging.New(lc)
	if err != nil {
		return nil, err
	}

	var p store.Persistence
	if so.Ephemeral {
		p = store.NewMemory()
	} else if p, err = store.Open(settings, store.WithLogger(log)); err != nil {
		return nil, err
	}

	opts = append([]planner.Option{
		planner.WithLogger(log),
		planner.WithRetention(settings.RetentionDays()),
	}, opts...)
	st, err := planner.Open(ctx, p, opts...)
	if err != nil {
		closePersistence(p)
		return nil, err
	}
	log.Debug("store opened",
		zap.String("path", settings.BasePath()),
		zap.String("backend", settings.Backend),
		zap.Bool("ephemeral", so.Ephemeral),
		zap.Int("days", len(st.Days())))

	return &session{
		settings: settings,
		log:      log,
		p:        p,
		planner:  st,
		svc:      &app.Service{Planner: st},
	}, nil
}

func (s *session) Close() {
	_ = s.planner.Close()
	closePersistence(s.p)
	_ = s.log.Sync()
}

func closePersistence(p store.Persistence) {
	if c, ok := p.(io.Closer); ok {
		_ = c.Close()
	}
}

// withSession opens a session, runs fn and closes it again.
func withSession(fn func(s *session) error, opts ...planner.Option) error {
	s, err := openSession(context.Background(), opts...)
	if err != nil {
		return oo.HandleError(err)
	}
	defer s.Close()
	return oo.HandleError(fn(s))
}

// day resolves --on to a concrete day, defaulting to the focus day.
func (s *session) day(on *options.OnOptions) (string, error) {
	iso, err := on.ISO(time.Now())
	if err != nil {
		return "", err
	}
	return s.svc.Resolve(iso)
}

// changed reports the outcome of a mutation that returns no value.
func changed(ok bool, what string) error {
	return oo.Emit(map[string]bool{"changed": ok}, func() {
		if !ok {
			_, _ = fmt.Fprintln(color.Output, "nothing changed")
			return
		}
		_, _ = fmt.Fprintln(color.Output, what)
	})
}

// created reports the id of a newly created project or task.
func created(id, what string) error {
	return oo.Emit(map[string]string{"id": id}, func() {
		if id == "" {
			_, _ = fmt.Fprintln(color.Output, "nothing changed")
			return
		}
		_, _ = fmt.Fprintf(color.Output, "%s %s\n", what, id)
	})
}
