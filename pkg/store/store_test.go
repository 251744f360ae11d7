package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func backends(t *testing.T) map[string]Persistence {
	t.Helper()
	disk, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	db, err := OpenSQLite(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.poll = 10 * time.Millisecond
	t.Cleanup(func() { _ = db.Close() })
	return map[string]Persistence{
		"diskv":  disk,
		"memory": NewMemory(),
		"sqlite": db,
	}
}

func TestPersistenceReadWriteErase(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := p.Read("planner:days"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if err := p.Write("planner:days", []byte(`{"a":1}`)); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := p.Write("planner:focus", []byte(`"2024-01-01"`)); err != nil {
				t.Fatalf("write: %v", err)
			}
			got, err := p.Read("planner:days")
			if err != nil || string(got) != `{"a":1}` {
				t.Fatalf("read = %q, %v", got, err)
			}
			if diff := cmp.Diff([]string{"planner:days", "planner:focus"}, p.Keys(context.Background())); diff != "" {
				t.Fatalf("keys (-want +got):\n%s", diff)
			}
			if err := p.Erase("planner:days"); err != nil {
				t.Fatalf("erase: %v", err)
			}
			if err := p.Erase("planner:days"); err != nil {
				t.Fatalf("second erase: %v", err)
			}
			if _, err := p.Read("planner:days"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after erase, got %v", err)
			}
		})
	}
}

func TestPersistenceRejectsBadKeys(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "a/b", "a::b", "..", ":x", ".hidden"} {
				if err := p.Write(key, nil); !errors.Is(err, ErrInvalidKey) {
					t.Fatalf("Write(%q) = %v, want ErrInvalidKey", key, err)
				}
			}
		})
	}
}

func TestDiskvLayout(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	if err := p.Write("planner:days", []byte("{}")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "planner", "days")); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}
}

func TestPersistenceWatchEmitsKeyChanges(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			// The directory must exist before the watcher starts.
			if err := p.Write("planner:selected", []byte("{}")); err != nil {
				t.Fatalf("write: %v", err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			ch, err := p.Watch(ctx)
			if err != nil {
				t.Fatalf("watch: %v", err)
			}

			// Allow watcher goroutine to subscribe to directories before storing.
			time.Sleep(50 * time.Millisecond)

			if err := p.Write("planner:days", []byte(`{}`)); err != nil {
				t.Fatalf("write: %v", err)
			}

			deadline := time.After(2 * time.Second)
			for {
				select {
				case evt := <-ch:
					if evt.Type == EventInvalidated {
						return
					}
					if evt.Key == "planner:days" {
						return
					}
				case <-deadline:
					t.Fatal("timed out waiting for key change event")
				}
			}
		})
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			ch, err := p.Watch(ctx)
			if err != nil {
				t.Fatalf("watch: %v", err)
			}
			cancel()
			deadline := time.After(2 * time.Second)
			for {
				select {
				case _, ok := <-ch:
					if !ok {
						return
					}
				case <-deadline:
					t.Fatal("watch channel not closed")
				}
			}
		})
	}
}

func TestMemoryWrites(t *testing.T) {
	m := NewMemory()
	_ = m.Write("k", []byte("v"))
	_ = m.Erase("missing")
	if m.Writes() != 1 {
		t.Fatalf("writes = %d", m.Writes())
	}
	got, _ := m.Read("k")
	got[0] = 'x'
	again, _ := m.Read("k")
	if string(again) != "v" {
		t.Fatalf("read must return a copy")
	}
}

func TestNewSettings(t *testing.T) {
	s, err := newSettings("/tmp/planner", "sqlite", "52w", "debug", "json")
	if err != nil {
		t.Fatalf("newSettings: %v", err)
	}
	if s.BasePath() != "/tmp/planner" || s.RetentionDays() != 364 || s.Window != "52w" {
		t.Fatalf("unexpected settings %+v", s)
	}
	if s.LogLevel() != "debug" || s.LogFormat() != "json" {
		t.Fatalf("unexpected log settings %+v", s)
	}
	if _, err := newSettings("/tmp/planner", "diskv", "soon", "warn", "console"); err == nil {
		t.Fatalf("expected a retention error")
	}
	home, err := newSettings("~/.planner.db", "diskv", "", "warn", "console")
	if err != nil {
		t.Fatalf("newSettings: %v", err)
	}
	if home.Path == "~/.planner.db" || home.RetentionDays() != 365 {
		t.Fatalf("unexpected defaults %+v", home)
	}
}

func TestNewSettingsValidates(t *testing.T) {
	tests := map[string]struct {
		backend, level, format string
	}{
		"backend": {backend: "bolt", level: "warn", format: "console"},
		"level":   {backend: "diskv", level: "loud", format: "console"},
		"format":  {backend: "diskv", level: "warn", format: "xml"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := newSettings("/tmp/planner", tc.backend, "", tc.level, tc.format); err == nil {
				t.Fatalf("expected a validation error")
			}
		})
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	base := t.TempDir()
	p, err := Open(&Settings{Path: base, Backend: BackendSQLite})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db, ok := p.(*SQLite)
	if !ok {
		t.Fatalf("got %T, want *SQLite", p)
	}
	defer db.Close()
	if _, err := os.Stat(filepath.Join(base, SQLiteFile)); err != nil {
		t.Fatalf("expected database file: %v", err)
	}
	if _, err := Open(&Settings{Path: base, Backend: "bolt"}); err == nil {
		t.Fatal("expected an unknown backend error")
	}
}

func TestSQLiteSeesOtherConnections(t *testing.T) {
	base := t.TempDir()
	a, err := OpenSQLite(testConfig{path: base})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer a.Close()
	a.poll = 10 * time.Millisecond
	b, err := OpenSQLite(testConfig{path: base})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := a.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if err := b.Write("planner:days", []byte(`{}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case evt := <-ch:
		if evt.Type != EventInvalidated {
			t.Fatalf("got %+v, want EventInvalidated", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the other connection's write")
	}
	got, err := a.Read("planner:days")
	if err != nil || string(got) != `{}` {
		t.Fatalf("read = %q, %v", got, err)
	}
}

func TestLoggerReachesBackends(t *testing.T) {
	core, _ := observer.New(zapcore.WarnLevel)
	log := zap.New(core)

	p, err := Open(&Settings{Path: t.TempDir(), Backend: BackendDiskv}, WithLogger(log))
	if err != nil {
		t.Fatalf("open diskv: %v", err)
	}
	if got := p.(*persistence).log; got != log {
		t.Fatalf("diskv logger not set")
	}
	if p, _ := Load(testConfig{path: t.TempDir()}, WithLogger(nil)); p.(*persistence).log == nil {
		t.Fatalf("nil logger should fall back to a no-op logger")
	}
}

func TestSQLiteWatchLogsPollFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	db, err := OpenSQLite(testConfig{path: t.TempDir()}, WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.poll = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := db.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	_ = db.Close()

	deadline := time.Now().Add(2 * time.Second)
	for logs.FilterMessage("sqlite data_version poll failed").Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("poll failure was not logged")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	for range ch {
	}
}
