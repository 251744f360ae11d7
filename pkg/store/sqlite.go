package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteFile is the database file name under the base path.
const SQLiteFile = "planner.sqlite"

const kvSchema = `CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLite is a Persistence holding every key in one table. Watchers see
// this process's writes directly and other processes' commits by polling
// the database's data_version.
type SQLite struct {
	db   *sqlx.DB
	poll time.Duration
	log  *zap.Logger

	mu       sync.Mutex
	watchers map[chan Event]struct{}
}

var _ Persistence = (*SQLite)(nil)

// OpenSQLite opens or creates the database under cfg's base path.
func OpenSQLite(cfg Config, opts ...Option) (*SQLite, error) {
	base := cfg.BasePath()
	if base == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	db, err := sqlx.Open("sqlite", filepath.Join(base, SQLiteFile))
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	// data_version is per connection, so every query must share one.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, stmt := range []string{"PRAGMA busy_timeout = 5000", kvSchema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: init sqlite: %w", err)
		}
	}

	return &SQLite{
		db:       db,
		poll:     time.Second,
		log:      buildOptions(opts).log,
		watchers: make(map[chan Event]struct{}),
	}, nil
}

func (s *SQLite) Read(key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	var val []byte
	if err := s.db.Get(&val, `SELECT value FROM kv WHERE key = ?`, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (s *SQLite) Write(key string, val []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	if val == nil {
		val = []byte{}
	}
	_, err := s.db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, val, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	s.broadcast(Event{Type: EventKeyChanged, Key: key})
	return nil
}

// Erase removes key. Erasing a missing key is not an error.
func (s *SQLite) Erase(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	res, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		s.broadcast(Event{Type: EventKeyChanged, Key: key})
	}
	return nil
}

func (s *SQLite) Keys(ctx context.Context) []string {
	var keys []string
	if err := s.db.SelectContext(ctx, &keys, `SELECT key FROM kv ORDER BY key`); err != nil {
		return nil
	}
	return keys
}

// Watch streams this process's writes as key changes and commits from
// other connections as EventInvalidated until ctx is done.
func (s *SQLite) Watch(ctx context.Context) (<-chan Event, error) {
	version, err := s.dataVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: watch: %w", err)
	}

	ch := make(chan Event, 64)
	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(s.poll)
		defer ticker.Stop()
		defer func() {
			s.mu.Lock()
			delete(s.watchers, ch)
			close(ch)
			s.mu.Unlock()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				v, err := s.dataVersion(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					s.log.Warn("sqlite data_version poll failed", zap.Error(err))
					continue
				}
				if v == version {
					continue
				}
				version = v
				s.mu.Lock()
				select {
				case ch <- Event{Type: EventInvalidated}:
				default:
				}
				s.mu.Unlock()
			}
		}
	}()
	return ch, nil
}

func (s *SQLite) dataVersion(ctx context.Context) (int64, error) {
	var v int64
	err := s.db.GetContext(ctx, &v, `PRAGMA data_version`)
	return v, err
}

func (s *SQLite) broadcast(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.watchers {
		select {
		case ch <- evt:
		default:
		}
	}
}

// Close releases the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
