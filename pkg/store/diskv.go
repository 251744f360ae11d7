package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Read for a key that was never written or has
// been erased.
var ErrNotFound = errors.New("store: key not found")

// ErrInvalidKey is returned for keys that cannot be mapped onto the
// filesystem.
var ErrInvalidKey = errors.New("store: invalid key")

// Persistence is a last-write-wins byte store addressed by string keys.
type Persistence interface {
	Read(key string) ([]byte, error)
	Write(key string, val []byte) error
	Erase(key string) error
	Keys(ctx context.Context) []string
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
// Keys are split on ":" into directories, so "planner:days" is stored as
// <base>/planner/days.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, log: buildOptions(opts).log}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *zap.Logger
}

func (p *persistence) Read(key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (p *persistence) Write(key string, val []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := p.d.Write(key, val); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// Erase removes key. Erasing a missing key is not an error.
func (p *persistence) Erase(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := p.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Keys(ctx context.Context) []string {
	var keys []string
	for key := range p.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, part := range strings.Split(key, ":") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, ":")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s:%s", strings.Join(pathKey.Path, ":"), pathKey.FileName)
}
