package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/planner/pkg/timeutil"
)

// Config locates the on-disk store.
type Config interface {
	BasePath() string
}

// Backends understood by Open.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
)

// Settings is the resolved planner configuration.
type Settings struct {
	Path      string `json:"path" validate:"required"`
	Backend   string `json:"backend" validate:"oneof=diskv sqlite"`
	Window    string `json:"retention"`
	Level     string `json:"logLevel" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	Format    string `json:"logFormat" validate:"oneof=console json"`
	retention int
}

var validate = validator.New()

// LoadConfig reads .planner.yaml from $PLANNER_CONFIG_PATH or the working
// directory, layered under PLANNER_* environment variables. A .env file in
// the working directory is loaded into the environment first.
func LoadConfig() (*Settings, error) {
	_ = godotenv.Load()

	viper.SetDefault("path", "~/.planner.db")
	viper.SetDefault("backend", BackendDiskv)
	viper.SetDefault("retention", timeutil.DefaultRetention)
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.format", "console")
	viper.SetConfigName(".planner") // .yaml is implicit
	viper.SetEnvPrefix("PLANNER")
	viper.AutomaticEnv()

	if override := os.Getenv("PLANNER_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	return newSettings(
		viper.GetString("path"),
		viper.GetString("backend"),
		viper.GetString("retention"),
		viper.GetString("log.level"),
		viper.GetString("log.format"),
	)
}

func newSettings(path, backend, window, level, format string) (*Settings, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("store: expand path %q: %w", path, err)
	}
	d, normalized, err := timeutil.ParseWindow(window)
	if err != nil {
		return nil, fmt.Errorf("store: retention: %w", err)
	}
	s := &Settings{
		Path:      expanded,
		Backend:   backend,
		Window:    normalized,
		Level:     level,
		Format:    format,
		retention: timeutil.WindowDays(d),
	}
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("store: invalid config: %w", err)
	}
	return s, nil
}

// Open returns the Persistence selected by s.Backend. The sqlite backend
// must be closed by the caller.
func Open(s *Settings, opts ...Option) (Persistence, error) {
	switch s.Backend {
	case BackendSQLite:
		return OpenSQLite(s, opts...)
	case BackendDiskv, "":
		return Load(s, opts...)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", s.Backend)
	}
}

// BasePath is the diskv root directory.
func (s *Settings) BasePath() string {
	return s.Path
}

// RetentionDays is the configured history horizon in whole days.
func (s *Settings) RetentionDays() int {
	return s.retention
}

// LogLevel is the zap level name.
func (s *Settings) LogLevel() string {
	return s.Level
}

// LogFormat is "console" or "json".
func (s *Settings) LogFormat() string {
	return s.Format
}
