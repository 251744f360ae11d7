// Package logging builds the zap logger used by the planner commands.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the logger level and encoding.
type Config interface {
	LogLevel() string
	LogFormat() string
}

// New returns a json production logger when the format is "json" and a
// console development logger otherwise. Both write to stderr so command
// output on stdout stays clean.
func New(cfg Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.LogFormat() == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
	}

	level := cfg.LogLevel()
	if level == "" {
		level = "warn"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: invalid level: %w", err)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}
	return logger.Named("planner"), nil
}
