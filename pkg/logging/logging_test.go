package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

type cfg struct{ level, format string }

func (c cfg) LogLevel() string  { return c.level }
func (c cfg) LogFormat() string { return c.format }

func TestNew(t *testing.T) {
	tests := map[string]struct {
		cfg     cfg
		enabled zapcore.Level
		quiet   zapcore.Level
	}{
		"console warn": {cfg: cfg{"warn", "console"}, enabled: zapcore.WarnLevel, quiet: zapcore.InfoLevel},
		"json debug":   {cfg: cfg{"debug", "json"}, enabled: zapcore.DebugLevel, quiet: zapcore.DebugLevel - 1},
		"default":      {cfg: cfg{"", ""}, enabled: zapcore.ErrorLevel, quiet: zapcore.InfoLevel},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			logger, err := New(tc.cfg)
			if err != nil {
				t.Fatalf("New() = %v", err)
			}
			if !logger.Core().Enabled(tc.enabled) {
				t.Fatalf("expected %s to be enabled", tc.enabled)
			}
			if logger.Core().Enabled(tc.quiet) {
				t.Fatalf("expected %s to be disabled", tc.quiet)
			}
		})
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(cfg{"loud", "console"}); err == nil {
		t.Fatalf("expected an error")
	}
}
