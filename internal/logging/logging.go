// Package logging builds the zap logger shared by the store and the command layer.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Supported log levels. Any zapcore level name is accepted; these are the
// ones the CLI advertises.
const (
	LevelNone  = "none"
	LevelError = "error"
	LevelInfo  = "info"
	LevelDebug = "debug"
)

// New returns a logger at level. LevelNone (or an empty level) disables logging;
// anything else is a JSON logger on stderr.
func New(level string) (*zap.Logger, error) {
	if level == "" || level == LevelNone {
		return zap.NewNop(), nil
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}
