package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		enabled zapcore.Level
		nop     bool
	}{
		{level: "", nop: true},
		{level: LevelNone, nop: true},
		{level: LevelError, enabled: zapcore.ErrorLevel},
		{level: LevelInfo, enabled: zapcore.InfoLevel},
		{level: LevelDebug, enabled: zapcore.DebugLevel},
		{level: "warn", enabled: zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := New(tt.level)
			require.NoError(t, err)
			require.NotNil(t, l)

			if tt.nop {
				require.False(t, l.Core().Enabled(zapcore.FatalLevel))
				return
			}
			require.True(t, l.Core().Enabled(tt.enabled))
			if tt.enabled > zapcore.DebugLevel {
				require.False(t, l.Core().Enabled(tt.enabled-1))
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud")
	require.Error(t, err)
	require.Contains(t, err.Error(), "loud")
}
