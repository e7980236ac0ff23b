package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw    string
		want   zapcore.Level
		wantOK bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, true},
		{" Trace ", zapcore.DebugLevel, true},
		{"info", zapcore.InfoLevel, true},
		{"WARNING", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"off", zapcore.FatalLevel + 1, true},
		{"loud", zapcore.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseLevel(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHonorsEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")

	logger, err := New(Config{Level: "debug"})
	require.NoError(t, err)
	defer logger.Sync()

	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewJSON(t *testing.T) {
	t.Setenv(EnvLogJSON, "true")

	logger, err := New(Config{Level: "info"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	_, err := New(Config{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown level "loud"`)

	t.Setenv(EnvLogLevel, "chatty")
	_, err = New(Config{Level: "info"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown level "chatty"`)
}

func TestNewEmptyLevelIsInfo(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	logger, err := New(Config{})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
