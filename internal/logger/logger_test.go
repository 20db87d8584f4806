package logger_test

import (
	"bytes"
	"testing"

	"codeberg.org/mutker/pcadapter/internal/errors"
	"codeberg.org/mutker/pcadapter/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logger.LogLevel
	}{
		{"debug", logger.DebugLevel},
		{"INFO", logger.InfoLevel},
		{"warning", logger.WarnLevel},
		{"warn", logger.WarnLevel},
		{"error", logger.ErrorLevel},
	}

	for _, tt := range tests {
		got, err := logger.ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := logger.ParseLevel("loud")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidLogLevel))
}

func TestComponentLoggerTagsEvents(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, logger.DebugLevel, true)

	log := logger.New("sampler").With("device", "pc-01")
	log.Info().Int("cycle", 3).Msg("cycle complete")

	out := buf.String()
	assert.Contains(t, out, "cycle complete")
	assert.Contains(t, out, "component=sampler")
	assert.Contains(t, out, "device=pc-01")
	assert.Contains(t, out, "cycle=3")
}

func TestLevelFiltersEvents(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, logger.WarnLevel, true)
	defer logger.SetLogLevel(logger.DebugLevel)

	logger.New("test").Debug().Msg("hidden")
	logger.New("test").Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestErrorWithCode(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, logger.DebugLevel, true)

	err := errors.New().New(errors.ErrAlreadyRunning)
	logger.New("pid").ErrorWithContext(err, "pid", "write").Msg("startup refused")

	out := buf.String()
	assert.Contains(t, out, "error_code=already_running")
	assert.Contains(t, out, "operation=write")
}

func TestNopDiscards(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, logger.DebugLevel, true)

	logger.Nop().Error().Str("k", "v").Msg("nothing")
	assert.Empty(t, buf.String())
}
