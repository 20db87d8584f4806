package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/pcadapter/internal/activity"
	"codeberg.org/mutker/pcadapter/internal/config"
	"codeberg.org/mutker/pcadapter/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pcadapter.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	configPath := writeConfig(t, `
interval = 500
inactivity = 30000
idle_boundary = "inclusive"
device_name = "pc-01"
station_id = "line-4"
log_level = "debug"
journal = true
journal_db = "/tmp/journal.db"
journal_batch_size = 4
nats_url = "nats://localhost:4222"
nats_subject = "plant"
input_hook = false
`)

	t.Setenv("PCADAPTER_CONFIG", configPath)

	cfg, err := config.Load(config.WithArgs(nil))
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Interval)
	assert.Equal(t, 30000, cfg.Inactivity)
	assert.Equal(t, activity.Inclusive, cfg.Boundary())
	assert.Equal(t, "pc-01", cfg.DeviceName)
	assert.Equal(t, "line-4", cfg.StationID)
	assert.Equal(t, config.LogLevelDebug, cfg.LogLevel)
	assert.True(t, cfg.Journal)
	assert.Equal(t, "/tmp/journal.db", cfg.JournalDB)
	assert.Equal(t, 4, cfg.JournalBatchSize)
	assert.Equal(t, config.DefaultBatchTimeout, cfg.JournalBatchTimeout)
	assert.Equal(t, "nats://localhost:4222", cfg.NATSURL)
	assert.Equal(t, "plant", cfg.NATSSubject)
	assert.False(t, cfg.InputHook)

	sc := cfg.SamplerConfig()
	assert.Equal(t, 500*time.Millisecond, sc.Interval)
	assert.Equal(t, 30*time.Second, sc.InactivityThreshold)

	jc := cfg.JournalConfig()
	assert.True(t, jc.Enabled)
	assert.Equal(t, "/tmp/journal.db", jc.DBPath)
	assert.Equal(t, 4, jc.BatchSize)

	tc := cfg.TelemetryConfig()
	assert.True(t, tc.Enabled())
	assert.Equal(t, "plant", tc.Subject)
}

func TestLoadDefaults(t *testing.T) {
	// Ensure no config file is used
	t.Setenv("PCADAPTER_CONFIG", "")

	cfg, err := config.Load(config.WithArgs(nil))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultInterval, cfg.Interval)
	assert.Equal(t, config.DefaultInactivity, cfg.Inactivity)
	assert.Equal(t, activity.Exclusive, cfg.Boundary())
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)
	assert.False(t, cfg.Journal)
	assert.Equal(t, config.DefaultNATSSubject, cfg.NATSSubject)
	assert.True(t, cfg.InputHook)
	assert.False(t, cfg.TelemetryConfig().Enabled())
}

func TestPrecedence(t *testing.T) {
	configPath := writeConfig(t, `
interval = 500
log_level = "warning"
`)

	t.Setenv("PCADAPTER_LOG_LEVEL", "error")
	t.Setenv("PCADAPTER_INACTIVITY", "1000")

	cfg, err := config.Load(
		config.WithConfigFile(configPath),
		config.WithArgs([]string{"--interval", "250"}),
	)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Interval, "flag beats file")
	assert.Equal(t, config.LogLevelError, cfg.LogLevel, "env beats file")
	assert.Equal(t, 1000, cfg.Inactivity, "env beats default")
}

func TestConfigFlag(t *testing.T) {
	configPath := writeConfig(t, `device_name = "from-flag"`)
	t.Setenv("PCADAPTER_CONFIG", "")

	cfg, err := config.Load(config.WithArgs([]string{"--config", configPath, "--log-level", "DEBUG"}))
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.DeviceName)
	assert.Equal(t, config.LogLevelDebug, cfg.LogLevel)
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	configPath := writeConfig(t, `
This is not a valid TOML file
`)

	t.Setenv("PCADAPTER_CONFIG", configPath)

	_, err := config.Load(config.WithArgs(nil))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(
		config.WithConfigFile(filepath.Join(t.TempDir(), "missing.toml")),
		config.WithArgs(nil),
	)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrReadConfig))
}

func TestUnknownFlag(t *testing.T) {
	t.Setenv("PCADAPTER_CONFIG", "")

	_, err := config.Load(config.WithArgs([]string{"--fanspeed", "80"}))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrBindFlags))
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name  string
		toml  string
		code  errors.ErrorCode
		field string
	}{
		{"zero interval", `interval = 0`, errors.ErrInvalidInterval, "interval"},
		{"negative interval", `interval = -10`, errors.ErrInvalidInterval, "interval"},
		{"negative inactivity", `inactivity = -1`, errors.ErrInvalidThreshold, "inactivity"},
		{"bad boundary", `idle_boundary = "sometimes"`, errors.ErrInvalidBoundary, "idle_boundary"},
		{"bad log level", `log_level = "invalid"`, errors.ErrInvalidLogLevel, "log_level"},
		{"journal without db", "journal = true\njournal_db = \"\"", errors.ErrInvalidConfig, "journal_db"},
		{"nats without subject", "nats_url = \"nats://x\"\nnats_subject = \"\"", errors.ErrInvalidConfig, "nats_subject"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PCADAPTER_CONFIG", writeConfig(t, tt.toml))

			_, err := config.Load(config.WithArgs(nil))
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), err.Error())

			var verr config.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field())
			assert.NotEmpty(t, verr.Reason())
		})
	}
}

func TestZeroInactivityIsValid(t *testing.T) {
	t.Setenv("PCADAPTER_CONFIG", writeConfig(t, `inactivity = 0`))

	cfg, err := config.Load(config.WithArgs(nil))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.SamplerConfig().InactivityThreshold)
}

func TestStatusCollectsEveryError(t *testing.T) {
	cfg := &config.Config{Interval: 0, Inactivity: -1, LogLevel: "loud"}

	status := cfg.Status()
	assert.False(t, status.Valid)
	require.Len(t, status.ValidationErrors, 3)
	assert.Equal(t, "interval", status.ValidationErrors[0].Field())
	assert.Equal(t, -1, status.ValidationErrors[1].Value())
	assert.Equal(t, "log_level", status.ValidationErrors[2].Field())
}
