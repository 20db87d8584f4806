package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/mutker/pcadapter/internal/activity"
	"codeberg.org/mutker/pcadapter/internal/errors"
	"codeberg.org/mutker/pcadapter/internal/journal"
	"codeberg.org/mutker/pcadapter/internal/sampler"
	"codeberg.org/mutker/pcadapter/internal/telemetry"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultEnvPrefix    = "PCADAPTER"
	DefaultInterval     = 2000  // milliseconds
	DefaultInactivity   = 60000 // milliseconds
	DefaultLogLevel     = LogLevelInfo
	DefaultJournalDB    = "/var/lib/pcadapter/journal.db"
	DefaultBatchSize    = 16
	DefaultBatchTimeout = 5 // seconds
	DefaultNATSSubject  = "pcadapter"

	configName = "pcadapter"
	configType = "toml"
)

type Config struct {
	Interval            int      `mapstructure:"interval"`
	Inactivity          int      `mapstructure:"inactivity"`
	IdleBoundary        string   `mapstructure:"idle_boundary"`
	DeviceName          string   `mapstructure:"device_name"`
	StationID           string   `mapstructure:"station_id"`
	LogLevel            LogLevel `mapstructure:"log_level"`
	Journal             bool     `mapstructure:"journal"`
	JournalDB           string   `mapstructure:"journal_db"`
	JournalBatchSize    int      `mapstructure:"journal_batch_size"`
	JournalBatchTimeout int      `mapstructure:"journal_batch_timeout"`
	NATSURL             string   `mapstructure:"nats_url"`
	NATSSubject         string   `mapstructure:"nats_subject"`
	InputHook           bool     `mapstructure:"input_hook"`
	PIDDir              string   `mapstructure:"pid_dir"`
}

var defaults = map[string]any{
	"interval":              DefaultInterval,
	"inactivity":            DefaultInactivity,
	"idle_boundary":         activity.Exclusive.String(),
	"device_name":           "",
	"station_id":            "",
	"log_level":             string(DefaultLogLevel),
	"journal":               false,
	"journal_db":            DefaultJournalDB,
	"journal_batch_size":    DefaultBatchSize,
	"journal_batch_timeout": DefaultBatchTimeout,
	"nats_url":              "",
	"nats_subject":          DefaultNATSSubject,
	"input_hook":            true,
	"pid_dir":               os.TempDir(),
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(configName, pflag.ContinueOnError)

	fs.String("config", "", "Path to the configuration file")
	fs.Int("interval", DefaultInterval, "Sampling interval in milliseconds")
	fs.Int("inactivity", DefaultInactivity, "Inactivity threshold in milliseconds before execution is STOPPED")
	fs.String("idle-boundary", activity.Exclusive.String(), "Whether elapsed == threshold is idle (exclusive|inclusive)")
	fs.String("device-name", "", "Device name (defaults to the host name)")
	fs.String("station-id", "", "Station id (defaults to the host id)")
	fs.String("log-level", string(DefaultLogLevel), "Log level (debug|info|warning|error)")
	fs.Bool("journal", false, "Record condition transitions to sqlite")
	fs.String("journal-db", DefaultJournalDB, "Path to the condition journal database")
	fs.Int("journal-batch-size", DefaultBatchSize, "Transitions buffered before a write")
	fs.Int("journal-batch-timeout", DefaultBatchTimeout, "Seconds between journal flushes")
	fs.String("nats-url", "", "NATS server URL; publishing is disabled when empty")
	fs.String("nats-subject", DefaultNATSSubject, "NATS subject prefix")
	fs.Bool("input-hook", true, "Subscribe to the global input hook")
	fs.String("pid-dir", os.TempDir(), "Directory for the PID file")

	return fs
}

// Load reads configuration from defaults, the config file, the environment
// and command line flags, in increasing order of precedence, and validates
// the result.
func Load(opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	fs := newFlagSet()
	if err := fs.Parse(o.args); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		bindErr = errors.Join(bindErr, v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f))
	})
	if bindErr != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, bindErr)
	}

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, fs, o); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}
	cfg.LogLevel = LogLevel(strings.ToLower(string(cfg.LogLevel)))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func readConfigFile(v *viper.Viper, fs *pflag.FlagSet, o *options) error {
	path := o.configPath
	if f := fs.Lookup("config"); path == "" && f.Changed {
		path = f.Value.String()
	}
	if path == "" {
		path = os.Getenv(o.envPrefix + "_CONFIG")
	}

	if path != "" {
		v.SetConfigFile(path)
		if filepath.Ext(path) == "" {
			v.SetConfigType(configType)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Join("/etc", configName))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.New().Wrap(errors.ErrReadConfig, err)
	}

	return nil
}

// Validate returns the first validation failure, wrapped with its error code.
func (c *Config) Validate() error {
	status := c.Status()
	if status.Valid {
		return nil
	}

	verr := status.ValidationErrors[0]
	code := errors.ErrInvalidConfig
	if v, ok := verr.(*validationError); ok {
		code = v.code
	}

	return errors.New().Wrap(code, verr)
}

// Status validates every field.
func (c *Config) Status() Status {
	var errs []ValidationError
	add := func(code errors.ErrorCode, field string, value any, reason string) {
		errs = append(errs, &validationError{code: code, field: field, value: value, reason: reason})
	}

	if c.Interval <= 0 {
		add(errors.ErrInvalidInterval, "interval", c.Interval, "must be greater than zero")
	}
	if c.Inactivity < 0 {
		add(errors.ErrInvalidThreshold, "inactivity", c.Inactivity, "must not be negative")
	}
	if _, err := activity.ParseBoundary(c.IdleBoundary); err != nil {
		add(errors.ErrInvalidBoundary, "idle_boundary", c.IdleBoundary, "must be exclusive or inclusive")
	}
	if !c.LogLevel.IsValid() {
		add(errors.ErrInvalidLogLevel, "log_level", c.LogLevel, "must be one of debug, info, warning, error")
	}
	if c.Journal && c.JournalDB == "" {
		add(errors.ErrInvalidConfig, "journal_db", c.JournalDB, "required when the journal is enabled")
	}
	if c.JournalBatchSize < 0 {
		add(errors.ErrInvalidConfig, "journal_batch_size", c.JournalBatchSize, "must not be negative")
	}
	if c.JournalBatchTimeout < 0 {
		add(errors.ErrInvalidConfig, "journal_batch_timeout", c.JournalBatchTimeout, "must not be negative")
	}
	if c.NATSURL != "" && c.NATSSubject == "" {
		add(errors.ErrInvalidConfig, "nats_subject", c.NATSSubject, "required when nats_url is set")
	}

	return Status{Valid: len(errs) == 0, ValidationErrors: errs}
}

// Boundary returns the parsed idle boundary. Call after Validate.
func (c *Config) Boundary() activity.Boundary {
	b, _ := activity.ParseBoundary(c.IdleBoundary)
	return b
}

func (c *Config) SamplerConfig() sampler.Config {
	return sampler.Config{
		Interval:            time.Duration(c.Interval) * time.Millisecond,
		InactivityThreshold: time.Duration(c.Inactivity) * time.Millisecond,
	}
}

func (c *Config) JournalConfig() journal.Config {
	cfg := journal.DefaultConfig()
	cfg.Enabled = c.Journal
	cfg.DBPath = c.JournalDB
	cfg.BatchSize = c.JournalBatchSize
	cfg.BatchTimeout = c.JournalBatchTimeout

	return cfg
}

func (c *Config) TelemetryConfig() telemetry.Config {
	cfg := telemetry.DefaultConfig()
	cfg.URL = c.NATSURL
	cfg.Subject = c.NATSSubject

	return cfg
}

type validationError struct {
	code   errors.ErrorCode
	field  string
	value  any
	reason string
}

func (e *validationError) Error() string {
	return fmt.Sprintf("%s: %s=%v %s", e.code, e.field, e.value, e.reason)
}

func (e *validationError) Field() string      { return e.field }
func (e *validationError) Value() interface{} { return e.value }
func (e *validationError) Reason() string     { return e.reason }
