package telemetry

import (
	"strings"
	"time"

	"codeberg.org/mutker/pcadapter/internal/errors"
)

const (
	defaultSubject       = "pcadapter"
	defaultClientName    = "pcadapter"
	defaultTimeout       = 5 * time.Second
	defaultReconnectWait = 2 * time.Second
	defaultDrainTimeout  = 10 * time.Second
)

type Config struct {
	URL     string
	Subject string
	Name    string
	Timeout time.Duration

	// DrainTimeout bounds how long Close waits for pending publishes.
	DrainTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Subject:      defaultSubject,
		Name:         defaultClientName,
		Timeout:      defaultTimeout,
		DrainTimeout: defaultDrainTimeout,
	}
}

// Enabled reports whether a server URL is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}

func (c Config) Validate() error {
	if !c.Enabled() {
		return nil
	}

	if c.Subject == "" || strings.ContainsAny(c.Subject, " \t*>") {
		return errors.New().WithData(ErrInvalidSubject, c.Subject)
	}

	if c.DrainTimeout <= 0 {
		return errors.New().WithData(ErrInvalidConfig, c.DrainTimeout)
	}

	return nil
}
