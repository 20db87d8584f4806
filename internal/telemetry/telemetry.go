// Package telemetry publishes snapshots and lifecycle events to NATS.
// Publishing is best effort: failures are logged and never reach the
// sampling cycle.
package telemetry

import (
	"encoding/json"
	"time"

	"codeberg.org/mutker/pcadapter/internal/errors"
	"codeberg.org/mutker/pcadapter/internal/identity"
	"codeberg.org/mutker/pcadapter/internal/logger"
	"codeberg.org/mutker/pcadapter/internal/model"
	"github.com/nats-io/nats.go"
)

type service struct {
	conn         Conn
	closed       <-chan struct{}
	drainTimeout time.Duration
	id           *identity.Identity
	log          logger.Logger
	sample       string
	lifecycle    string
	now          func() time.Time
}

// No-op implementation
type noopPublisher struct{}

// NewService connects to the configured server, or returns a no-op
// publisher when no URL is set.
func NewService(cfg Config, id *identity.Identity, log logger.Logger) (Publisher, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled() {
		log.Debug().Msg("NATS URL not set, snapshot publishing disabled")
		return &noopPublisher{}, nil
	}

	closed := make(chan struct{})
	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.Timeout(cfg.Timeout),
		nats.DrainTimeout(cfg.DrainTimeout),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(defaultReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			close(closed)
		}),
	)
	if err != nil {
		return nil, errFactory.Wrap(ErrConnect, err)
	}

	log.Info().
		Str("url", nc.ConnectedUrl()).
		Str("subject", cfg.Subject).
		Msg("Connected to NATS")

	s := newService(nc, cfg.Subject, id, log)
	s.closed = closed
	s.drainTimeout = cfg.DrainTimeout

	return s, nil
}

func newService(conn Conn, subject string, id *identity.Identity, log logger.Logger) *service {
	base := subject + "." + id.UUID().String()

	return &service{
		conn:         conn,
		drainTimeout: defaultDrainTimeout,
		id:           id,
		log:          log,
		sample:       base + ".sample",
		lifecycle:    base + ".lifecycle",
		now:          time.Now,
	}
}

func (s *service) OnStarted() {
	s.publishLifecycle(EventStarted, nil)
}

func (s *service) OnSample(snapshot model.Snapshot) {
	if err := s.publish(s.sample, snapshot); err != nil {
		s.log.Warn().Err(err).Uint64("sequence", snapshot.Sequence).Msg("Failed to publish snapshot")
	}
}

// OnStopped publishes the stop event and flushes so it leaves before the
// connection is drained.
func (s *service) OnStopped(cause error) {
	s.publishLifecycle(EventStopped, cause)

	if err := s.conn.Flush(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to flush NATS connection")
	}
}

func (s *service) publishLifecycle(event string, cause error) {
	ev := LifecycleEvent{
		Event:      event,
		DeviceUUID: s.id.UUID().String(),
		DeviceName: s.id.Name(),
		StationID:  s.id.StationID(),
		Timestamp:  s.now().UTC(),
	}
	if cause != nil {
		ev.Cause = cause.Error()
	}

	if err := s.publish(s.lifecycle, ev); err != nil {
		s.log.Warn().Err(err).Str("event", event).Msg("Failed to publish lifecycle event")
	}
}

func (s *service) publish(subject string, v any) error {
	errFactory := errors.New()

	data, err := json.Marshal(v)
	if err != nil {
		return errFactory.Wrap(ErrEncode, err)
	}

	if err := s.conn.Publish(subject, data); err != nil {
		return errFactory.Wrap(ErrPublish, err)
	}

	return nil
}

// Close drains the connection and waits until it is closed, so messages
// still in flight reach the server before the process exits.
func (s *service) Close() error {
	errFactory := errors.New()

	if err := s.conn.Drain(); err != nil {
		return errFactory.Wrap(ErrServiceShutdown, err)
	}

	if s.closed == nil {
		return nil
	}

	timer := time.NewTimer(s.drainTimeout)
	defer timer.Stop()

	select {
	case <-s.closed:
		return nil
	case <-timer.C:
		return errFactory.Wrap(ErrServiceShutdown, errFactory.WithData(errors.ErrTimeout, s.drainTimeout))
	}
}

func (*noopPublisher) OnStarted() {}

func (*noopPublisher) OnSample(model.Snapshot) {}

func (*noopPublisher) OnStopped(error) {}

func (*noopPublisher) Close() error {
	return nil
}
