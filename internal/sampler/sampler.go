// Package sampler runs the sampling cycle: it polls the host probes on a
// fixed interval, folds the results into the device model and its
// conditions, and hands a snapshot to the sinks.
package sampler

import (
	"context"
	"sync"
	"time"

	"codeberg.org/mutker/pcadapter/internal/activity"
	"codeberg.org/mutker/pcadapter/internal/errors"
	"codeberg.org/mutker/pcadapter/internal/logger"
	"codeberg.org/mutker/pcadapter/internal/model"
	"codeberg.org/mutker/pcadapter/internal/probe"
)

// Config holds the scheduler timing.
type Config struct {
	Interval            time.Duration
	InactivityThreshold time.Duration
}

// Validate rejects a non-positive interval and a negative threshold.
// Values are never clamped.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return errors.New().WithData(errors.ErrInvalidInterval, c.Interval)
	}

	if c.InactivityThreshold < 0 {
		return errors.New().WithData(errors.ErrInvalidThreshold, c.InactivityThreshold)
	}

	return nil
}

type Option func(*Sampler)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clock Clock) Option {
	return func(s *Sampler) {
		s.clock = clock
	}
}

func WithLogger(log logger.Logger) Option {
	return func(s *Sampler) {
		s.log = log
	}
}

// Sampler owns the device model. Only its goroutine mutates it.
type Sampler struct {
	cfg     Config
	device  *model.Device
	tracker *activity.Tracker
	probes  probe.Set
	sink    Sink
	clock   Clock
	log     logger.Logger
	stages  []step

	mu       sync.Mutex
	started  bool
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once

	// faulted is set when the previous cycle ended in an unexpected failure.
	faulted bool
}

// New validates cfg and builds a sampler. It does not start it.
func New(cfg Config, device *model.Device, tracker *activity.Tracker, probes probe.Set, sink Sink, opts ...Option) (*Sampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch {
	case device == nil:
		return nil, errors.New().WithData(errors.ErrInvalidArgument, "nil device")
	case tracker == nil:
		return nil, errors.New().WithData(errors.ErrInvalidArgument, "nil activity tracker")
	case probes.Pointer == nil || probes.Window == nil || probes.Power == nil:
		return nil, errors.New().WithData(errors.ErrInvalidArgument, "incomplete probe set")
	}

	if sink == nil {
		sink = Sinks{}
	}

	s := &Sampler{
		cfg:     cfg,
		device:  device,
		tracker: tracker,
		probes:  probes,
		sink:    sink,
		clock:   realClock{},
		log:     logger.New("sampler"),
	}
	s.stages = s.steps()

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Start notifies the sinks and launches the tick loop. The first cycle runs
// on the first tick, one interval after Start.
func (s *Sampler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return errors.New().WithMessage(errors.ErrSamplerState, "sampler already started")
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	ticker := s.clock.Ticker(s.cfg.Interval)

	s.log.Info().
		Dur("interval", s.cfg.Interval).
		Dur("inactivity", s.cfg.InactivityThreshold).
		Str("idle_boundary", s.tracker.Boundary().String()).
		Msg("Sampler started")
	s.sink.OnStarted()

	go s.run(ctx, ticker)

	return nil
}

func (s *Sampler) run(ctx context.Context, ticker Ticker) {
	defer close(s.done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case at := <-ticker.Chan():
			s.cycle(at)
		}
	}
}

// Stop halts future ticks and waits for an in-flight cycle to finish. The
// sinks see OnStopped(cause) once, on the first call after Start.
func (s *Sampler) Stop(cause error) {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	if !started {
		return
	}

	s.stopOnce.Do(func() {
		s.cancel()
		<-s.done

		s.log.Info().AnErr("cause", cause).Msg("Sampler stopped")

		s.sink.OnStopped(cause)
	})
}

// Device returns the live model. Callers outside the sampler goroutine must
// only read it while the sampler is stopped.
func (s *Sampler) Device() *model.Device {
	return s.device
}
