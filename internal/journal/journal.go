// Package journal keeps a sqlite history of condition level changes. Only
// transitions are stored, never samples.
package journal

import (
	"context"

	"codeberg.org/mutker/pcadapter/internal/condition"
	"codeberg.org/mutker/pcadapter/internal/errors"
	"codeberg.org/mutker/pcadapter/internal/logger"
	"codeberg.org/mutker/pcadapter/internal/model"
)

type service struct {
	repo   Repository
	cfg    Config
	log    logger.Logger
	levels map[string]condition.Level
}

// No-op implementation
type noopJournal struct{}

// NewService opens the journal database, or returns a no-op journal when
// the journal is disabled.
func NewService(cfg Config, log logger.Logger) (Journal, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		log.Debug().Msg("Condition journal disabled, using no-op journal")
		return &noopJournal{}, nil
	}

	repo, err := NewRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	return newService(repo, cfg, log), nil
}

func newService(repo Repository, cfg Config, log logger.Logger) *service {
	return &service{
		repo:   repo,
		cfg:    cfg,
		log:    log,
		levels: make(map[string]condition.Level),
	}
}

func (s *service) OnStarted() {}

// OnSample records every condition whose level differs from the previous
// snapshot. Conditions start NORMAL, so the first sighting of a NORMAL
// condition is not a transition.
func (s *service) OnSample(snapshot model.Snapshot) {
	for _, state := range snapshot.AllConditions() {
		prev, seen := s.levels[state.Name]
		if !seen {
			prev = condition.Normal
		}
		s.levels[state.Name] = state.Level

		if prev == state.Level {
			continue
		}

		if err := s.record(snapshot, state, prev); err != nil {
			s.log.Error().Err(err).Str("condition", state.Name).Msg("Failed to record condition transition")
		}
	}
}

func (s *service) record(snapshot model.Snapshot, state condition.State, prev condition.Level) error {
	t := &Transition{
		Timestamp:   snapshot.Timestamp,
		DeviceUUID:  snapshot.DeviceUUID,
		Condition:   state.Name,
		Previous:    prev,
		Level:       state.Level,
		NativeCodes: state.NativeCodes(),
	}
	for _, e := range state.Entries {
		t.Messages = append(t.Messages, e.Message)
	}

	if err := s.repo.Record(t); err != nil {
		return errors.New().Wrap(ErrRecordFailed, err)
	}

	return nil
}

// OnStopped forgets the last seen levels; a restarted sampler begins from
// NORMAL again.
func (s *service) OnStopped(error) {
	s.levels = make(map[string]condition.Level)
}

func (s *service) Transitions(ctx context.Context, limit int) ([]Transition, error) {
	errFactory := errors.New()

	if limit <= 0 {
		return nil, errFactory.WithData(errors.ErrInvalidArgument, limit)
	}

	select {
	case <-ctx.Done():
		return nil, errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
	}

	return s.repo.Transitions(ctx, limit)
}

func (s *service) Close() error {
	if err := s.repo.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}

	return nil
}

func (*noopJournal) OnStarted() {}

func (*noopJournal) OnSample(model.Snapshot) {}

func (*noopJournal) OnStopped(error) {}

func (*noopJournal) Transitions(context.Context, int) ([]Transition, error) {
	return nil, nil
}

func (*noopJournal) Close() error {
	return nil
}
