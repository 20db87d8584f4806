package sampler

import (
	"fmt"

	"codeberg.org/mutker/pcadapter/internal/condition"
	"codeberg.org/mutker/pcadapter/internal/logger"
	"codeberg.org/mutker/pcadapter/internal/model"
)

// Sinks fans every notification out to each sink in order. A sink that
// panics is logged and skipped; the remaining sinks are still notified.
type Sinks []Sink

func (s Sinks) OnStarted() {
	s.each("OnStarted", func(sink Sink) { sink.OnStarted() })
}

func (s Sinks) OnSample(snapshot model.Snapshot) {
	s.each("OnSample", func(sink Sink) { sink.OnSample(snapshot) })
}

func (s Sinks) OnStopped(cause error) {
	s.each("OnStopped", func(sink Sink) { sink.OnStopped(cause) })
}

func (s Sinks) each(method string, fn func(Sink)) {
	for i, sink := range s {
		notifySink(i, sink, method, fn)
	}
}

func notifySink(index int, sink Sink, method string, fn func(Sink)) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Interface("panic", r).
				Int("index", index).
				Str("sink", fmt.Sprintf("%T", sink)).
				Str("method", method).
				Msg("Sink failed")
		}
	}()

	fn(sink)
}

// LogSink logs each snapshot at debug level and condition changes at
// warning or info level.
type LogSink struct {
	log    logger.Logger
	levels map[string]condition.Level
}

func NewLogSink(log logger.Logger) *LogSink {
	return &LogSink{
		log:    log,
		levels: make(map[string]condition.Level),
	}
}

func (l *LogSink) OnStarted() {
	l.log.Info().Msg("Adapter available")
}

func (l *LogSink) OnSample(snapshot model.Snapshot) {
	if e := l.log.Debug(); e.Enabled() {
		ev := e.Uint64("sequence", snapshot.Sequence)
		for _, item := range snapshot.Items {
			ev = ev.Str(item.Name, item.String())
		}
		for _, c := range snapshot.Components {
			for _, item := range c.Items {
				ev = ev.Str(item.Name, item.String())
			}
		}
		ev.Msg("Sample")
	}

	for _, state := range snapshot.AllConditions() {
		prev, seen := l.levels[state.Name]
		l.levels[state.Name] = state.Level
		if (!seen && state.Level == condition.Normal) || (seen && prev == state.Level) {
			continue
		}

		if state.Level == condition.Normal {
			l.log.Info().
				Str("condition", state.Name).
				Str("previous", prev.String()).
				Msg("Condition cleared")
			continue
		}

		for _, entry := range state.Entries {
			l.log.Warn().
				Str("condition", state.Name).
				Str("level", entry.Level.String()).
				Str("native_code", entry.NativeCode).
				Str("message", entry.Message).
				Msg("Condition raised")
		}
	}
}

func (l *LogSink) OnStopped(cause error) {
	l.log.Info().AnErr("cause", cause).Msg("Adapter unavailable")
}
