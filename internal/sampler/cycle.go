package sampler

import (
	"fmt"
	"strconv"
	"time"

	"codeberg.org/mutker/pcadapter/internal/errors"
	"codeberg.org/mutker/pcadapter/internal/model"
	"codeberg.org/mutker/pcadapter/internal/probe"
)

// Stage names identify where an unexpected failure escaped; they become the
// native code of the access fault.
const (
	StagePointer   = "ReadPointer"
	StageTitle     = "ReadActiveWindowTitle"
	StagePower     = "ReadPowerStatus"
	StageExecution = "DeriveExecution"
)

// step is one stage of the cycle. drop marks the items the stage owns as
// Unavailable when the stage did not complete.
type step struct {
	name string
	run  func(at time.Time)
	drop func(at time.Time)
}

func (s *Sampler) steps() []step {
	d := s.device

	return []step{
		{StagePointer, s.samplePointer, func(at time.Time) {
			d.XPosition.SetUnavailable(at)
			d.YPosition.SetUnavailable(at)
		}},
		{StageTitle, s.sampleTitle, func(at time.Time) {
			d.Program.SetUnavailable(at)
		}},
		{StagePower, s.samplePower, func(at time.Time) {
			d.BatteryRemaining.SetUnavailable(at)
			d.ACConnected.SetUnavailable(at)
		}},
		{StageExecution, s.deriveExecution, nil},
	}
}

func (s *Sampler) cycle(at time.Time) {
	d := s.device

	d.Availability.Set(model.Available, at)

	d.Cycle.SetNormal()
	if s.faulted {
		d.Cycle.AssertFault("", "")
	}

	d.Access.SetNormal()
	if failed, failure := s.sample(at); failure != "" {
		stage := s.stages[failed].name
		s.log.Error().
			Str("stage", stage).
			Str("failure", failure).
			Msg("Unexpected failure in sampling cycle")
		d.Access.AssertFault(stage, failure)
		s.faulted = true

		// Nothing from the failed stage onward was sampled this cycle.
		for _, st := range s.stages[failed:] {
			if st.drop != nil {
				st.drop(at)
			}
		}
	} else {
		s.faulted = false
	}

	s.notify(d.Snapshot(at))
}

// sample runs the steps in order. Probe failures and probe panics are
// handled inside each step; a panic escaping a step ends the cycle's
// sampling and is reported with the index of that step.
func (s *Sampler) sample(at time.Time) (failed int, failure string) {
	defer func() {
		if r := recover(); r != nil {
			failure = fmt.Sprint(r)
			if failure == "" {
				failure = errors.GetErrorMessage(errors.ErrUnexpected)
			}
		}
	}()

	for failed = range s.stages {
		s.stages[failed].run(at)
	}

	return failed, ""
}

func (s *Sampler) samplePointer(at time.Time) {
	d := s.device

	p, err := s.readPointer()
	if err != nil {
		if d.XPosition.Available() {
			s.log.Debug().Err(err).Msg("Pointer position unavailable")
		}
		d.XPosition.SetUnavailable(at)
		d.YPosition.SetUnavailable(at)
		return
	}

	x, xok := d.XPosition.Value()
	y, yok := d.YPosition.Value()
	if (xok && x != p.X) || (yok && y != p.Y) {
		s.tracker.RecordActivity(at)
	}

	d.XPosition.Set(p.X, at)
	d.YPosition.Set(p.Y, at)
}

func (s *Sampler) readPointer() (p probe.Point, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New().WithMessage(errors.ErrUnexpected, fmt.Sprint(r))
		}
	}()

	return s.probes.Pointer.ReadPointer()
}

func (s *Sampler) sampleTitle(at time.Time) {
	d := s.device

	title, err := s.readTitle()
	if err != nil || title == "" {
		if err != nil && d.Program.Available() {
			s.log.Debug().Err(err).Msg("Window title unavailable")
		}
		d.Program.SetUnavailable(at)
		return
	}

	d.Program.Set(title, at)
}

func (s *Sampler) readTitle() (title string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New().WithMessage(errors.ErrUnexpected, fmt.Sprint(r))
		}
	}()

	return s.probes.Window.ReadActiveWindowTitle()
}

func (s *Sampler) samplePower(at time.Time) {
	d := s.device

	status, err := s.readPower()

	d.BatteryState.SetNormal()
	d.ACState.SetNormal()

	if err != nil {
		code := probe.Operation(err, StagePower)
		d.BatteryState.AssertFault(code, err.Error())
		d.ACState.AssertFault(code, err.Error())
		d.BatteryRemaining.SetUnavailable(at)
		d.ACConnected.SetUnavailable(at)
		s.log.Warn().Err(err).Str("operation", code).Msg("Power status read failed")
		return
	}

	flag := status.BatteryFlag
	switch {
	case !flag.Known():
		d.BatteryState.AssertWarning(strconv.Itoa(int(flag)), flag.String())
		d.BatteryRemaining.SetUnavailable(at)
	case status.BatteryPercent < 0 || status.BatteryPercent > 100:
		d.BatteryRemaining.SetUnavailable(at)
	default:
		d.BatteryRemaining.Set(status.BatteryPercent, at)
	}

	line := status.LineStatus
	if !line.Known() {
		d.ACState.AssertWarning(strconv.Itoa(int(line)), line.String())
		d.ACConnected.SetUnavailable(at)
		return
	}

	d.ACConnected.Set(line == probe.ACOnline, at)
}

func (s *Sampler) readPower() (status probe.PowerStatus, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New().WithMessage(errors.ErrUnexpected, fmt.Sprint(r))
		}
	}()

	return s.probes.Power.ReadPowerStatus()
}

func (s *Sampler) deriveExecution(at time.Time) {
	var exec model.Execution

	switch {
	case !s.tracker.HasEverRecorded():
		exec = model.ExecutionReady
	case s.tracker.IsIdleSince(at, s.cfg.InactivityThreshold):
		exec = model.ExecutionStopped
	default:
		exec = model.ExecutionActive
	}

	if s.device.Execution.Set(exec, at) {
		s.log.Debug().Str("execution", string(exec)).Msg("Execution changed")
	}
}

func (s *Sampler) notify(snapshot model.Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Uint64("sequence", snapshot.Sequence).Msg("Sink failed")
		}
	}()

	s.sink.OnSample(snapshot)
}
