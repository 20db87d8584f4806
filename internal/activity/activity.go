// Package activity records the most recent user input seen by any source.
package activity

import (
	"strings"
	"sync/atomic"
	"time"

	"codeberg.org/mutker/pcadapter/internal/errors"
)

// Boundary decides whether elapsed time equal to the threshold counts as idle.
type Boundary int

const (
	// Exclusive treats the host as idle only once elapsed > threshold.
	Exclusive Boundary = iota
	// Inclusive treats the host as idle once elapsed >= threshold.
	Inclusive
)

func (b Boundary) String() string {
	if b == Inclusive {
		return "inclusive"
	}

	return "exclusive"
}

// ParseBoundary parses "exclusive" or "inclusive".
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exclusive":
		return Exclusive, nil
	case "inclusive":
		return Inclusive, nil
	default:
		return Exclusive, errors.New().WithData(errors.ErrInvalidBoundary, s)
	}
}

// Tracker holds the last activity time as Unix nanoseconds; zero means never.
// It is written by the sampler and by input hooks concurrently.
type Tracker struct {
	last     atomic.Int64
	boundary Boundary
}

// NewTracker returns a Tracker that has never recorded activity.
func NewTracker(boundary Boundary) *Tracker {
	return &Tracker{boundary: boundary}
}

// RecordActivity stores now unless a later activity is already recorded.
func (t *Tracker) RecordActivity(now time.Time) {
	ts := now.UnixNano()
	if ts == 0 {
		ts = 1
	}

	for {
		prev := t.last.Load()
		if prev >= ts {
			return
		}
		if t.last.CompareAndSwap(prev, ts) {
			return
		}
	}
}

// HasEverRecorded reports whether any activity was ever recorded.
func (t *Tracker) HasEverRecorded() bool {
	return t.last.Load() != 0
}

// LastActivity returns the last recorded activity and whether there is one.
func (t *Tracker) LastActivity() (time.Time, bool) {
	ts := t.last.Load()
	if ts == 0 {
		return time.Time{}, false
	}

	return time.Unix(0, ts), true
}

// IsIdleSince reports whether threshold has elapsed since the last activity.
// A tracker that never recorded activity is not idle.
func (t *Tracker) IsIdleSince(now time.Time, threshold time.Duration) bool {
	last, ok := t.LastActivity()
	if !ok {
		return false
	}

	elapsed := now.Sub(last)
	if t.boundary == Inclusive {
		return elapsed >= threshold
	}

	return elapsed > threshold
}

// Boundary returns the idle boundary policy.
func (t *Tracker) Boundary() Boundary {
	return t.boundary
}
