package sampler

//go:generate mockgen -destination=mock_sampler.go -package=sampler codeberg.org/mutker/pcadapter/internal/sampler Clock,Ticker,Sink

import (
	"time"

	"codeberg.org/mutker/pcadapter/internal/model"
)

// Clock abstracts time-related operations.
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker abstracts the ticker behavior.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// Sink receives the sampler lifecycle and one snapshot per completed cycle.
// Calls are made from the sampler goroutine and must not block for long.
type Sink interface {
	OnStarted()
	OnSample(snapshot model.Snapshot)
	OnStopped(cause error)
}
