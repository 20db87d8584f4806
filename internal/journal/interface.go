package journal

import (
	"context"
	"time"

	"codeberg.org/mutker/pcadapter/internal/condition"
	"codeberg.org/mutker/pcadapter/internal/model"
)

// Journal is a sampler sink that keeps a history of condition level changes.
type Journal interface {
	OnStarted()
	OnSample(snapshot model.Snapshot)
	OnStopped(cause error)
	Transitions(ctx context.Context, limit int) ([]Transition, error)
	Close() error
}

// Repository defines the interface for transition storage
type Repository interface {
	Record(t *Transition) error
	Transitions(ctx context.Context, limit int) ([]Transition, error)
	Close() error
}

// Transition is one change of a condition's reported level.
type Transition struct {
	Timestamp   time.Time
	DeviceUUID  string
	Condition   string
	Previous    condition.Level
	Level       condition.Level
	NativeCodes []string
	Messages    []string
}
