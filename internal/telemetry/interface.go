package telemetry

import (
	"time"

	"codeberg.org/mutker/pcadapter/internal/model"
)

// Publisher is a sampler sink that forwards snapshots and lifecycle events.
type Publisher interface {
	OnStarted()
	OnSample(snapshot model.Snapshot)
	OnStopped(cause error)
	Close() error
}

// Conn is the subset of *nats.Conn the publisher uses.
type Conn interface {
	Publish(subject string, data []byte) error
	Flush() error
	Drain() error
}

// LifecycleEvent is published when the sampler starts and stops.
type LifecycleEvent struct {
	Event      string    `json:"event"`
	DeviceUUID string    `json:"device_uuid"`
	DeviceName string    `json:"device_name"`
	StationID  string    `json:"station_id"`
	Timestamp  time.Time `json:"timestamp"`
	Cause      string    `json:"cause,omitempty"`
}

const (
	EventStarted = "started"
	EventStopped = "stopped"
)
