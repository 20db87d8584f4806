package model

import (
	"time"

	"codeberg.org/mutker/pcadapter/internal/condition"
)

// Snapshot is a deep copy of the device model taken at the end of a cycle.
type Snapshot struct {
	Sequence   uint64              `json:"sequence"`
	Timestamp  time.Time           `json:"timestamp"`
	DeviceUUID string              `json:"device_uuid"`
	DeviceName string              `json:"device_name"`
	StationID  string              `json:"station_id"`
	Items      []Observation       `json:"items"`
	Conditions []condition.State   `json:"conditions"`
	Components []ComponentSnapshot `json:"components"`
}

// ComponentSnapshot is the copy of one component.
type ComponentSnapshot struct {
	Kind       ComponentKind     `json:"kind"`
	Name       string            `json:"name"`
	Items      []Observation     `json:"items,omitempty"`
	Conditions []condition.State `json:"conditions,omitempty"`
}

// Item finds an observation by wire name anywhere in the snapshot.
func (s Snapshot) Item(name string) (Observation, bool) {
	for _, o := range s.Items {
		if o.Name == name {
			return o, true
		}
	}

	for _, c := range s.Components {
		for _, o := range c.Items {
			if o.Name == name {
				return o, true
			}
		}
	}

	return Observation{}, false
}

// Condition finds a condition by name anywhere in the snapshot.
func (s Snapshot) Condition(name string) (condition.State, bool) {
	for _, c := range s.AllConditions() {
		if c.Name == name {
			return c, true
		}
	}

	return condition.State{}, false
}

// AllConditions lists device and component conditions in order.
func (s Snapshot) AllConditions() []condition.State {
	out := make([]condition.State, 0, len(s.Conditions)+4)
	out = append(out, s.Conditions...)
	for _, c := range s.Components {
		out = append(out, c.Conditions...)
	}

	return out
}
