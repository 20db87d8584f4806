package model

import (
	"fmt"
	"time"
)

// Category is how a transport classifies an item.
type Category string

const (
	CategoryEvent     Category = "EVENT"
	CategorySample    Category = "SAMPLE"
	CategoryCondition Category = "CONDITION"
)

// Availability is the value of the device availability item.
type Availability string

const (
	Available   Availability = "AVAILABLE"
	Unavailable Availability = "UNAVAILABLE"
)

// Execution is the derived execution state.
type Execution string

const (
	ExecutionReady   Execution = "READY"
	ExecutionActive  Execution = "ACTIVE"
	ExecutionStopped Execution = "STOPPED"
)

// DataItem is a typed value that is either unavailable or holds a value, plus
// the time of its last change.
type DataItem[T comparable] struct {
	spec      ItemSpec
	value     T
	available bool
	timestamp time.Time
}

// Set stores v. The timestamp only moves when the value or availability
// changes. It reports whether anything changed.
func (d *DataItem[T]) Set(v T, at time.Time) bool {
	if d.available && d.value == v {
		return false
	}

	d.value = v
	d.available = true
	d.timestamp = at

	return true
}

// SetUnavailable drops the value. It reports whether the item was available.
func (d *DataItem[T]) SetUnavailable(at time.Time) bool {
	if !d.available {
		return false
	}

	var zero T
	d.value = zero
	d.available = false
	d.timestamp = at

	return true
}

// Value returns the current value and whether it is available.
func (d *DataItem[T]) Value() (T, bool) {
	return d.value, d.available
}

func (d *DataItem[T]) Available() bool {
	return d.available
}

// Timestamp is the time of the last change, zero if the item never changed.
func (d *DataItem[T]) Timestamp() time.Time {
	return d.timestamp
}

func (d *DataItem[T]) Spec() ItemSpec {
	return d.spec
}

// Observe copies the item into an Observation.
func (d *DataItem[T]) Observe() Observation {
	o := Observation{
		Name:      d.spec.Name,
		Category:  d.spec.Category,
		Units:     d.spec.Units,
		Available: d.available,
		Timestamp: d.timestamp,
	}
	if d.available {
		o.Value = d.value
	}

	return o
}

type observable interface {
	Spec() ItemSpec
	Observe() Observation
}

// Observation is a point-in-time copy of a DataItem.
type Observation struct {
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Units     string    `json:"units,omitempty"`
	Value     any       `json:"value"`
	Available bool      `json:"available"`
	Timestamp time.Time `json:"timestamp"`
}

// String renders the value the way a line-oriented transport would.
func (o Observation) String() string {
	if !o.Available {
		return string(Unavailable)
	}

	return fmt.Sprint(o.Value)
}
