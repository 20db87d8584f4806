// Package model holds the live device model the sampler mutates and the
// Snapshot copies it hands to sinks.
package model

import (
	"time"

	"codeberg.org/mutker/pcadapter/internal/condition"
	"codeberg.org/mutker/pcadapter/internal/identity"
)

// Component is a named group of items and conditions.
type Component struct {
	key        ComponentKey
	items      []observable
	conditions []*condition.Condition
}

func (c *Component) Kind() ComponentKind {
	return c.key.Kind
}

func (c *Component) Name() string {
	return c.key.Name
}

func (c *Component) snapshot() ComponentSnapshot {
	out := ComponentSnapshot{
		Kind: c.key.Kind,
		Name: c.key.Name,
	}

	if len(c.items) > 0 {
		out.Items = make([]Observation, 0, len(c.items))
		for _, item := range c.items {
			out.Items = append(out.Items, item.Observe())
		}
	}

	if len(c.conditions) > 0 {
		out.Conditions = make([]condition.State, 0, len(c.conditions))
		for _, cond := range c.conditions {
			out.Conditions = append(out.Conditions, cond.State())
		}
	}

	return out
}

// Device is the live model. It is owned by the sampler goroutine; other
// goroutines must only use Snapshot values.
type Device struct {
	identity *identity.Identity

	Availability *DataItem[Availability]
	Access       *condition.Condition
	Cycle        *condition.Condition

	XPosition *DataItem[int]
	YPosition *DataItem[int]

	Execution *DataItem[Execution]
	Program   *DataItem[string]

	ACConnected      *DataItem[bool]
	ACState          *condition.Condition
	BatteryRemaining *DataItem[int]
	BatteryState     *condition.Condition

	root       *Component
	components map[ComponentKey]*Component
	order      []*Component
	byName     map[string]observable
	conditions map[string]*condition.Condition
	sequence   uint64
}

// NewDevice builds the model with every item unavailable and every condition
// normal.
func NewDevice(id *identity.Identity) *Device {
	d := &Device{
		identity:   id,
		components: make(map[ComponentKey]*Component),
		byName:     make(map[string]observable),
		conditions: make(map[string]*condition.Condition),
	}
	d.root = &Component{key: deviceKey}

	d.Availability = register[Availability](d, ItemAvailability)
	d.Access = registerCondition(d, ItemAccess)
	d.Cycle = registerCondition(d, ItemCycle)

	d.XPosition = register[int](d, ItemXPosition)
	d.YPosition = register[int](d, ItemYPosition)

	d.Execution = register[Execution](d, ItemExecution)
	d.Program = register[string](d, ItemProgram)

	d.ACConnected = register[bool](d, ItemACConnected)
	d.ACState = registerCondition(d, ItemACState)
	d.BatteryRemaining = register[int](d, ItemBatteryRemaining)
	d.BatteryState = registerCondition(d, ItemBatteryState)

	return d
}

func register[T comparable](d *Device, id ItemID) *DataItem[T] {
	spec := mustLookup(id)
	item := &DataItem[T]{spec: spec}

	c := d.group(spec.Component)
	c.items = append(c.items, item)
	d.byName[spec.Name] = item

	return item
}

func registerCondition(d *Device, id ItemID) *condition.Condition {
	spec := mustLookup(id)
	cond := condition.New(spec.Name)

	c := d.group(spec.Component)
	c.conditions = append(c.conditions, cond)
	d.conditions[spec.Name] = cond

	return cond
}

func (d *Device) group(key ComponentKey) *Component {
	if key == deviceKey {
		return d.root
	}

	return d.Component(key.Kind, key.Name)
}

// Component returns the component for kind and name, creating it on first
// use. Later calls return the same instance.
func (d *Device) Component(kind ComponentKind, name string) *Component {
	key := ComponentKey{Kind: kind, Name: name}
	if c, ok := d.components[key]; ok {
		return c
	}

	c := &Component{key: key}
	d.components[key] = c
	d.order = append(d.order, c)

	return c
}

// Identity returns the device identity.
func (d *Device) Identity() *identity.Identity {
	return d.identity
}

// Observe looks up an item by wire name.
func (d *Device) Observe(name string) (Observation, bool) {
	item, ok := d.byName[name]
	if !ok {
		return Observation{}, false
	}

	return item.Observe(), true
}

// Condition looks up a condition by name.
func (d *Device) Condition(name string) (*condition.Condition, bool) {
	c, ok := d.conditions[name]
	return c, ok
}

// Conditions returns every condition in registration order.
func (d *Device) Conditions() []*condition.Condition {
	out := make([]*condition.Condition, 0, len(d.conditions))
	out = append(out, d.root.conditions...)
	for _, c := range d.order {
		out = append(out, c.conditions...)
	}

	return out
}

// Snapshot copies the model and advances the snapshot sequence.
func (d *Device) Snapshot(at time.Time) Snapshot {
	d.sequence++

	root := d.root.snapshot()
	s := Snapshot{
		Sequence:   d.sequence,
		Timestamp:  at,
		Items:      root.Items,
		Conditions: root.Conditions,
	}

	if d.identity != nil {
		s.DeviceUUID = d.identity.UUID().String()
		s.DeviceName = d.identity.Name()
		s.StationID = d.identity.StationID()
	}

	s.Components = make([]ComponentSnapshot, 0, len(d.order))
	for _, c := range d.order {
		s.Components = append(s.Components, c.snapshot())
	}

	return s
}
