package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"codeberg.org/mutker/pcadapter/internal/condition"
	"codeberg.org/mutker/pcadapter/internal/identity"
	"codeberg.org/mutker/pcadapter/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newDevice() *model.Device {
	return model.NewDevice(identity.New("pc-01", "station-1"))
}

func TestNewDeviceStartsUnavailable(t *testing.T) {
	d := newDevice()
	snap := d.Snapshot(t0)

	for _, spec := range model.Specs() {
		if spec.Category == model.CategoryCondition {
			c, ok := snap.Condition(spec.Name)
			require.True(t, ok, spec.Name)
			assert.Equal(t, condition.Normal, c.Level, spec.Name)
			continue
		}

		o, ok := snap.Item(spec.Name)
		require.True(t, ok, spec.Name)
		assert.False(t, o.Available, spec.Name)
		assert.Nil(t, o.Value, spec.Name)
		assert.Equal(t, "UNAVAILABLE", o.String(), spec.Name)
	}
}

func TestDataItemTimestampMovesOnChangeOnly(t *testing.T) {
	d := newDevice()

	assert.True(t, d.XPosition.Set(10, t0))
	assert.False(t, d.XPosition.Set(10, t0.Add(time.Second)))
	assert.Equal(t, t0, d.XPosition.Timestamp())

	assert.True(t, d.XPosition.Set(11, t0.Add(2*time.Second)))
	assert.Equal(t, t0.Add(2*time.Second), d.XPosition.Timestamp())

	v, ok := d.XPosition.Value()
	assert.True(t, ok)
	assert.Equal(t, 11, v)
}

func TestDataItemUnavailableDropsValue(t *testing.T) {
	d := newDevice()

	assert.False(t, d.Program.SetUnavailable(t0), "already unavailable")

	d.Program.Set("editor", t0)
	assert.True(t, d.Program.SetUnavailable(t0.Add(time.Second)))

	v, ok := d.Program.Value()
	assert.False(t, ok)
	assert.Empty(t, v)
	assert.Equal(t, t0.Add(time.Second), d.Program.Timestamp())

	assert.True(t, d.Program.Set("editor", t0.Add(2*time.Second)), "becoming available again is a change")
}

func TestComponentsAreCachedByKey(t *testing.T) {
	d := newDevice()

	axes := d.Component(model.KindAxes, model.PointerAxes)
	assert.Same(t, axes, d.Component(model.KindAxes, model.PointerAxes))
	assert.NotSame(t, axes, d.Component(model.KindPath, model.PointerAxes))

	d.XPosition.Set(5, t0)
	extra := d.Component(model.KindAxes, "secondary")
	assert.Same(t, extra, d.Component(model.KindAxes, "secondary"))

	o, ok := d.Observe("xPos")
	require.True(t, ok)
	assert.Equal(t, 5, o.Value, "lookups never rebuild items")
}

func TestSnapshotLayout(t *testing.T) {
	d := newDevice()
	snap := d.Snapshot(t0)

	assert.Equal(t, uint64(1), snap.Sequence)
	assert.Equal(t, identity.DeviceUUID("pc-01").String(), snap.DeviceUUID)
	assert.Equal(t, "pc-01", snap.DeviceName)
	assert.Equal(t, "station-1", snap.StationID)

	require.Len(t, snap.Components, 3)
	assert.Equal(t, model.KindAxes, snap.Components[0].Kind)
	assert.Equal(t, model.PointerAxes, snap.Components[0].Name)
	assert.Equal(t, model.KindPath, snap.Components[1].Kind)
	assert.Equal(t, model.KindController, snap.Components[2].Kind)

	names := []string{}
	for _, c := range snap.AllConditions() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"access", "cycle", "acState", "batteryState"}, names)

	assert.Equal(t, uint64(2), d.Snapshot(t0).Sequence)
}

func TestSnapshotIsIsolatedFromLaterMutation(t *testing.T) {
	d := newDevice()
	d.XPosition.Set(1, t0)
	d.BatteryState.AssertWarning("255", "Unknown")

	snap := d.Snapshot(t0)

	d.XPosition.Set(2, t0.Add(time.Second))
	d.BatteryState.SetNormal()
	d.BatteryState.AssertFault("GetSystemPowerStatus", "denied")

	o, _ := snap.Item("xPos")
	assert.Equal(t, 1, o.Value)

	c, _ := snap.Condition("batteryState")
	assert.Equal(t, condition.Warning, c.Level)
	require.Len(t, c.Entries, 1)
	assert.Equal(t, "255", c.Entries[0].NativeCode)
}

func TestSnapshotJSON(t *testing.T) {
	d := newDevice()
	d.Availability.Set(model.Available, t0)
	d.ACState.AssertWarning("255", "Unknown")

	raw, err := json.Marshal(d.Snapshot(t0))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "pc-01", decoded["device_name"])

	items := decoded["items"].([]any)
	avail := items[0].(map[string]any)
	assert.Equal(t, "avail", avail["name"])
	assert.Equal(t, "AVAILABLE", avail["value"])
	assert.Contains(t, string(raw), `"level":"WARNING"`)
}

func TestRegistryNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, spec := range model.Specs() {
		assert.False(t, seen[spec.Name], spec.Name)
		seen[spec.Name] = true

		got, ok := model.Lookup(spec.ID)
		require.True(t, ok)
		assert.Equal(t, spec, got)
	}

	_, ok := model.Lookup(model.ItemID(999))
	assert.False(t, ok)
}

func TestObserveUnknownName(t *testing.T) {
	d := newDevice()

	_, ok := d.Observe("foobar")
	assert.False(t, ok)

	_, ok = d.Condition("foobar")
	assert.False(t, ok)

	c, ok := d.Condition("acState")
	require.True(t, ok)
	assert.Same(t, d.ACState, c)
	assert.Len(t, d.Conditions(), 4)
}
