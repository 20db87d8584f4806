package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/pcadapter/internal/errors"
	"github.com/distatus/battery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatteryFlagString(t *testing.T) {
	tests := []struct {
		flag BatteryFlag
		want string
	}{
		{0, "None"},
		{BatteryHigh, "High"},
		{BatteryLow | BatteryCharging, "Low, Charging"},
		{BatteryLow | BatteryCritical, "Low, Critical"},
		{BatteryNoSystemBattery, "NoSystemBattery"},
		{BatteryUnknown, "Unknown"},
		{64, "64"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.flag.String())
	}

	assert.True(t, BatteryHigh.Known())
	assert.False(t, BatteryUnknown.Known())
	assert.False(t, BatteryNoSystemBattery.Known())
}

func TestACLineStatus(t *testing.T) {
	assert.Equal(t, "Online", ACOnline.String())
	assert.Equal(t, "Offline", ACOffline.String())
	assert.Equal(t, "Unknown", ACUnknown.String())
	assert.Equal(t, "7", ACLineStatus(7).String())
	assert.True(t, ACOffline.Known())
	assert.False(t, ACLineStatus(7).Known())
}

func TestOperation(t *testing.T) {
	err := fmt.Errorf("read: %w", &OpError{Op: "GetSystemPowerStatus", Err: os.ErrPermission})
	assert.Equal(t, "GetSystemPowerStatus", Operation(err, "ReadPowerStatus"))
	assert.Equal(t, "ReadPowerStatus", Operation(os.ErrPermission, "ReadPowerStatus"))
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestUnsupported(t *testing.T) {
	var u unsupported

	_, err := u.ReadPointer()
	assert.ErrorIs(t, err, errors.ErrUnsupported)
	assert.Equal(t, "ReadPointer", Operation(err, ""))

	_, err = u.ReadPowerStatus()
	assert.ErrorIs(t, err, errors.ErrUnsupported)

	_, err = u.Subscribe(nil)
	assert.True(t, errors.HasCode(err, ErrHookFailed))
	assert.ErrorIs(t, err, errors.ErrUnsupported)
}

func writeSupply(t *testing.T, root, name string, attrs map[string]string) {
	t.Helper()

	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for k, v := range attrs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, k), []byte(v+"\n"), 0o644))
	}
}

func batteries(bats ...*battery.Battery) func() ([]*battery.Battery, error) {
	return func() ([]*battery.Battery, error) {
		return bats, nil
	}
}

func systemBattery(state battery.AgnosticState, current, full float64) *battery.Battery {
	return &battery.Battery{State: battery.State{Raw: state}, Current: current, Full: full}
}

func TestSysfsPower(t *testing.T) {
	t.Run("laptop on mains, charging", func(t *testing.T) {
		root := t.TempDir()
		writeSupply(t, root, "AC", map[string]string{"type": "Mains", "online": "1"})

		p := &SysfsPower{root: root, batteries: batteries(systemBattery(battery.Charging, 40000, 50000))}
		got, err := p.ReadPowerStatus()
		require.NoError(t, err)
		assert.Equal(t, PowerStatus{BatteryFlag: BatteryHigh | BatteryCharging, BatteryPercent: 80, LineStatus: ACOnline}, got)
	})

	t.Run("on battery, critical", func(t *testing.T) {
		root := t.TempDir()
		writeSupply(t, root, "AC", map[string]string{"type": "Mains", "online": "0"})

		p := &SysfsPower{root: root, batteries: batteries(systemBattery(battery.Discharging, 1500, 50000))}
		got, err := p.ReadPowerStatus()
		require.NoError(t, err)
		assert.Equal(t, BatteryLow|BatteryCritical, got.BatteryFlag)
		assert.Equal(t, 3, got.BatteryPercent)
		assert.Equal(t, ACOffline, got.LineStatus)
	})

	t.Run("desktop without battery", func(t *testing.T) {
		root := t.TempDir()
		writeSupply(t, root, "ADP1", map[string]string{"type": "Mains", "online": "1"})

		p := &SysfsPower{root: root, batteries: batteries()}
		got, err := p.ReadPowerStatus()
		require.NoError(t, err)
		assert.Equal(t, BatteryNoSystemBattery, got.BatteryFlag)
		assert.Equal(t, UnknownPercent, got.BatteryPercent)
		assert.Equal(t, ACOnline, got.LineStatus)
	})

	t.Run("line status from battery without mains", func(t *testing.T) {
		p := &SysfsPower{root: t.TempDir(), batteries: batteries(systemBattery(battery.Discharging, 25, 50))}
		got, err := p.ReadPowerStatus()
		require.NoError(t, err)
		assert.Equal(t, BatteryFlag(0), got.BatteryFlag)
		assert.Equal(t, 50, got.BatteryPercent)
		assert.Equal(t, ACOffline, got.LineStatus)
	})

	t.Run("partial result skips missing entries", func(t *testing.T) {
		p := &SysfsPower{root: t.TempDir(), batteries: func() ([]*battery.Battery, error) {
			return []*battery.Battery{nil, systemBattery(battery.Full, 51000, 50000)}, errors.Join(os.ErrPermission)
		}}
		got, err := p.ReadPowerStatus()
		require.NoError(t, err)
		assert.Equal(t, BatteryHigh, got.BatteryFlag)
		assert.Equal(t, 100, got.BatteryPercent)
		assert.Equal(t, ACOnline, got.LineStatus)
	})

	t.Run("unknown capacity", func(t *testing.T) {
		p := &SysfsPower{root: t.TempDir(), batteries: batteries(systemBattery(battery.Discharging, 0, 0))}
		got, err := p.ReadPowerStatus()
		require.NoError(t, err)
		assert.Equal(t, BatteryUnknown, got.BatteryFlag)
		assert.Equal(t, ACUnknown, got.LineStatus)
	})

	t.Run("battery query fails", func(t *testing.T) {
		p := &SysfsPower{root: t.TempDir(), batteries: func() ([]*battery.Battery, error) {
			return nil, os.ErrPermission
		}}
		_, err := p.ReadPowerStatus()
		require.Error(t, err)
		assert.Equal(t, "GetBatteries", Operation(err, ""))
		assert.ErrorIs(t, err, os.ErrPermission)
	})

	t.Run("missing root", func(t *testing.T) {
		p := NewSysfsPower(filepath.Join(t.TempDir(), "nope"))
		p.batteries = batteries()
		_, err := p.ReadPowerStatus()
		require.Error(t, err)
		assert.Equal(t, "ReadPowerSupply", Operation(err, ""))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
