// Package probe defines the host probes the sampler polls and the platform
// adapters behind them.
package probe

import (
	"strconv"
	"strings"
)

// Point is a pointer position.
type Point struct {
	X, Y int
}

// BatteryFlag uses the Win32 SYSTEM_POWER_STATUS bit values on every platform.
type BatteryFlag uint8

const (
	BatteryHigh            BatteryFlag = 1
	BatteryLow             BatteryFlag = 2
	BatteryCritical        BatteryFlag = 4
	BatteryCharging        BatteryFlag = 8
	BatteryNoSystemBattery BatteryFlag = 128
	BatteryUnknown         BatteryFlag = 255
)

var batteryFlagNames = []struct {
	flag BatteryFlag
	name string
}{
	{BatteryHigh, "High"},
	{BatteryLow, "Low"},
	{BatteryCritical, "Critical"},
	{BatteryCharging, "Charging"},
}

func (f BatteryFlag) String() string {
	switch f {
	case BatteryUnknown:
		return "Unknown"
	case BatteryNoSystemBattery:
		return "NoSystemBattery"
	case 0:
		return "None"
	}

	var names []string
	for _, n := range batteryFlagNames {
		if f&n.flag != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return strconv.Itoa(int(f))
	}

	return strings.Join(names, ", ")
}

// Known reports whether the flag describes a present battery.
func (f BatteryFlag) Known() bool {
	return f != BatteryUnknown && f != BatteryNoSystemBattery
}

// ACLineStatus uses the Win32 values.
type ACLineStatus uint8

const (
	ACOffline ACLineStatus = 0
	ACOnline  ACLineStatus = 1
	ACUnknown ACLineStatus = 255
)

func (s ACLineStatus) String() string {
	switch s {
	case ACOffline:
		return "Offline"
	case ACOnline:
		return "Online"
	case ACUnknown:
		return "Unknown"
	default:
		return strconv.Itoa(int(s))
	}
}

// Known reports whether the line status is Online or Offline.
func (s ACLineStatus) Known() bool {
	return s == ACOffline || s == ACOnline
}

// UnknownPercent is the battery percentage reported when it cannot be read.
const UnknownPercent = 255

// PowerStatus is one power reading.
type PowerStatus struct {
	BatteryFlag    BatteryFlag
	BatteryPercent int
	LineStatus     ACLineStatus
}
