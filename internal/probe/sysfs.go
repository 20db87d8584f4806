package probe

import (
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/distatus/battery"
)

// DefaultPowerSupplyRoot is where Linux exposes power supplies.
const DefaultPowerSupplyRoot = "/sys/class/power_supply"

// SysfsPower reads the system battery through the battery package and the
// mains supply from the power_supply class directory, and maps both onto the
// Win32 flag values.
type SysfsPower struct {
	root      string
	batteries func() ([]*battery.Battery, error)
}

// NewSysfsPower returns a reader whose mains supplies live under root, or
// DefaultPowerSupplyRoot if root is empty.
func NewSysfsPower(root string) *SysfsPower {
	if root == "" {
		root = DefaultPowerSupplyRoot
	}

	return &SysfsPower{root: root, batteries: battery.GetAll}
}

func (p *SysfsPower) ReadPowerStatus() (PowerStatus, error) {
	status := PowerStatus{
		BatteryFlag:    BatteryNoSystemBattery,
		BatteryPercent: UnknownPercent,
		LineStatus:     ACUnknown,
	}

	bats, err := p.batteries()
	if err != nil && len(bats) == 0 {
		return PowerStatus{}, &OpError{Op: "GetBatteries", Err: err}
	}

	// Entries of a partial result may be nil; the first usable one is the
	// system battery.
	var bat *battery.Battery
	for _, b := range bats {
		if b != nil {
			bat = b
			break
		}
	}
	if bat != nil {
		status.BatteryFlag, status.BatteryPercent = batteryFlag(bat)
	}

	mains, err := p.readMains()
	if err != nil {
		return PowerStatus{}, err
	}

	switch {
	case mains != ACUnknown:
		status.LineStatus = mains
	case bat != nil && status.BatteryFlag.Known():
		switch bat.State.Raw {
		case battery.Discharging:
			status.LineStatus = ACOffline
		case battery.Charging, battery.Full:
			status.LineStatus = ACOnline
		}
	}

	return status, nil
}

// readMains returns ACUnknown when the host has no mains supply entry.
func (p *SysfsPower) readMains() (ACLineStatus, error) {
	entries, err := os.ReadDir(p.root)
	if err != nil {
		return ACUnknown, &OpError{Op: "ReadPowerSupply", Err: err}
	}

	line := ACUnknown
	for _, entry := range entries {
		dir := filepath.Join(p.root, entry.Name())
		if readAttr(dir, "type") != "Mains" {
			continue
		}

		if readAttr(dir, "online") == "1" {
			return ACOnline, nil
		}
		line = ACOffline
	}

	return line, nil
}

func batteryFlag(b *battery.Battery) (BatteryFlag, int) {
	if b.Full <= 0 || b.Current < 0 {
		return BatteryUnknown, UnknownPercent
	}

	pct := int(math.Round(b.Current / b.Full * 100))
	if pct > 100 {
		pct = 100
	}

	var flag BatteryFlag
	switch {
	case pct < 5:
		flag = BatteryLow | BatteryCritical
	case pct < 33:
		flag = BatteryLow
	case pct > 66:
		flag = BatteryHigh
	}

	if b.State.Raw == battery.Charging {
		flag |= BatteryCharging
	}

	return flag, pct
}

func readAttr(dir, name string) string {
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(b))
}
