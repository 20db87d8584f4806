//go:build windows

package probe

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetCursorPos         = user32.NewProc("GetCursorPos")
	procGetForegroundWindow  = user32.NewProc("GetForegroundWindow")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetSystemPowerStatus = kernel32.NewProc("GetSystemPowerStatus")
)

type point struct {
	X, Y int32
}

type systemPowerStatus struct {
	ACLineStatus        uint8
	BatteryFlag         uint8
	BatteryLifePercent  uint8
	SystemStatusFlag    uint8
	BatteryLifeTime     uint32
	BatteryFullLifeTime uint32
}

type win32 struct{}

// NewHost returns probes backed by user32 and kernel32.
func NewHost() Set {
	return Set{Pointer: win32{}, Window: win32{}, Power: win32{}}
}

func (win32) ReadPointer() (Point, error) {
	var pt point
	r, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if r == 0 {
		return Point{}, &OpError{Op: "GetCursorPos", Err: err}
	}

	return Point{X: int(pt.X), Y: int(pt.Y)}, nil
}

func (win32) ReadActiveWindowTitle() (string, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		// No foreground window, e.g. while the desktop is locked.
		return "", nil
	}

	n, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if n == 0 {
		return "", nil
	}

	buf := make([]uint16, n+1)
	r, _, err := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if r == 0 && err != windows.ERROR_SUCCESS {
		return "", &OpError{Op: "GetWindowTextW", Err: err}
	}

	return windows.UTF16ToString(buf), nil
}

func (win32) ReadPowerStatus() (PowerStatus, error) {
	var sps systemPowerStatus
	r, _, err := procGetSystemPowerStatus.Call(uintptr(unsafe.Pointer(&sps)))
	if r == 0 {
		return PowerStatus{}, &OpError{Op: "GetSystemPowerStatus", Err: err}
	}

	return PowerStatus{
		BatteryFlag:    BatteryFlag(sps.BatteryFlag),
		BatteryPercent: int(sps.BatteryLifePercent),
		LineStatus:     ACLineStatus(sps.ACLineStatus),
	}, nil
}
