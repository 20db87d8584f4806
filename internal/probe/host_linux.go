//go:build linux

package probe

// NewHost returns the Linux probe set. Pointer and window title need a
// display server connection and are reported as unsupported.
func NewHost() Set {
	return Set{
		Pointer: unsupported{},
		Window:  unsupported{},
		Power:   NewSysfsPower(""),
	}
}
