//go:build !linux && !windows

package probe

func NewHost() Set {
	return Set{
		Pointer: unsupported{},
		Window:  unsupported{},
		Power:   unsupported{},
	}
}

func NewInputHook() InputHook {
	return unsupported{}
}
