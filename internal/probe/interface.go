package probe

//go:generate mockgen -destination=mock_probe.go -package=probe codeberg.org/mutker/pcadapter/internal/probe PointerReader,WindowReader,PowerReader,InputHook

import "time"

// PointerReader reads the pointer position in screen coordinates.
type PointerReader interface {
	ReadPointer() (Point, error)
}

// WindowReader reads the title of the foreground window.
type WindowReader interface {
	ReadActiveWindowTitle() (string, error)
}

// PowerReader reads battery and AC line state.
type PowerReader interface {
	ReadPowerStatus() (PowerStatus, error)
}

// InputHook delivers user input activity asynchronously, on its own
// goroutine, until the returned Unsubscribe is called.
type InputHook interface {
	Subscribe(fn func(at time.Time)) (Unsubscribe, error)
}

// Unsubscribe stops delivery and waits for in-flight callbacks.
type Unsubscribe func() error

// Set bundles the readers the sampler polls each cycle.
type Set struct {
	Pointer PointerReader
	Window  WindowReader
	Power   PowerReader
}

// PointerFunc adapts a function to PointerReader.
type PointerFunc func() (Point, error)

func (f PointerFunc) ReadPointer() (Point, error) { return f() }

// WindowFunc adapts a function to WindowReader.
type WindowFunc func() (string, error)

func (f WindowFunc) ReadActiveWindowTitle() (string, error) { return f() }

// PowerFunc adapts a function to PowerReader.
type PowerFunc func() (PowerStatus, error)

func (f PowerFunc) ReadPowerStatus() (PowerStatus, error) { return f() }
