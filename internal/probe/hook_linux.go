//go:build linux

package probe

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/mutker/pcadapter/internal/errors"
	"github.com/holoplot/go-evdev"
)

// DefaultInputGlob matches the evdev character devices.
const DefaultInputGlob = "/dev/input/event*"

// eventSource is the part of *evdev.InputDevice the hook reads from.
type eventSource interface {
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

// EvdevHook reports key presses and pointer motion read from evdev devices.
// Reading them usually requires membership of the input group.
type EvdevHook struct {
	pattern string
	open    func(path string) (eventSource, error)
}

func NewInputHook() InputHook {
	return NewEvdevHook(DefaultInputGlob)
}

// NewEvdevHook returns a hook reading every device matching pattern.
func NewEvdevHook(pattern string) *EvdevHook {
	return &EvdevHook{pattern: pattern, open: openDevice}
}

func openDevice(path string) (eventSource, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, err
	}

	return dev, nil
}

func (h *EvdevHook) Subscribe(fn func(at time.Time)) (Unsubscribe, error) {
	paths, err := filepath.Glob(h.pattern)
	if err != nil {
		return nil, errors.New().Wrap(ErrHookFailed, &OpError{Op: "Subscribe", Err: err})
	}

	var devices []eventSource
	var openErr error
	for _, p := range paths {
		dev, err := h.open(p)
		if err != nil {
			openErr = errors.Join(openErr, err)
			continue
		}
		devices = append(devices, dev)
	}
	if len(devices) == 0 {
		if openErr == nil {
			openErr = os.ErrNotExist
		}
		return nil, errors.New().Wrap(ErrHookFailed, &OpError{Op: "Subscribe", Err: openErr})
	}

	var wg sync.WaitGroup
	for _, dev := range devices {
		wg.Add(1)
		go func(dev eventSource) {
			defer wg.Done()
			readEvents(dev, fn)
		}(dev)
	}

	var once sync.Once
	return func() error {
		var err error
		once.Do(func() {
			// Closing a device unblocks its pending ReadOne.
			for _, dev := range devices {
				err = errors.Join(err, dev.Close())
			}
			wg.Wait()
		})
		return err
	}, nil
}

func readEvents(dev eventSource, fn func(at time.Time)) {
	for {
		ev, err := dev.ReadOne()
		if err != nil {
			return
		}
		if isActivity(ev) {
			fn(time.Now())
		}
	}
}

// isActivity reports key presses and pointer motion; key releases and
// sync markers are ignored.
func isActivity(ev *evdev.InputEvent) bool {
	switch ev.Type {
	case evdev.EV_KEY:
		return ev.Value != 0
	case evdev.EV_REL, evdev.EV_ABS:
		return true
	default:
		return false
	}
}
