//go:build windows

package probe

import (
	"runtime"
	"sync"
	"time"
	"unsafe"

	"codeberg.org/mutker/pcadapter/internal/errors"
	"golang.org/x/sys/windows"
)

const (
	whKeyboardLL = 13
	wmQuit       = 0x0012
)

var (
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
)

type msg struct {
	HWnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      point
}

// keyboardHook installs a low-level keyboard hook. Low-level hooks are
// dispatched through the message queue of the installing thread, so the
// hook owns a locked OS thread running a GetMessage loop.
type keyboardHook struct{}

func NewInputHook() InputHook {
	return keyboardHook{}
}

func (keyboardHook) Subscribe(fn func(at time.Time)) (Unsubscribe, error) {
	type started struct {
		tid uint32
		err error
	}
	ready := make(chan started, 1)
	done := make(chan struct{})

	go func() {
		defer close(done)
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		cb := windows.NewCallback(func(code int, wParam, lParam uintptr) uintptr {
			if code >= 0 {
				fn(time.Now())
			}
			r, _, _ := procCallNextHookEx.Call(0, uintptr(code), wParam, lParam)
			return r
		})

		hook, _, err := procSetWindowsHookExW.Call(whKeyboardLL, cb, 0, 0)
		if hook == 0 {
			ready <- started{err: &OpError{Op: "SetWindowsHookExW", Err: err}}
			return
		}
		defer procUnhookWindowsHookEx.Call(hook) //nolint:errcheck

		ready <- started{tid: windows.GetCurrentThreadId()}

		var m msg
		for {
			r, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
			if int32(r) <= 0 {
				return
			}
		}
	}()

	s := <-ready
	if s.err != nil {
		return nil, errors.New().Wrap(ErrHookFailed, s.err)
	}

	var once sync.Once
	return func() error {
		var err error
		once.Do(func() {
			r, _, callErr := procPostThreadMessageW.Call(uintptr(s.tid), wmQuit, 0, 0)
			if r == 0 {
				err = errors.New().Wrap(ErrHookFailed, &OpError{Op: "PostThreadMessageW", Err: callErr})
				return
			}
			<-done
		})
		return err
	}, nil
}
