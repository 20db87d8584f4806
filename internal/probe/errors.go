package probe

import (
	"fmt"
	"time"

	"codeberg.org/mutker/pcadapter/internal/errors"
)

const (
	ErrHookFailed = errors.ErrorCode("probe_hook_failed")
)

// OpError is a probe failure tagged with the native operation that failed.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Operation returns the failing operation recorded in err, or fallback.
func Operation(err error, fallback string) string {
	var opErr *OpError
	if errors.As(err, &opErr) && opErr.Op != "" {
		return opErr.Op
	}

	return fallback
}

type unsupported struct{}

func (unsupported) ReadPointer() (Point, error) {
	return Point{}, &OpError{Op: "ReadPointer", Err: errors.ErrUnsupported}
}

func (unsupported) ReadActiveWindowTitle() (string, error) {
	return "", &OpError{Op: "ReadActiveWindowTitle", Err: errors.ErrUnsupported}
}

func (unsupported) ReadPowerStatus() (PowerStatus, error) {
	return PowerStatus{}, &OpError{Op: "ReadPowerStatus", Err: errors.ErrUnsupported}
}

func (unsupported) Subscribe(func(time.Time)) (Unsubscribe, error) {
	return nil, errors.New().Wrap(ErrHookFailed, &OpError{Op: "Subscribe", Err: errors.ErrUnsupported})
}
