package capture

import (
	"errors"
	"fmt"
)

// Sentinel kinds for capture pipeline failures. Match with errors.Is.
var (
	ErrProcessStart = errors.New("capture process failed to start")
	ErrCaptureIO    = errors.New("capture output unreadable")
	ErrDecode       = errors.New("frame decode failed")
	// ErrCancelled marks a normal, unreported exit of the capture loop.
	ErrCancelled = errors.New("capture cancelled")
	// ErrSessionActive is returned by Loop.Start while a session is still running.
	ErrSessionActive = errors.New("capture session already active")
)

// Error carries the failure kind together with the operation and cause.
type Error struct {
	Kind error  // one of the Err* sentinels
	Op   string // e.g. "adb exec-out screencap"
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Fatal reports whether err ends a capture session. Device-boundary failures
// are fatal; decode failures and cancellation are not.
func Fatal(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrCancelled) || errors.Is(err, ErrDecode) {
		return false
	}
	return true
}
