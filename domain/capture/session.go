package capture

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// State of a capture session.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// Session is one running capture lifecycle: a cancellation signal plus the
// worker goroutine it controls. Obtain one from Loop.Start and end it with Stop.
type Session struct {
	ID        string
	StartedAt time.Time

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	state  atomic.Int32
	err    error // fatal error; written by the worker before done is closed
}

func newSession(parent context.Context) *Session {
	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	s.state.Store(int32(StateRunning))
	return s
}

// State reports Running, Stopping or Idle (worker exited).
func (s *Session) State() State {
	if s == nil {
		return StateIdle
	}
	return State(s.state.Load())
}

// Stop requests cancellation and blocks until the worker goroutine has exited.
// After Stop returns no capture, decode or delivery is in flight. Calling Stop
// again, or after the session ended by itself, returns immediately.
// Stop must not be called from the worker (Sink or Reporter callbacks).
func (s *Session) Stop() {
	if s == nil {
		return
	}
	s.state.CompareAndSwap(int32(StateRunning), int32(StateStopping))
	s.cancel()
	<-s.done
}

// Done is closed once the worker has exited.
func (s *Session) Done() <-chan struct{} { return s.done }

// Err returns the error that ended the session, or nil when it was stopped
// (or is still running).
func (s *Session) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

func (s *Session) cancelled() bool { return s.ctx.Err() != nil }

// wait sleeps for d, returning false early if the session is cancelled.
func (s *Session) wait(d time.Duration) bool {
	if d <= 0 {
		return !s.cancelled()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-s.ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (s *Session) finish(err error) {
	s.err = err
	s.state.Store(int32(StateIdle))
	s.cancel()
	close(s.done)
}
