package model

import (
	"time"
)

// SessionModel tracks how long the current mirroring session has been running
// and the accumulated time over all sessions. Presenters poll Values(). The
// zero value is ready to use.
type SessionModel struct {
	active      bool
	started     time.Time
	current     time.Duration
	accumulated time.Duration
	sessions    int
}

func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick folds the current mirroring flag in at time now.
func (m *SessionModel) OnTick(mirroring bool, now time.Time) {
	if m == nil {
		return
	}
	switch {
	case mirroring && !m.active:
		m.active = true
		m.started = now
		m.current = 0
		m.sessions++
	case mirroring:
		m.current = now.Sub(m.started)
	case m.active:
		m.current = now.Sub(m.started)
		m.accumulated += m.current
		m.active = false
	}
}

// Values returns the current (or last) session duration and the total,
// including a running session.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	session = m.current
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}

// Sessions counts sessions seen so far.
func (m *SessionModel) Sessions() int {
	if m == nil {
		return 0
	}
	return m.sessions
}
