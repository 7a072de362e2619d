package presenter

import "time"

// Loop drives the UI-thread side of mirroring: each Tick drains the mirror
// presenter, refreshes the status line and asks the scheduler for the next
// tick. The zero value is usable (methods are nil-safe).
type Loop struct {
	Mirror   *MirrorPresenter
	Session  *SessionPresenter
	Schedule func()
}

func NewLoop(mirror *MirrorPresenter, sess *SessionPresenter, schedule func()) *Loop {
	return &Loop{Mirror: mirror, Session: sess, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	l.Mirror.Drain()
	if l.Session != nil {
		l.Session.Tick(time.Now())
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
