package presenter

import (
	"time"

	"github.com/soocke/droidcast-go/ui/model"
)

// CaptureEnabledModel reports whether mirroring is enabled.
type CaptureEnabledModel interface{ Enabled() bool }

// StatusView displays session durations and the one-line mirror status.
type StatusView interface {
	SetSession(session, total time.Duration)
	SetStatus(text string)
}

// StatusSource produces the status line, typically MirrorPresenter.Status.
type StatusSource interface{ Status() string }

// SessionPresenter pushes session durations and mirror status to the view.
type SessionPresenter struct {
	sess   *model.SessionModel
	cap    CaptureEnabledModel
	status StatusSource
	view   StatusView
	last   string
}

func NewSessionPresenter(sess *model.SessionModel, cap CaptureEnabledModel, status StatusSource, view StatusView) *SessionPresenter {
	return &SessionPresenter{sess: sess, cap: cap, status: status, view: view}
}

// Tick advances the session model and refreshes the view. The status label is
// only reconfigured when its text changes.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.cap == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.cap.Enabled(), now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
	if p.status == nil {
		return
	}
	if text := p.status.Status(); text != p.last {
		p.last = text
		p.view.SetStatus(text)
	}
}
