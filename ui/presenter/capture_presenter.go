package presenter

import (
	"context"

	"github.com/soocke/droidcast-go/domain/capture"
)

// CaptureModel provides enabled state access.
type CaptureModel interface {
	Enabled() bool
	SetEnabled(bool)
}

// LifecycleView updates UI elements affected by starting or stopping a session.
type LifecycleView interface {
	ConfigEditable(bool)
}

// Start begins mirroring. Idempotent while a session is running.
func (p *MirrorPresenter) Start(ctx context.Context) error {
	if p == nil {
		return nil
	}
	if p.session != nil && p.session.State() != capture.StateIdle {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := p.loop.Start(ctx)
	if err != nil {
		return err
	}
	p.session = s
	p.setEnabled(true)
	return nil
}

// Stop cancels the session and waits for the worker to exit, then clears the
// surface. Idempotent; after it returns no further frames or notifications
// from that session are produced. A session that already ended on its own
// is reaped instead, leaving the last good frame on screen.
func (p *MirrorPresenter) Stop() {
	if p == nil {
		return
	}
	p.reapSession()
	if p.session == nil {
		return
	}
	s := p.session
	s.Stop()
	p.session = nil
	p.mailbox.Clear()
	p.discardErrors()
	p.current.Release()
	p.current = nil
	p.composite()
	p.setEnabled(false)
}

// Toggle starts a stopped presenter and stops a running one.
func (p *MirrorPresenter) Toggle(ctx context.Context) error {
	if p == nil {
		return nil
	}
	if p.Running() {
		p.Stop()
		return nil
	}
	return p.Start(ctx)
}

// Close stops any session and releases the displayed frame. Used on window
// close and command exit.
func (p *MirrorPresenter) Close() {
	if p == nil {
		return
	}
	p.Stop()
	p.mailbox.Clear()
	p.current.Release()
	p.current = nil
}

// Running reports whether a session is active (Running or Stopping).
func (p *MirrorPresenter) Running() bool {
	return p != nil && p.session != nil && p.session.State() != capture.StateIdle
}

// State of the underlying capture loop.
func (p *MirrorPresenter) State() capture.State {
	if p == nil {
		return capture.StateIdle
	}
	return p.loop.State()
}

// Session returns the active session, or nil.
func (p *MirrorPresenter) Session() *capture.Session { return p.session }

func (p *MirrorPresenter) setEnabled(on bool) {
	if p.model != nil {
		p.model.SetEnabled(on)
	}
	if p.lifecycle != nil {
		p.lifecycle.ConfigEditable(!on)
	}
}
