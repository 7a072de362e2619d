package presenter

import (
	"fmt"
	"image"
	"log/slog"
	"sync/atomic"

	"github.com/dustin/go-humanize"

	"github.com/soocke/droidcast-go/domain/capture"
	"github.com/soocke/droidcast-go/ui/surface"
)

const pendingErrors = 8

// MirrorView is the visible surface the presenter renders into.
type MirrorView interface {
	surface.Target
	// SurfaceSize returns the current visible width and height.
	SurfaceSize() (w, h int)
}

// Notifier shows an error to the operator. Called on the UI thread; may block
// until the operator acknowledges it.
type Notifier interface {
	Notify(err error)
}

// MirrorDeps groups the collaborators of a MirrorPresenter.
type MirrorDeps struct {
	Source    capture.FrameSource
	Loop      capture.LoopOptions
	View      MirrorView
	Surface   *surface.DoubleBuffer
	Notifier  Notifier
	Model     CaptureModel  // optional
	Lifecycle LifecycleView // optional
	Logger    *slog.Logger
}

// MirrorStats is a point-in-time summary for the status line.
type MirrorStats struct {
	Presented      uint64
	Dropped        uint64
	DecodeFailures uint64
	LastSequence   uint64
	LastSize       int
	Width, Height  int
	Capture        capture.CaptureStats
}

// MirrorPresenter owns the capture session, the currently displayed frame and
// the double buffer. Deliver and Report are called from the capture worker;
// everything else runs on the UI thread, which is the only writer of the
// frame and the surface.
type MirrorPresenter struct {
	loop      *capture.Loop
	view      MirrorView
	surface   *surface.DoubleBuffer
	notifier  Notifier
	model     CaptureModel
	lifecycle LifecycleView
	logger    *slog.Logger

	mailbox *Mailbox
	errs    chan error

	// UI thread only
	draining bool
	session  *capture.Session
	current  *capture.Frame
	lastW    int
	lastH    int
	lastSize int

	presented   atomic.Uint64
	decodeFails atomic.Uint64
	lastSeq     atomic.Uint64
	lostErrors  atomic.Uint64
}

// NewMirrorPresenter wires a capture loop whose frames end up on deps.View.
func NewMirrorPresenter(deps MirrorDeps) *MirrorPresenter {
	p := &MirrorPresenter{
		view:      deps.View,
		surface:   deps.Surface,
		notifier:  deps.Notifier,
		model:     deps.Model,
		lifecycle: deps.Lifecycle,
		logger:    deps.Logger,
		mailbox:   NewMailbox(),
		errs:      make(chan error, pendingErrors),
	}
	p.loop = capture.NewLoop(deps.Source, p, p, deps.Logger, deps.Loop)
	return p
}

// Reconfigure swaps the frame source and loop options. It fails with
// capture.ErrSessionActive while mirroring; settings are only editable when
// stopped.
func (p *MirrorPresenter) Reconfigure(source capture.FrameSource, opts capture.LoopOptions) error {
	if p.Running() {
		return capture.ErrSessionActive
	}
	p.loop = capture.NewLoop(source, p, p, p.logger, opts)
	return nil
}

// Deliver implements capture.Sink. Worker goroutine.
func (p *MirrorPresenter) Deliver(d capture.Delivery) {
	p.mailbox.Put(d)
}

// Report implements capture.Reporter. Worker goroutine; the notification is
// shown on the next Drain.
func (p *MirrorPresenter) Report(err error) {
	if err == nil {
		return
	}
	select {
	case p.errs <- err:
	default:
		p.lostErrors.Add(1)
		if p.logger != nil {
			p.logger.Warn("notification queue full", "error", err)
		}
	}
}

// Drain runs on the UI thread: it shows pending notifications, notices a
// session that ended by itself, and presents the latest delivered frame.
func (p *MirrorPresenter) Drain() {
	// A blocking notifier may pump the event loop and re-enter Drain.
	if p == nil || p.draining {
		return
	}
	p.draining = true
	defer func() { p.draining = false }()
	p.flushErrors()
	p.reapSession()

	d, ok := p.mailbox.Take()
	if !ok {
		if w, h := p.size(); p.current != nil && (w != p.lastW || h != p.lastH) {
			p.composite()
		}
		return
	}
	frame := d.Frame
	if frame == nil {
		f, err := capture.DecodeFrame(d.Raw)
		if err != nil {
			// frame-local: skip it, the loop keeps running
			p.decodeFails.Add(1)
			if p.logger != nil {
				p.logger.Warn("frame dropped", "sequence", d.Sequence, "error", err)
			}
			p.notify(err)
			return
		}
		frame = f
	}
	prev := p.current
	p.current = frame
	p.lastSize = d.Size
	p.lastSeq.Store(d.Sequence)
	prev.Release()
	p.composite()
	p.presented.Add(1)
}

// Redraw re-composites the current frame, e.g. after the window was resized.
func (p *MirrorPresenter) Redraw() {
	if p == nil || p.current == nil {
		return
	}
	p.composite()
}

// Current returns the displayed frame (nil before the first one).
func (p *MirrorPresenter) Current() *capture.Frame { return p.current }

// LostNotifications counts reports dropped because the queue was full.
func (p *MirrorPresenter) LostNotifications() uint64 { return p.lostErrors.Load() }

// Stats returns presentation counters together with the capture loop's stats.
func (p *MirrorPresenter) Stats() MirrorStats {
	st := MirrorStats{
		Presented:      p.presented.Load(),
		Dropped:        p.mailbox.Dropped(),
		DecodeFailures: p.decodeFails.Load(),
		LastSequence:   p.lastSeq.Load(),
		LastSize:       p.lastSize,
		Capture:        p.loop.Stats(),
	}
	if p.current != nil {
		st.Width, st.Height = p.current.Width(), p.current.Height()
	}
	return st
}

// Status formats Stats for a one-line status display.
func (p *MirrorPresenter) Status() string {
	st := p.Stats()
	state := p.State().String()
	if st.Presented == 0 {
		return fmt.Sprintf("%s | no frames yet", state)
	}
	return fmt.Sprintf("%s | %dx%d | frames %d (dropped %d) | last %s",
		state, st.Width, st.Height, st.Presented, st.Dropped, humanize.IBytes(uint64(st.LastSize)))
}

func (p *MirrorPresenter) composite() {
	w, h := p.size()
	p.lastW, p.lastH = w, h
	var src image.Image
	if img := p.current.Image(); img != nil {
		src = img
	}
	p.surface.Render(p.view, src, w, h)
}

func (p *MirrorPresenter) size() (int, int) {
	if p.view == nil {
		size := p.surface.MaxSize()
		return size.X, size.Y
	}
	return p.view.SurfaceSize()
}

func (p *MirrorPresenter) flushErrors() {
	for {
		select {
		case err := <-p.errs:
			p.notify(err)
		default:
			return
		}
	}
}

// discardErrors drops reports queued by a session that was stopped on purpose.
func (p *MirrorPresenter) discardErrors() {
	for {
		select {
		case err := <-p.errs:
			if p.logger != nil {
				p.logger.Debug("notification discarded after stop", "error", err)
			}
		default:
			return
		}
	}
}

func (p *MirrorPresenter) notify(err error) {
	if p.notifier != nil {
		p.notifier.Notify(err)
	}
}

// reapSession clears a session whose worker exited on its own (fatal error or
// parent cancellation).
func (p *MirrorPresenter) reapSession() {
	if p.session == nil || p.session.State() != capture.StateIdle {
		return
	}
	s := p.session
	p.session = nil
	if p.logger != nil && s.Err() != nil {
		p.logger.Info("mirroring halted", "session", s.ID, "error", s.Err())
	}
	p.setEnabled(false)
}

var _ capture.Sink = (*MirrorPresenter)(nil)
var _ capture.Reporter = (*MirrorPresenter)(nil)
