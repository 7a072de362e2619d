package capture

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	// DefaultInterval is the fixed sleep between captures.
	DefaultInterval         = 50 * time.Millisecond
	captureStatsLogInterval = 5 * time.Second
)

// LoopOptions tune the capture loop. The zero value captures every 50ms and
// decodes on the worker.
type LoopOptions struct {
	Interval time.Duration
	// DeferDecode hands raw bytes to the sink; decoding happens on the UI side.
	DeferDecode bool
	// DecodeErrorsFatal ends the session on a bad frame instead of skipping it.
	DecodeErrorsFatal bool
}

// Loop repeatedly pulls frames from a FrameSource at a bounded rate, decodes
// them and hands them to a Sink. At most one Session runs at a time.
type Loop struct {
	source   FrameSource
	sink     Sink
	reporter Reporter
	logger   *slog.Logger
	opts     LoopOptions

	mu     sync.Mutex
	active *Session

	captures     atomic.Uint64
	failures     atomic.Uint64
	decodeFails  atomic.Uint64
	bytes        atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
	lastCapture  atomic.Int64
}

// NewLoop constructs a capture loop. reporter and logger may be nil.
func NewLoop(source FrameSource, sink Sink, reporter Reporter, logger *slog.Logger, opts LoopOptions) *Loop {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Loop{source: source, sink: sink, reporter: reporter, logger: logger, opts: opts}
}

// Start transitions Idle -> Running and spawns the worker. It fails with
// ErrSessionActive while a previous session has not fully exited.
func (l *Loop) Start(ctx context.Context) (*Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active != nil && l.active.State() != StateIdle {
		return nil, ErrSessionActive
	}
	s := newSession(ctx)
	l.active = s
	if l.logger != nil {
		l.logger.Info("capture session started", "session", s.ID, "interval", l.opts.Interval)
	}
	go l.run(s)
	return s, nil
}

// Stop stops the active session, if any, and waits for its worker to exit.
func (l *Loop) Stop() {
	l.mu.Lock()
	s := l.active
	l.mu.Unlock()
	s.Stop()
}

// State reports the state of the most recent session (Idle when none).
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active.State()
}

// Stats returns a snapshot of the loop's counters across all sessions.
func (l *Loop) Stats() CaptureStats {
	captures := l.captures.Load()
	total := l.captureNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	var last time.Time
	if ns := l.lastCapture.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}
	return CaptureStats{
		Captures:         captures,
		Failures:         l.failures.Load(),
		DecodeFailures:   l.decodeFails.Load(),
		Bytes:            l.bytes.Load(),
		AvgCapture:       avg,
		AvgCaptureMicros: avgMicros,
		LastCapture:      last,
		Sequence:         l.sequence.Load(),
	}
}

func (l *Loop) run(s *Session) {
	var fatal error
	defer func() {
		s.finish(fatal)
		if l.logger != nil {
			if fatal != nil {
				l.logger.Error("capture session ended", "session", s.ID, "error", fatal)
			} else {
				l.logger.Info("capture session stopped", "session", s.ID)
			}
		}
	}()

	logTicker := time.NewTicker(captureStatsLogInterval)
	defer logTicker.Stop()

	// An in-flight capture is never aborted by Stop; only the per-capture
	// timeout of the source can cut it short.
	captureCtx := context.WithoutCancel(s.ctx)

	for {
		if s.cancelled() {
			return
		}
		start := time.Now()
		data, err := l.source.Capture(captureCtx)
		if s.cancelled() {
			return
		}
		if errors.Is(err, ErrCancelled) {
			return
		}
		if err != nil {
			l.failures.Add(1)
			fatal = err
			l.report(err)
			return
		}
		now := time.Now()
		l.captureNanos.Add(uint64(now.Sub(start).Nanoseconds()))
		l.captures.Add(1)
		l.bytes.Add(uint64(len(data)))
		l.lastCapture.Store(now.UnixNano())
		seq := l.sequence.Add(1)

		d := Delivery{Sequence: seq, CapturedAt: now, Size: len(data)}
		if l.opts.DeferDecode {
			d.Raw = data
		} else {
			frame, err := DecodeFrame(data)
			if err != nil {
				l.decodeFails.Add(1)
				l.report(err)
				if l.opts.DecodeErrorsFatal {
					fatal = err
					return
				}
			} else {
				d.Frame = frame.stamp(seq, now)
			}
		}
		if d.Frame != nil || d.Raw != nil {
			l.sink.Deliver(d)
		}

		select {
		case <-logTicker.C:
			l.logStats()
		default:
		}

		if !s.wait(l.opts.Interval) {
			return
		}
	}
}

func (l *Loop) report(err error) {
	if l.reporter != nil {
		l.reporter.Report(err)
	}
}

func (l *Loop) logStats() {
	if l.logger == nil {
		return
	}
	stats := l.Stats()
	l.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"failures", stats.Failures,
		"decode_failures", stats.DecodeFailures,
		"received", humanize.IBytes(stats.Bytes),
		"avg_capture", stats.AvgCapture,
	)
}
