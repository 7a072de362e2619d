package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const (
	// DefaultMaxOutput bounds the in-memory capture buffer (a 4K RGBA PNG is well below).
	DefaultMaxOutput = 64 << 20
	// stderr is kept only to explain failures.
	maxStderr = 4 << 10
)

// FrameSource returns one encoded still image of the device screen per call.
// Implementations block until the capture completes and keep no state across calls.
type FrameSource interface {
	Capture(ctx context.Context) ([]byte, error)
}

// FrameSourceFunc adapts a function to FrameSource.
type FrameSourceFunc func(ctx context.Context) ([]byte, error)

func (f FrameSourceFunc) Capture(ctx context.Context) ([]byte, error) { return f(ctx) }

// ADBSource captures the device screen with `adb exec-out screencap -p`.
// The zero value uses "adb" from PATH, the default device and display.
type ADBSource struct {
	Path      string        // adb executable; resolved through PATH when not absolute
	Serial    string        // optional device serial (adb -s)
	DisplayID string        // optional physical display id (screencap -d)
	Timeout   time.Duration // per-capture guard; zero waits indefinitely
	MaxOutput int           // stdout bound; zero means DefaultMaxOutput
}

// Args returns the argument list passed to the adb executable.
func (s *ADBSource) Args() []string {
	args := make([]string, 0, 7)
	if s.Serial != "" {
		args = append(args, "-s", s.Serial)
	}
	args = append(args, "exec-out", "screencap", "-p")
	if s.DisplayID != "" {
		args = append(args, "-d", s.DisplayID)
	}
	return args
}

func (s *ADBSource) path() string {
	if s.Path == "" {
		return "adb"
	}
	return s.Path
}

func (s *ADBSource) op() string {
	return s.path() + " " + strings.Join(s.Args(), " ")
}

// Capture runs one adb process and returns its stdout. The process is always
// reaped before Capture returns.
func (s *ADBSource) Capture(ctx context.Context) ([]byte, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	limit := s.MaxOutput
	if limit <= 0 {
		limit = DefaultMaxOutput
	}

	var stdout, stderr bytes.Buffer
	stdout.Grow(1 << 20)
	out := &limitedWriter{buf: &stdout, limit: limit}
	cmd := exec.CommandContext(ctx, s.path(), s.Args()...)
	cmd.Stdin = nil
	cmd.Stdout = out
	cmd.Stderr = &limitedWriter{buf: &stderr, limit: maxStderr}
	hideWindow(cmd)

	if err := cmd.Start(); err != nil {
		return nil, newError(ErrProcessStart, s.op(), err)
	}
	err := cmd.Wait()
	switch {
	case ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, newError(ErrCaptureIO, s.op(), fmt.Errorf("timed out after %v", s.Timeout))
	case err != nil:
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return nil, newError(ErrCaptureIO, s.op(), err)
	case out.truncated:
		return nil, newError(ErrCaptureIO, s.op(), fmt.Errorf("output exceeds %d bytes", limit))
	case stdout.Len() < minEncodedSize:
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "no image data"
		}
		return nil, newError(ErrCaptureIO, s.op(), fmt.Errorf("short output (%d bytes): %s", stdout.Len(), msg))
	}
	return stdout.Bytes(), nil
}

// limitedWriter wraps a buffer with a size limit
type limitedWriter struct {
	buf       *bytes.Buffer
	limit     int
	written   int
	truncated bool
}

func (w *limitedWriter) Write(p []byte) (n int, err error) {
	total := len(p)
	if w.written >= w.limit {
		// Discard additional data but don't error
		if total > 0 {
			w.truncated = true
		}
		return total, nil
	}
	remaining := w.limit - w.written
	if len(p) > remaining {
		w.truncated = true
		p = p[:remaining]
	}
	n, err = w.buf.Write(p)
	w.written += n
	if err != nil {
		return n, err
	}
	return total, nil
}
