package model

import (
	"sync/atomic"
	"time"
)

// CaptureModel tracks whether mirroring is enabled and how often it was
// switched on. The zero value is disabled and usable. Atomic because the
// ebiten backend reads it from its own goroutine.
type CaptureModel struct {
	enabled   atomic.Bool
	starts    atomic.Uint64
	changedAt atomic.Int64
}

func (m *CaptureModel) Enabled() bool {
	if m == nil {
		return false
	}
	return m.enabled.Load()
}

// SetEnabled stores the flag; repeated values are ignored.
func (m *CaptureModel) SetEnabled(b bool) {
	if m == nil || !m.enabled.CompareAndSwap(!b, b) {
		return
	}
	if b {
		m.starts.Add(1)
	}
	m.changedAt.Store(time.Now().UnixNano())
}

// Starts counts off->on transitions.
func (m *CaptureModel) Starts() uint64 {
	if m == nil {
		return 0
	}
	return m.starts.Load()
}

// ChangedAt is the time of the last transition (zero if none).
func (m *CaptureModel) ChangedAt() time.Time {
	if m == nil {
		return time.Time{}
	}
	ns := m.changedAt.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}
