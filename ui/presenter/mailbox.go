package presenter

import (
	"sync/atomic"

	"github.com/soocke/droidcast-go/domain/capture"
)

// Mailbox hands deliveries from the capture worker to the UI thread through a
// channel of capacity one. A newer delivery replaces one that was not picked
// up yet; the replaced frame is released.
type Mailbox struct {
	ch      chan capture.Delivery
	dropped atomic.Uint64
}

func NewMailbox() *Mailbox {
	return &Mailbox{ch: make(chan capture.Delivery, 1)}
}

// Put never blocks. Intended for a single producer.
func (m *Mailbox) Put(d capture.Delivery) {
	for {
		select {
		case m.ch <- d:
			return
		default:
		}
		select {
		case old := <-m.ch:
			old.Release()
			m.dropped.Add(1)
		default:
		}
	}
}

// Take returns the pending delivery, if any, without blocking.
func (m *Mailbox) Take() (capture.Delivery, bool) {
	select {
	case d := <-m.ch:
		return d, true
	default:
		return capture.Delivery{}, false
	}
}

// Clear releases a pending delivery.
func (m *Mailbox) Clear() {
	if d, ok := m.Take(); ok {
		d.Release()
	}
}

// Dropped counts deliveries overwritten before the UI picked them up.
func (m *Mailbox) Dropped() uint64 { return m.dropped.Load() }
