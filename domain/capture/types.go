package capture

import "time"

// Delivery is one unit handed from the capture worker to the presenter.
// Exactly one of Frame or Raw is set: Raw when decoding is left to the UI side.
type Delivery struct {
	Frame      *Frame
	Raw        []byte
	Sequence   uint64
	CapturedAt time.Time
	Size       int // encoded bytes received from the source
}

// Release drops the pooled pixels of an undisplayed delivery.
func (d Delivery) Release() {
	if d.Frame != nil {
		d.Frame.Release()
	}
}

// Sink receives deliveries from the worker goroutine. Deliver must not block
// on UI work and must not call Session.Stop.
type Sink interface {
	Deliver(Delivery)
}

// Reporter surfaces failures to the operator. It is called from the worker
// goroutine and must not block on the UI thread.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(err error)

func (f ReporterFunc) Report(err error) { f(err) }
