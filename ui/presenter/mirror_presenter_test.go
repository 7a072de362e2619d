package presenter

import (
	"errors"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/soocke/droidcast-go/domain/capture"
)

func delivery(t *testing.T, seq uint64, c color.RGBA) capture.Delivery {
	t.Helper()
	data := solidPNG(4, 4, c)
	f, err := capture.DecodeFrame(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return capture.Delivery{Frame: f, Sequence: seq, CapturedAt: time.Now(), Size: len(data)}
}

func TestDrain_PresentsInDeliveryOrder(t *testing.T) {
	f := newFixture(nil, capture.LoopOptions{})
	p := f.p
	colors := []color.RGBA{
		{0xff, 0, 0, 0xff},
		{0, 0xff, 0, 0xff},
		{0, 0, 0xff, 0xff},
	}
	var prev *capture.Frame
	for i, c := range colors {
		d := delivery(t, uint64(i+1), c)
		p.Deliver(d)
		p.Drain()
		if got := p.Stats().LastSequence; got != uint64(i+1) {
			t.Fatalf("presented sequence %d, want %d", got, i+1)
		}
		if f.view.last != c {
			t.Fatalf("frame %d: centre=%v want %v", i+1, f.view.last, c)
		}
		if prev != nil && prev.Image() != nil {
			t.Fatalf("frame %d was not released after being replaced", i)
		}
		prev = d.Frame
	}
	if st := p.Stats(); st.Presented != 3 || st.Dropped != 0 || f.view.blits != 3 {
		t.Fatalf("stats=%+v blits=%d", st, f.view.blits)
	}
	p.Drain()
	if f.view.blits != 3 {
		t.Fatalf("drain without a delivery must not duplicate a frame")
	}
}

func TestDrain_LatestFrameWins(t *testing.T) {
	f := newFixture(nil, capture.LoopOptions{})
	p := f.p
	d1 := delivery(t, 1, color.RGBA{1, 1, 1, 0xff})
	d2 := delivery(t, 2, color.RGBA{2, 2, 2, 0xff})
	d3 := delivery(t, 3, color.RGBA{3, 3, 3, 0xff})
	p.Deliver(d1)
	p.Deliver(d2)
	p.Deliver(d3)
	p.Drain()

	st := p.Stats()
	if st.Presented != 1 || st.LastSequence != 3 || st.Dropped != 2 {
		t.Fatalf("stats=%+v", st)
	}
	if d1.Frame.Image() != nil || d2.Frame.Image() != nil {
		t.Fatalf("superseded frames should be released")
	}
	if d3.Frame.Image() == nil {
		t.Fatalf("displayed frame must stay alive")
	}
}

func TestDrain_RawDecodeFailureIsLocal(t *testing.T) {
	f := newFixture(nil, capture.LoopOptions{})
	p := f.p
	p.Deliver(capture.Delivery{Raw: []byte(strings.Repeat("garbage!", 8)), Sequence: 1, Size: 64})
	p.Drain()
	if errs := f.notifier.all(); len(errs) != 1 || !errors.Is(errs[0], capture.ErrDecode) {
		t.Fatalf("expected decode notification, got %v", errs)
	}
	if p.Stats().Presented != 0 || p.Stats().DecodeFailures != 1 {
		t.Fatalf("stats=%+v", p.Stats())
	}

	raw := solidPNG(3, 3, color.RGBA{9, 9, 9, 0xff})
	p.Deliver(capture.Delivery{Raw: raw, Sequence: 2, Size: len(raw)})
	p.Drain()
	if st := p.Stats(); st.Presented != 1 || st.LastSequence != 2 || st.Width != 3 {
		t.Fatalf("valid raw frame not presented: %+v", st)
	}
}

func TestDrain_RecompositesOnResize(t *testing.T) {
	f := newFixture(nil, capture.LoopOptions{})
	p := f.p
	p.Deliver(delivery(t, 1, color.RGBA{5, 5, 5, 0xff}))
	p.Drain()
	f.view.w, f.view.h = 40, 30
	p.Drain()
	if f.view.blits != 2 || f.view.size.X != 40 || f.view.size.Y != 30 {
		t.Fatalf("resize not picked up: blits=%d size=%v", f.view.blits, f.view.size)
	}
	p.Redraw()
	if f.view.blits != 3 {
		t.Fatalf("redraw should blit, blits=%d", f.view.blits)
	}
}

func TestReport_QueueBounded(t *testing.T) {
	f := newFixture(nil, capture.LoopOptions{})
	p := f.p
	for i := 0; i < pendingErrors+3; i++ {
		p.Report(errors.New("boom"))
	}
	p.Report(nil)
	if p.LostNotifications() != 3 {
		t.Fatalf("lost=%d", p.LostNotifications())
	}
	p.Drain()
	if n := len(f.notifier.all()); n != pendingErrors {
		t.Fatalf("notified %d, want %d", n, pendingErrors)
	}
}

func TestStatus(t *testing.T) {
	f := newFixture(nil, capture.LoopOptions{})
	p := f.p
	if s := p.Status(); !strings.Contains(s, "idle") || !strings.Contains(s, "no frames") {
		t.Fatalf("status=%q", s)
	}
	p.Deliver(delivery(t, 1, color.RGBA{5, 5, 5, 0xff}))
	p.Drain()
	if s := p.Status(); !strings.Contains(s, "4x4") || !strings.Contains(s, "frames 1") {
		t.Fatalf("status=%q", s)
	}
}
