package presenter

import (
	"image/color"
	"testing"
	"time"

	"github.com/soocke/droidcast-go/domain/capture"
	"github.com/soocke/droidcast-go/ui/model"
)

type mockStatusView struct {
	session, total time.Duration
	status         []string
}

func (v *mockStatusView) SetSession(s, t time.Duration) { v.session, v.total = s, t }
func (v *mockStatusView) SetStatus(text string)         { v.status = append(v.status, text) }

func TestLoop_TickDrainsAndReschedules(t *testing.T) {
	f := newFixture(nil, capture.LoopOptions{})
	sv := &mockStatusView{}
	sess := NewSessionPresenter(model.NewSessionModel(), f.model, f.p, sv)
	scheduled := 0
	l := NewLoop(f.p, sess, func() { scheduled++ })

	f.p.Deliver(delivery(t, 1, color.RGBA{7, 7, 7, 0xff}))
	l.Tick()
	if f.p.Stats().Presented != 1 || scheduled != 1 {
		t.Fatalf("presented=%d scheduled=%d", f.p.Stats().Presented, scheduled)
	}
	l.Tick()
	if scheduled != 2 {
		t.Fatalf("scheduled=%d", scheduled)
	}
	if len(sv.status) != 1 {
		t.Fatalf("unchanged status should not be pushed twice: %q", sv.status)
	}
}

func TestLoop_NilSafe(t *testing.T) {
	var l *Loop
	l.Tick()
	(&Loop{}).Tick()
}
