package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows how long the current mirroring session has been running
// and the total over all sessions.
type SessionStats struct {
	sessionLbl *LabelWidget
	totalLbl   *LabelWidget
}

// NewSessionStats grids both labels inside parent at (row, col) and (row, col+1).
func NewSessionStats(parent *FrameWidget, row, col int) *SessionStats {
	s := &SessionStats{sessionLbl: Label(Width(16), Anchor("w")), totalLbl: Label(Width(16), Anchor("w"))}
	Grid(s.sessionLbl, In(parent), Row(row), Column(col), Sticky("w"), Padx("0.2m"))
	Grid(s.totalLbl, In(parent), Row(row), Column(col+1), Sticky("w"), Padx("0.2m"))
	s.Set(0, 0)
	return s
}

// Set updates both labels.
func (s *SessionStats) Set(session, total time.Duration) {
	if s == nil {
		return
	}
	s.sessionLbl.Configure(Txt("Session " + clock(session)))
	s.totalLbl.Configure(Txt("Total " + clock(total)))
}

func clock(d time.Duration) string {
	sec := int(d.Seconds())
	if sec >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", sec/3600, sec/60%60, sec%60)
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}
