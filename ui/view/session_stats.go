package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows annotation progress and elapsed session time.
type SessionStats interface {
	SetProgress(text string)
	SetElapsed(d time.Duration)
}

type sessionStats struct {
	progressLbl *LabelWidget
	elapsedLbl  *LabelWidget
}

// NewSessionStats creates progress and elapsed labels in a grid layout.
// The progress label is placed at (row, startCol) and elapsed label at (row, startCol+1).
// If parent is nil, labels are positioned relative to the App root.
func NewSessionStats(parent *FrameWidget, row, startCol int) SessionStats {
	s := &sessionStats{progressLbl: Label(Width(44), Anchor("w")), elapsedLbl: Label(Width(14))}
	if parent != nil {
		Grid(s.progressLbl, In(parent), Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
		Grid(s.elapsedLbl, In(parent), Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	} else {
		Grid(s.progressLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
		Grid(s.elapsedLbl, Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	}
	s.progressLbl.Configure(Txt("Pair 0/0"))
	s.elapsedLbl.Configure(Txt("Session: 00:00"))
	return s
}

func (s *sessionStats) SetProgress(text string) {
	if s == nil || s.progressLbl == nil {
		return
	}
	s.progressLbl.Configure(Txt(text))
}

// SetElapsed updates the session duration display.
func (s *sessionStats) SetElapsed(d time.Duration) {
	if s == nil || s.elapsedLbl == nil {
		return
	}
	seconds := int(d.Seconds())
	min, sec := seconds/60, seconds%60
	s.elapsedLbl.Configure(Txt(fmt.Sprintf("Session: %02d:%02d", min, sec)))
}
