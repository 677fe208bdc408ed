package model

import (
	"time"
)

// Outcome is how one pair left the annotation session.
type Outcome int

const (
	OutcomeSaved Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

// Progress is a snapshot of the session counters.
type Progress struct {
	Position int // 1-based pair being shown, 0 before the first
	Total    int
	Saved    int
	Skipped  int
	Failed   int
	Elapsed  time.Duration
}

// SessionModel tracks how far an annotation run has got and how long it has
// been open. It is decoupled from the UI; presenters poll Values() and
// update views. The zero value is ready to use.
type SessionModel struct {
	total    int
	position int
	saved    int
	skipped  int
	failed   int
	started  time.Time
	elapsed  time.Duration
}

// NewSessionModel returns a session over total pairs.
func NewSessionModel(total int) *SessionModel { return &SessionModel{total: total} }

// Begin marks pair number pos (1-based) as shown.
func (m *SessionModel) Begin(pos int) {
	if m == nil {
		return
	}
	m.position = pos
}

// Record counts the outcome of the current pair.
func (m *SessionModel) Record(o Outcome) {
	if m == nil {
		return
	}
	switch o {
	case OutcomeSaved:
		m.saved++
	case OutcomeSkipped:
		m.skipped++
	case OutcomeFailed:
		m.failed++
	}
}

// OnTick advances the elapsed time. The first call starts the clock.
func (m *SessionModel) OnTick(now time.Time) {
	if m == nil {
		return
	}
	if m.started.IsZero() {
		m.started = now
	}
	m.elapsed = now.Sub(m.started)
}

// Values returns the current counters.
func (m *SessionModel) Values() Progress {
	if m == nil {
		return Progress{}
	}
	return Progress{
		Position: m.position,
		Total:    m.total,
		Saved:    m.saved,
		Skipped:  m.skipped,
		Failed:   m.failed,
		Elapsed:  m.elapsed,
	}
}
