package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It ticks the label presenters, flushes pending pane redraws and invokes a
// scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Session    *SessionPresenter
	Status     *StatusPresenter
	Annotation *AnnotationPresenter
	Schedule   func()
}

func NewLoop(sess *SessionPresenter, status *StatusPresenter, annotation *AnnotationPresenter, schedule func()) *Loop {
	return &Loop{Session: sess, Status: status, Annotation: annotation, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Status != nil {
		l.Status.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Annotation != nil {
		l.Annotation.Flush()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
