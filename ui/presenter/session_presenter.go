package presenter

import (
	"fmt"
	"time"

	"github.com/soocke/roimask/ui/model"
)

// SessionView displays annotation progress and elapsed time.
type SessionView interface {
	SetProgress(text string)
	SetElapsed(d time.Duration)
}

// SessionPresenter formats session counters from the model to the view.
type SessionPresenter struct {
	sess *model.SessionModel
	view SessionView
	last string
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, view: view}
}

// FormatProgress renders the counters for the progress label.
func FormatProgress(p model.Progress) string {
	return fmt.Sprintf("Pair %d/%d  saved %d  skipped %d  failed %d", p.Position, p.Total, p.Saved, p.Skipped, p.Failed)
}

// Tick advances the session clock and pushes values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.view == nil {
		return
	}
	p.sess.OnTick(now)
	v := p.sess.Values()
	if text := FormatProgress(v); text != p.last {
		p.last = text
		p.view.SetProgress(text)
	}
	p.view.SetElapsed(v.Elapsed)
}
