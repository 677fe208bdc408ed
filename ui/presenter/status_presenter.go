package presenter

import "time"

// StatusView sets the status label in the view.
type StatusView interface{ SetStatusLabel(string) }

// StatusPresenter queues status messages and reflects the latest one on the
// next Tick, so a burst of messages inside one event costs one label update.
type StatusPresenter struct {
	view    StatusView
	latest  string
	pending []string
}

func NewStatusPresenter(view StatusView) *StatusPresenter {
	return &StatusPresenter{view: view}
}

// OnStatus queues msg.
func (p *StatusPresenter) OnStatus(msg string) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, msg)
}

// Tick updates the view with the most recent queued message and clears the queue.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	if len(p.pending) > 0 {
		last := p.pending[len(p.pending)-1]
		p.pending = p.pending[:0]
		if last != p.latest {
			p.latest = last
			p.view.SetStatusLabel(last)
		}
	}
}
