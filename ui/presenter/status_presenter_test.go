package presenter

import (
	"strings"
	"testing"
	"time"

	"github.com/soocke/roimask/ui/model"
)

type mockStatusView struct{ labels []string }

func (v *mockStatusView) SetStatusLabel(s string) { v.labels = append(v.labels, s) }

func TestStatusPresenter_ShowsLatestOnTick(t *testing.T) {
	v := &mockStatusView{}
	p := NewStatusPresenter(v)
	p.OnStatus("one")
	p.OnStatus("two")
	p.Tick(time.Now())
	p.Tick(time.Now())
	if len(v.labels) != 1 || v.labels[0] != "two" {
		t.Fatalf("expected single update with latest message, got %v", v.labels)
	}
	p.OnStatus("two")
	p.Tick(time.Now())
	if len(v.labels) != 1 {
		t.Fatalf("repeated message should not update the label")
	}
}

type mockSessionView struct {
	progress []string
	elapsed  time.Duration
}

func (v *mockSessionView) SetProgress(s string)       { v.progress = append(v.progress, s) }
func (v *mockSessionView) SetElapsed(d time.Duration) { v.elapsed = d }

func TestSessionPresenter_Tick(t *testing.T) {
	sess := model.NewSessionModel(4)
	v := &mockSessionView{}
	p := NewSessionPresenter(sess, v)
	base := time.Unix(100, 0)
	p.Tick(base)
	sess.Begin(1)
	sess.Record(model.OutcomeSaved)
	p.Tick(base.Add(3 * time.Second))
	p.Tick(base.Add(4 * time.Second))
	if len(v.progress) != 2 {
		t.Fatalf("progress label should update only on change, got %v", v.progress)
	}
	if !strings.Contains(v.progress[1], "Pair 1/4") || !strings.Contains(v.progress[1], "saved 1") {
		t.Fatalf("unexpected progress text %q", v.progress[1])
	}
	if v.elapsed != 4*time.Second {
		t.Fatalf("expected 4s elapsed, got %v", v.elapsed)
	}
}

func TestLoop_TickSchedulesAndFlushes(t *testing.T) {
	h := newHarness("a_001.tif")
	h.p.Start()
	scheduled := 0
	l := NewLoop(nil, nil, h.p, func() { scheduled++ })
	l.Tick()
	if scheduled != 1 || h.view.shown[PaneMovie] != 1 {
		t.Fatalf("tick should flush and reschedule: scheduled=%d shown=%v", scheduled, h.view.shown)
	}
	var nilLoop *Loop
	nilLoop.Tick()
}
