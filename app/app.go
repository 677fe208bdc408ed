package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/roimask/config"
	"github.com/soocke/roimask/debug"
	"github.com/soocke/roimask/domain/pairing"
	"github.com/soocke/roimask/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	tick          = 50 * time.Millisecond
	debugInterval = 5 * time.Second
)

type app struct {
	c       *AppContainer
	title   string
	afterID string
	stop    chan struct{}
	exited  bool
}

// NewApp prepares the annotation window for pairs. Nothing is shown until Start.
func NewApp(title string, cfg *config.Config, pairs []pairing.Pair, logger *slog.Logger) *app {
	return &app{
		c:     BuildContainer(cfg, pairs, logger),
		title: title,
		stop:  make(chan struct{}),
	}
}

// Start builds the window, shows the first pair and blocks in the Tk event
// loop until every pair is handled or the window is closed.
func (a *app) Start() {
	c := a.c
	theme.SetDark(c.Config.DarkMode)
	App.WmTitle(a.title)
	size := c.Config.Annotate.ViewSize
	WmGeometry(App, fmt.Sprintf("%dx%d+80+60", 2*size+40, size+260))
	WmProtocol(App, "WM_DELETE_WINDOW", func() {
		// closing the window skips the pair on screen and ends the run
		c.AnnotationPresenter.Close()
		a.exitHandler()
	})

	c.RootView.Build(c.Handlers())
	c.AnnotationPresenter.OnDone(a.exitHandler)

	if c.Config.Debug {
		debug.StartGoroutineLogger(debugInterval, c.Logger, a.stop)
		debug.StartMemLogger(debugInterval, c.Logger, a.stop)
	}

	c.Loop.Schedule = a.scheduleUpdate
	c.AnnotationPresenter.Start()
	if a.exited {
		return
	}
	a.scheduleUpdate()
	App.Wait()
}

func (a *app) exitHandler() {
	if a.exited {
		return
	}
	a.exited = true
	close(a.stop)
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	if a.exited {
		return
	}
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, a.c.Loop.Tick)
}
