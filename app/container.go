package app

import (
	"log/slog"

	"github.com/soocke/roimask/config"
	"github.com/soocke/roimask/domain/pairing"
	"github.com/soocke/roimask/ui/model"
	"github.com/soocke/roimask/ui/presenter"
	"github.com/soocke/roimask/ui/view"
)

// AppContainer assembles models, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	Logger     *slog.Logger
	Pairs      []pairing.Pair
	Annotation *model.AnnotationModel
	Session    *model.SessionModel
	RootView   *view.RootView
	UI         view.UI

	// Presenters
	AnnotationPresenter *presenter.AnnotationPresenter
	StatusPresenter     *presenter.StatusPresenter
	SessionPresenter    *presenter.SessionPresenter
	Loop                *presenter.Loop
}

// BuildContainer constructs all components. Nothing touches Tk or disk
// until the view is built and the annotation presenter is started.
func BuildContainer(cfg *config.Config, pairs []pairing.Pair, logger *slog.Logger) *AppContainer {
	c := &AppContainer{Config: cfg, Logger: logger, Pairs: pairs}
	c.Annotation = model.NewAnnotationModel()
	c.Session = model.NewSessionModel(len(pairs))
	c.RootView = view.NewRootView(cfg, logger)
	c.UI = c.RootView

	c.StatusPresenter = presenter.NewStatusPresenter(c.UI)
	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.UI)
	io := presenter.DiskIO{}
	c.AnnotationPresenter = presenter.NewAnnotationPresenter(
		pairs, cfg.Annotate.OutputDir, cfg.Annotate.ViewSize,
		c.Annotation, c.Session, c.UI, io, io, c.StatusPresenter, logger,
	)
	// Loop scheduling is attached by the app once Tk is running.
	c.Loop = presenter.NewLoop(c.SessionPresenter, c.StatusPresenter, c.AnnotationPresenter, nil)
	return c
}

// Handlers routes view callbacks to the annotation presenter.
func (c *AppContainer) Handlers() view.Handlers {
	p := c.AnnotationPresenter
	return view.Handlers{
		Press:      p.Press,
		Motion:     p.Motion,
		Release:    p.Release,
		Scroll:     p.Scroll,
		Save:       p.Save,
		Skip:       p.Skip,
		Undo:       p.Undo,
		ToggleMode: p.ToggleMode,
		Contrast:   p.SlideContrast,
	}
}
