package view

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/roimask/config"
	"github.com/soocke/roimask/ui/presenter"
	"github.com/soocke/roimask/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user actions the root view forwards.
type Handlers struct {
	Press      func(pane presenter.Pane, x, y int)
	Motion     func(pane presenter.Pane, x, y int)
	Release    func()
	Scroll     func(pane presenter.Pane, x, y int, in bool)
	Save       func()
	Skip       func()
	Undo       func()
	ToggleMode func()
	Contrast   func(frac float64)
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg    *config.Config
	logger *slog.Logger

	// Subviews
	Session SessionStats
	Info    InfoPanel
	panes   [2]ImagePane
	slider  *contrastSlider

	// Widgets
	ModeLabel   *TLabelWidget
	StatusLabel *TLabelWidget
}

// UI is the full set of view operations the presenters need.
type UI interface {
	presenter.AnnotationView
	presenter.StatusView
	presenter.SessionView
}

var _ UI = (*RootView)(nil)

func NewRootView(cfg *config.Config, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, logger: logger}
}

// Build constructs the layout. Handlers are invoked on user actions.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	size := rv.cfg.Annotate.ViewSize

	// Row 0: both image panes with captions
	panes := Frame()
	Grid(panes, Row(0), Column(0), Sticky("nwe"), Padx("0.4m"), Pady("0.3m"))
	for i, title := range []string{"Brightfield", "Movie Frame 1"} {
		pane := presenter.Pane(i)
		rv.panes[i] = NewImagePane(panes, 0, i, size, title, PaneInput{
			Press:   func(x, y int) { h.Press(pane, x, y) },
			Motion:  func(x, y int) { h.Motion(pane, x, y) },
			Release: h.Release,
			Scroll:  func(x, y int, in bool) { h.Scroll(pane, x, y, in) },
		})
	}

	// Row 1: actions, mode and contrast
	controls := Frame()
	Grid(controls, Row(1), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	saveBtn := controls.TButton(Txt("Save Mask"), Style(theme.StylePrimaryButton), Command(h.Save))
	Grid(saveBtn, Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	skipBtn := controls.TButton(Txt("Skip"), Style(theme.StyleDangerButton), Command(h.Skip))
	Grid(skipBtn, Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	undoBtn := controls.TButton(Txt("Undo Point"), Command(h.Undo))
	Grid(undoBtn, Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	toggleBtn := controls.TButton(Txt("Toggle Edit Mode"), Command(h.ToggleMode))
	Grid(toggleBtn, Row(0), Column(3), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.ModeLabel = controls.TLabel(Txt("Mode: Draw"), Style(theme.StyleModeLabel))
	Grid(rv.ModeLabel, Row(0), Column(4), Sticky("we"), Padx("0.4m"))
	rv.slider = newContrastSlider(controls, 1, 0, h.Contrast)

	// Row 2: status and progress
	statusRow := Frame()
	Grid(statusRow, Row(2), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.StatusLabel = statusRow.TLabel(Txt("Ready"), Style(theme.StyleStateLabel))
	Grid(rv.StatusLabel, Row(0), Column(0), Sticky("w"), Padx("0.2m"))
	rv.Session = NewSessionStats(statusRow, 0, 1)

	// Row 3: session folders
	info := Frame()
	Grid(info, Row(3), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.Info = NewInfoPanel(rv.cfg.Annotate)
	rv.Info.Build(info, 0)

	Bind(App, "<Control-z>", Command(h.Undo))
	Bind(App, "<Control-s>", Command(h.Save))
}

// ShowPane replaces the image of one pane.
func (rv *RootView) ShowPane(p presenter.Pane, img image.Image) {
	if rv == nil || int(p) < 0 || int(p) >= len(rv.panes) || rv.panes[p] == nil {
		return
	}
	rv.panes[p].Show(img)
}

// SetPairTitle captions both panes with their filenames.
func (rv *RootView) SetPairTitle(brightfield, movie string) {
	if rv == nil {
		return
	}
	if rv.panes[presenter.PaneBrightfield] != nil {
		rv.panes[presenter.PaneBrightfield].SetTitle("Brightfield: " + brightfield)
	}
	if rv.panes[presenter.PaneMovie] != nil {
		rv.panes[presenter.PaneMovie].SetTitle("Movie Frame 1: " + movie)
	}
	App.WmTitle("roimask - " + brightfield)
}

// SetMode updates the mode label text.
func (rv *RootView) SetMode(mode string) {
	if rv != nil && rv.ModeLabel != nil {
		rv.ModeLabel.Configure(Txt("Mode: " + mode))
	}
}

// SetContrast moves the contrast slider.
func (rv *RootView) SetContrast(value, frac float64) {
	if rv != nil {
		rv.slider.Set(value, frac)
	}
}

// SetStatusLabel updates the status label text.
func (rv *RootView) SetStatusLabel(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

// SetProgress proxies to the session stats view.
func (rv *RootView) SetProgress(text string) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetProgress(text)
	}
}

// SetElapsed proxies to the session stats view.
func (rv *RootView) SetElapsed(d time.Duration) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetElapsed(d)
	}
}
