package presenter

import (
	"image"
	"log/slog"
	"math"
	"path/filepath"

	"github.com/soocke/roimask/domain/contrast"
	"github.com/soocke/roimask/domain/pairing"
	"github.com/soocke/roimask/ui/images"
	"github.com/soocke/roimask/ui/model"
)

// Pane identifies one of the two image panes.
type Pane int

const (
	PaneBrightfield Pane = iota
	PaneMovie
	paneCount
)

func (p Pane) String() string {
	if p == PaneMovie {
		return "movie"
	}
	return "brightfield"
}

// AnnotationView is what the annotation presenter drives.
type AnnotationView interface {
	ShowPane(p Pane, img image.Image)
	SetPairTitle(brightfield, movie string)
	SetMode(mode string)
	SetContrast(value, frac float64)
}

// PairLoader decodes the two images of a pair for display.
type PairLoader interface {
	Brightfield(path string) (*image.Gray, error)
	MovieFrame(path string) (*image.Gray, error)
}

// MaskWriter persists a finished mask.
type MaskWriter interface {
	WriteMask(path string, mask *image.Gray) error
}

// StatusSink receives short user-facing status messages.
type StatusSink interface{ OnStatus(msg string) }

// AnnotationPresenter walks the pair list, routes pointer input to the model
// and renders both panes. Renders are deferred: input marks panes dirty and
// Flush, called from the update loop, redraws them.
type AnnotationPresenter struct {
	model   *model.AnnotationModel
	session *model.SessionModel
	slider  *model.Slider
	view    AnnotationView
	loader  PairLoader
	writer  MaskWriter
	status  StatusSink
	logger  *slog.Logger

	outputDir string
	viewSize  int
	pairs     []pairing.Pair
	next      int
	current   *pairing.Pair

	bf        *image.Gray
	movie     *image.Gray
	movieView *image.Gray
	viewports [paneCount]*model.Viewport
	dirty     [paneCount]bool

	done   bool
	onDone func()
}

// NewAnnotationPresenter returns a presenter over pairs. Masks are written
// to outputDir under the brightfield filename. status may be nil.
func NewAnnotationPresenter(pairs []pairing.Pair, outputDir string, viewSize int, m *model.AnnotationModel, sess *model.SessionModel, view AnnotationView, loader PairLoader, writer MaskWriter, status StatusSink, logger *slog.Logger) *AnnotationPresenter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AnnotationPresenter{
		model:     m,
		session:   sess,
		slider:    model.NewSlider(contrast.Min, contrast.Max, contrast.Step, contrast.Identity),
		view:      view,
		loader:    loader,
		writer:    writer,
		status:    status,
		logger:    logger,
		outputDir: outputDir,
		viewSize:  viewSize,
		pairs:     pairs,
	}
}

// OnDone registers fn to run once when the last pair is finished or the
// session is closed.
func (p *AnnotationPresenter) OnDone(fn func()) {
	if p == nil {
		return
	}
	p.onDone = fn
}

// Start shows the first loadable pair.
func (p *AnnotationPresenter) Start() {
	if p == nil || p.model == nil || p.view == nil {
		return
	}
	p.view.SetMode(p.model.Mode().String())
	p.advance()
}

// Done reports whether the session has ended.
func (p *AnnotationPresenter) Done() bool { return p == nil || p.done }

// Current returns the pair on screen.
func (p *AnnotationPresenter) Current() (pairing.Pair, bool) {
	if p == nil || p.current == nil {
		return pairing.Pair{}, false
	}
	return *p.current, true
}

func (p *AnnotationPresenter) active() bool {
	return p != nil && !p.done && p.current != nil
}

// Press handles a primary click at display pixel (dx, dy) of pane.
func (p *AnnotationPresenter) Press(pane Pane, dx, dy int) {
	if !p.active() {
		return
	}
	if p.model.Press(p.toImage(pane, dx, dy)) {
		p.markAll()
	}
}

// Motion handles pointer motion with the primary button held. Tk keeps
// reporting motion after the pointer leaves the pane; those events are dropped.
func (p *AnnotationPresenter) Motion(pane Pane, dx, dy int) {
	if !p.active() || !p.inPane(dx, dy) {
		return
	}
	if p.model.Motion(p.toImage(pane, dx, dy)) {
		p.markAll()
	}
}

// Release ends a drag.
func (p *AnnotationPresenter) Release() {
	if !p.active() {
		return
	}
	p.model.Release()
}

// Scroll zooms pane around display pixel (dx, dy).
func (p *AnnotationPresenter) Scroll(pane Pane, dx, dy int, in bool) {
	if !p.active() || pane < 0 || pane >= paneCount {
		return
	}
	p.viewports[pane].Zoom(dx, dy, in)
	p.dirty[pane] = true
}

// Undo removes the last point.
func (p *AnnotationPresenter) Undo() {
	if !p.active() {
		return
	}
	if p.model.Undo() {
		p.markAll()
	}
}

// ToggleMode switches between draw and edit mode.
func (p *AnnotationPresenter) ToggleMode() {
	if p == nil || p.model == nil || p.view == nil {
		return
	}
	mode := p.model.ToggleMode()
	p.view.SetMode(mode.String())
	p.logger.Info("mode switched", "mode", mode.String())
}

// SlideContrast moves the contrast slider to frac of its range.
func (p *AnnotationPresenter) SlideContrast(frac float64) {
	if !p.active() || !p.slider.SetFraction(frac) {
		return
	}
	p.applyContrast()
}

// Save writes the mask and moves on. A failed write keeps the pair open.
func (p *AnnotationPresenter) Save() {
	if !p.active() || p.writer == nil {
		return
	}
	path := filepath.Join(p.outputDir, p.current.Brightfield)
	if err := p.writer.WriteMask(path, p.model.Mask()); err != nil {
		p.logger.Error("mask save failed", "path", path, "error", err)
		p.notify("Save failed: " + err.Error())
		return
	}
	p.logger.Info("mask saved", "path", path, "points", len(p.model.Points()))
	p.notify("Mask saved: " + p.current.Brightfield)
	p.session.Record(model.OutcomeSaved)
	p.advance()
}

// Skip moves on without writing.
func (p *AnnotationPresenter) Skip() {
	if !p.active() {
		return
	}
	p.logger.Info("skipped", "brightfield", p.current.Brightfield)
	p.notify("Skipped: " + p.current.Brightfield)
	p.session.Record(model.OutcomeSkipped)
	p.advance()
}

// Close skips the pair on screen and ends the session.
func (p *AnnotationPresenter) Close() {
	if p == nil || p.done {
		return
	}
	if p.current != nil {
		p.logger.Info("skipped", "brightfield", p.current.Brightfield, "reason", "window closed")
		p.session.Record(model.OutcomeSkipped)
	}
	p.finish()
}

// Flush redraws dirty panes.
func (p *AnnotationPresenter) Flush() {
	if !p.active() || p.view == nil {
		return
	}
	for pane := Pane(0); pane < paneCount; pane++ {
		if !p.dirty[pane] {
			continue
		}
		p.dirty[pane] = false
		p.view.ShowPane(pane, p.render(pane))
	}
}

func (p *AnnotationPresenter) render(pane Pane) image.Image {
	src := p.bf
	if pane == PaneMovie {
		src = p.movieView
	}
	vp := p.viewports[pane]
	x0, x1, y0, y1 := vp.Window()
	img := images.RenderGray(src, images.Window{X0: x0, X1: x1, Y0: y0, Y1: y1}, vp.Size())
	pts := p.model.Points()
	disp := make([]image.Point, len(pts))
	for i, pt := range pts {
		dx, dy := vp.ToDisplay(float64(pt.X), float64(pt.Y))
		disp[i] = image.Pt(int(math.Round(dx)), int(math.Round(dy)))
	}
	images.DrawOverlay(img, disp, images.Overlay)
	return img
}

// toImage truncates toward zero, as the click position is reported in
// continuous image coordinates.
func (p *AnnotationPresenter) toImage(pane Pane, dx, dy int) image.Point {
	if pane < 0 || pane >= paneCount {
		pane = PaneBrightfield
	}
	fx, fy := p.viewports[pane].ToImage(dx, dy)
	return image.Pt(int(fx), int(fy))
}

func (p *AnnotationPresenter) inPane(dx, dy int) bool {
	return dx >= 0 && dy >= 0 && dx < p.viewSize && dy < p.viewSize
}

func (p *AnnotationPresenter) markAll() {
	for i := range p.dirty {
		p.dirty[i] = true
	}
}

func (p *AnnotationPresenter) applyContrast() {
	v := p.slider.Value()
	p.model.SetContrast(v)
	p.movieView = contrast.Enhance(p.movie, p.model.Contrast())
	p.dirty[PaneMovie] = true
	p.view.SetContrast(v, p.slider.Fraction())
}

func (p *AnnotationPresenter) notify(msg string) {
	if p.status != nil {
		p.status.OnStatus(msg)
	}
}

// advance loads the next pair whose images decode, or finishes.
func (p *AnnotationPresenter) advance() {
	p.current = nil
	p.bf, p.movie, p.movieView = nil, nil, nil
	for p.next < len(p.pairs) {
		pair := p.pairs[p.next]
		p.next++
		if err := p.load(pair); err != nil {
			p.logger.Warn("pair load failed", "brightfield", pair.Brightfield, "movie", pair.Movie, "error", err)
			p.notify("Could not load " + pair.Brightfield)
			p.session.Record(model.OutcomeFailed)
			continue
		}
		p.current = &pair
		p.session.Begin(p.next)
		p.model.Reset()
		p.slider.Set(contrast.Identity)
		p.applyContrast()
		p.markAll()
		p.view.SetPairTitle(pair.Brightfield, pair.Movie)
		p.logger.Info("showing", "brightfield", pair.Brightfield, "movie", pair.Movie)
		return
	}
	p.finish()
}

func (p *AnnotationPresenter) load(pair pairing.Pair) error {
	bf, err := p.loader.Brightfield(pair.BrightfieldPath)
	if err != nil {
		return err
	}
	movie, err := p.loader.MovieFrame(pair.MoviePath)
	if err != nil {
		return err
	}
	p.bf, p.movie = bf, movie
	p.viewports[PaneBrightfield] = model.NewViewport(bf.Bounds().Dx(), bf.Bounds().Dy(), p.viewSize)
	p.viewports[PaneMovie] = model.NewViewport(movie.Bounds().Dx(), movie.Bounds().Dy(), p.viewSize)
	return nil
}

func (p *AnnotationPresenter) finish() {
	if p.done {
		return
	}
	p.done = true
	p.current = nil
	pr := p.session.Values()
	p.logger.Info("annotation complete", "total", pr.Total, "saved", pr.Saved, "skipped", pr.Skipped, "failed", pr.Failed)
	if p.onDone != nil {
		p.onDone()
	}
}
