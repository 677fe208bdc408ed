package view

import (
	"fmt"

	"github.com/soocke/roimask/ui/images"
	"github.com/soocke/roimask/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	sliderW = 240
	sliderH = 18
)

// contrastSlider is a drawn slider: a label holding a rendered track that
// reports the pointer position as a fraction of its width.
type contrastSlider struct {
	track     *LabelWidget
	value     *LabelWidget
	prevPhoto *Img
}

func newContrastSlider(parent *FrameWidget, row, col int, onSlide func(frac float64)) *contrastSlider {
	s := &contrastSlider{}
	s.value = parent.Label(Txt("Contrast Scale: 1.00"), Anchor("w"))
	Grid(s.value, Row(row), Column(col), Sticky("w"), Padx("0.4m"))
	s.prevPhoto = NewPhoto(Data(s.render(0)))
	s.track = parent.Label(Image(s.prevPhoto), Borderwidth(0), Highlightthickness(0))
	Grid(s.track, Row(row), Column(col+1), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	slide := Command(func(e *Event) {
		x, _ := pointer(e)
		onSlide(images.SliderFraction(sliderW, x))
	})
	Bind(s.track, "<ButtonPress-1>", slide)
	Bind(s.track, "<B1-Motion>", slide)
	return s
}

func (s *contrastSlider) render(frac float64) []byte {
	pal := theme.CurrentPalette()
	img := images.RenderSlider(sliderW, sliderH, frac, theme.RGB(pal.Border), theme.RGB(pal.Primary))
	return images.EncodePNG(img)
}

// Set moves the knob and updates the value caption.
func (s *contrastSlider) Set(value, frac float64) {
	if s == nil || s.track == nil {
		return
	}
	if s.prevPhoto != nil {
		s.prevPhoto.Delete()
	}
	s.prevPhoto = NewPhoto(Data(s.render(frac)))
	s.track.Configure(Image(s.prevPhoto))
	s.value.Configure(Txt(fmt.Sprintf("Contrast Scale: %.2f", value)))
}
