package view

import (
	"image"

	"github.com/soocke/roimask/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PaneInput receives pointer events in pane-local display pixels.
type PaneInput struct {
	Press   func(x, y int)
	Motion  func(x, y int)
	Release func()
	Scroll  func(x, y int, in bool)
}

// ImagePane shows one rendered image and forwards mouse input.
type ImagePane interface {
	Show(img image.Image)
	SetTitle(s string)
}

type imagePane struct {
	title     *LabelWidget
	label     *LabelWidget
	size      int
	prevPhoto *Img // last Tk photo, deleted before replacement
}

// NewImagePane creates a titled size×size pane at (row, col) inside parent.
// The title sits on row, the image on row+1.
func NewImagePane(parent *FrameWidget, row, col, size int, title string, in PaneInput) ImagePane {
	photo := NewPhoto(Data(images.EncodePNG(images.Placeholder(size))))
	p := &imagePane{size: size, prevPhoto: photo}
	p.title = parent.Label(Txt(title), Anchor("w"))
	Grid(p.title, Row(row), Column(col), Sticky("w"), Padx("0.4m"))
	// no border, highlight or internal padding: event x/y must equal photo x/y
	p.label = parent.Label(Image(photo), Borderwidth(0), Highlightthickness(0), Padx(0), Pady(0))
	Grid(p.label, Row(row+1), Column(col), Padx("0.4m"), Pady("0.4m"))

	if in.Press != nil {
		Bind(p.label, "<ButtonPress-1>", Command(func(e *Event) { in.Press(pointer(e)) }))
	}
	if in.Motion != nil {
		Bind(p.label, "<B1-Motion>", Command(func(e *Event) { in.Motion(pointer(e)) }))
	}
	if in.Release != nil {
		Bind(p.label, "<ButtonRelease-1>", Command(func(e *Event) { in.Release() }))
	}
	if in.Scroll != nil {
		Bind(p.label, "<MouseWheel>", Command(func(e *Event) {
			x, y := pointer(e)
			in.Scroll(x, y, wheelIn(e))
		}))
	}
	return p
}

// SetTitle changes the caption above the image.
func (p *imagePane) SetTitle(s string) {
	if p == nil || p.title == nil {
		return
	}
	p.title.Configure(Txt(s))
}

func (p *imagePane) Show(img image.Image) {
	if p == nil || p.label == nil || img == nil {
		return
	}
	// Replace previous photo to avoid retaining obsolete pixel buffers.
	if p.prevPhoto != nil {
		p.prevPhoto.Delete()
	}
	p.prevPhoto = NewPhoto(Data(images.EncodePNG(img)))
	p.label.Configure(Image(p.prevPhoto))
}
