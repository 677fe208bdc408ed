package images

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"

	"github.com/soocke/roimask/domain/roi"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = imaging.Encode(&buf, img, imaging.PNG)
	return buf.Bytes()
}

// Window is a rectangle of image coordinates with pixel centres on integers.
type Window struct {
	X0, X1 float64
	Y0, Y1 float64
}

var (
	// Background fills pane areas outside the image.
	Background = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	// Overlay is the polygon colour (lime).
	Overlay = color.NRGBA{G: 0xff, A: 0xff}
)

// Placeholder returns an empty size×size pane.
func Placeholder(size int) *image.NRGBA {
	return imaging.New(max(size, 1), max(size, 1), Background)
}

// RenderGray samples src through win into a new size×size pane using
// nearest-neighbour lookup, matching how the view maps clicks back.
func RenderGray(src *image.Gray, win Window, size int) *image.NRGBA {
	dst := Placeholder(size)
	if src == nil || win.X1 == win.X0 || win.Y1 == win.Y0 {
		return dst
	}
	b := src.Bounds()
	sx := (win.X1 - win.X0) / float64(size)
	sy := (win.Y1 - win.Y0) / float64(size)
	cols := make([]int, size)
	for dx := range cols {
		cols[dx] = int(math.Floor(win.X0 + (float64(dx)+0.5)*sx + 0.5))
	}
	for dy := 0; dy < size; dy++ {
		iy := int(math.Floor(win.Y0 + (float64(dy)+0.5)*sy + 0.5))
		if iy < 0 || iy >= b.Dy() {
			continue
		}
		off := src.PixOffset(b.Min.X, b.Min.Y+iy)
		row := src.Pix[off : off+b.Dx()]
		out := dst.Pix[dy*dst.Stride:]
		for dx, ix := range cols {
			if ix < 0 || ix >= b.Dx() {
				continue
			}
			v := row[ix]
			o := out[dx*4 : dx*4+4 : dx*4+4]
			o[0], o[1], o[2], o[3] = v, v, v, 0xff
		}
	}
	return dst
}

// MarkerRadius is the vertex marker radius in display pixels.
const MarkerRadius = 3

// DrawOverlay draws the polygon through pts onto dst: a closed outline once
// there are at least two points, and a marker on every vertex.
func DrawOverlay(dst draw.Image, pts []image.Point, c color.Color) {
	if dst == nil || len(pts) == 0 {
		return
	}
	b := dst.Bounds()
	plot := func(x, y int) {
		if image.Pt(x, y).In(b) {
			dst.Set(x, y, c)
		}
	}
	if len(pts) >= 2 {
		for i := range pts {
			roi.Line(pts[i], pts[(i+1)%len(pts)], plot)
		}
	}
	r2 := MarkerRadius * MarkerRadius
	for _, p := range pts {
		for y := -MarkerRadius; y <= MarkerRadius; y++ {
			for x := -MarkerRadius; x <= MarkerRadius; x++ {
				if x*x+y*y <= r2 {
					plot(p.X+x, p.Y+y)
				}
			}
		}
	}
}

// RenderSlider draws a horizontal slider track with its knob at frac.
func RenderSlider(width, height int, frac float64, track, knob color.Color) *image.NRGBA {
	width, height = max(width, 8), max(height, 8)
	dst := imaging.New(width, height, color.Transparent)
	mid := height / 2
	draw.Draw(dst, image.Rect(0, mid-1, width, mid+2), image.NewUniform(track), image.Point{}, draw.Src)
	frac = min(max(frac, 0), 1)
	kx := KnobCenter(width, frac)
	half := height / 4
	draw.Draw(dst, image.Rect(kx-half, 1, kx+half+1, height-1), image.NewUniform(knob), image.Point{}, draw.Src)
	return dst
}

// KnobCenter returns the x coordinate of the knob centre for frac.
func KnobCenter(width int, frac float64) int {
	pad := SliderPad(width)
	return pad + int(math.Round(frac*float64(width-1-2*pad)))
}

// SliderFraction is the inverse of KnobCenter for a pointer at x.
func SliderFraction(width, x int) float64 {
	pad := SliderPad(width)
	span := width - 1 - 2*pad
	if span <= 0 {
		return 0
	}
	return min(max(float64(x-pad)/float64(span), 0), 1)
}

// SliderPad keeps the knob inside the image at both ends.
func SliderPad(width int) int { return max(2, width/50) }
