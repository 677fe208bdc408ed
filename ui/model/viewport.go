package model

// Viewport maps a square display pane onto a window of image coordinates.
// Pixel centres sit on integer coordinates, so the unzoomed window of a w×h
// image spans [-0.5, w-0.5] × [-0.5, h-0.5]. Zooming keeps the image point
// under the cursor fixed. The zero value is not usable; call NewViewport.
type Viewport struct {
	x0, x1 float64
	y0, y1 float64
	imgW   int
	imgH   int
	size   int
}

// ZoomStep is the window scale applied per wheel notch.
const ZoomStep = 1.2

// NewViewport returns a viewport showing the whole w×h image in a size×size pane.
func NewViewport(w, h, size int) *Viewport {
	if size < 1 {
		size = 1
	}
	v := &Viewport{imgW: w, imgH: h, size: size}
	v.Reset()
	return v
}

// Reset shows the whole image again.
func (v *Viewport) Reset() {
	if v == nil {
		return
	}
	v.x0, v.x1 = -0.5, float64(v.imgW)-0.5
	v.y0, v.y1 = -0.5, float64(v.imgH)-0.5
}

// Size returns the pane edge in display pixels.
func (v *Viewport) Size() int {
	if v == nil {
		return 0
	}
	return v.size
}

// Window returns the visible image-coordinate limits.
func (v *Viewport) Window() (x0, x1, y0, y1 float64) {
	if v == nil {
		return 0, 0, 0, 0
	}
	return v.x0, v.x1, v.y0, v.y1
}

// ToImage converts the centre of display pixel (dx, dy) to image coordinates.
func (v *Viewport) ToImage(dx, dy int) (float64, float64) {
	if v == nil {
		return 0, 0
	}
	s := float64(v.size)
	fx := v.x0 + (float64(dx)+0.5)*(v.x1-v.x0)/s
	fy := v.y0 + (float64(dy)+0.5)*(v.y1-v.y0)/s
	return fx, fy
}

// ToDisplay converts image coordinates to display coordinates. It is the
// inverse of ToImage.
func (v *Viewport) ToDisplay(fx, fy float64) (float64, float64) {
	if v == nil {
		return 0, 0
	}
	s := float64(v.size)
	dx := (fx-v.x0)*s/(v.x1-v.x0) - 0.5
	dy := (fy-v.y0)*s/(v.y1-v.y0) - 0.5
	return dx, dy
}

// Zoom scales the window around the image point under display pixel
// (dx, dy). in shrinks the window by ZoomStep, otherwise it grows by it.
func (v *Viewport) Zoom(dx, dy int, in bool) {
	if v == nil {
		return
	}
	cx, cy := v.ToImage(dx, dy)
	scale := ZoomStep
	if in {
		scale = 1 / ZoomStep
	}
	v.x0, v.x1 = zoomAxis(v.x0, v.x1, cx, scale)
	v.y0, v.y1 = zoomAxis(v.y0, v.y1, cy, scale)
}

func zoomAxis(lo, hi, c, scale float64) (float64, float64) {
	width := hi - lo
	next := width * scale
	rel := (hi - c) / width
	return c - next*(1-rel), c + next*rel
}
