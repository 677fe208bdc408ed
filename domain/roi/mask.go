package roi

import (
	"image"
	"math"
	"sort"
)

// FrameSize is the side length of every mask and brightfield frame.
const FrameSize = 370

const (
	// Inside is the mask value for pixels within the ROI.
	Inside uint8 = 255
	// Outside is the mask value for everything else.
	Outside uint8 = 0
)

// NewMask returns an all-zero FrameSize x FrameSize mask.
func NewMask() *image.Gray {
	return image.NewGray(image.Rect(0, 0, FrameSize, FrameSize))
}

// Rasterize fills the closed polygon through pts into a fresh FrameSize mask.
// See RasterizeInto.
func Rasterize(pts []image.Point) *image.Gray {
	m := NewMask()
	RasterizeInto(m, pts)
	return m
}

// RasterizeInto clears dst and fills the closed polygon through pts with
// Inside. Boundary pixels are included. Fewer than three points leave dst
// all Outside. The result depends only on pts and dst's bounds.
func RasterizeInto(dst *image.Gray, pts []image.Point) {
	if dst == nil {
		return
	}
	for i := range dst.Pix {
		dst.Pix[i] = Outside
	}
	if len(pts) < 3 {
		return
	}
	b := dst.Bounds()
	set := func(x, y int) {
		if image.Pt(x, y).In(b) {
			dst.Pix[dst.PixOffset(x, y)] = Inside
		}
	}

	n := len(pts)
	xs := make([]float64, 0, n)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		fy := float64(y)
		xs = xs[:0]
		for i := 0; i < n; i++ {
			a, c := pts[i], pts[(i+1)%n]
			if a.Y == c.Y {
				continue
			}
			lo, hi := a, c
			if lo.Y > hi.Y {
				lo, hi = hi, lo
			}
			// half-open span so shared vertices are counted once
			if fy < float64(lo.Y) || fy >= float64(hi.Y) {
				continue
			}
			t := (fy - float64(lo.Y)) / float64(hi.Y-lo.Y)
			xs = append(xs, float64(lo.X)+t*float64(hi.X-lo.X))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(math.Ceil(xs[i]))
			x1 := int(math.Floor(xs[i+1]))
			if x0 < b.Min.X {
				x0 = b.Min.X
			}
			if x1 >= b.Max.X {
				x1 = b.Max.X - 1
			}
			for x := x0; x <= x1; x++ {
				dst.Pix[dst.PixOffset(x, y)] = Inside
			}
		}
	}

	for i := 0; i < n; i++ {
		Line(pts[i], pts[(i+1)%n], set)
	}
}

// Line walks the integer pixels from a to b inclusive (Bresenham) and calls
// plot for each of them.
func Line(a, b image.Point, plot func(x, y int)) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		plot(x, y)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// Area counts the Inside pixels of m.
func Area(m *image.Gray) int {
	if m == nil {
		return 0
	}
	n := 0
	for _, v := range m.Pix {
		if v != Outside {
			n++
		}
	}
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
