package roi

import (
	"image"
	"math"
)

// SelectRadius is the pick distance, in image pixels, used when grabbing an
// existing vertex in edit mode. A vertex is picked only when strictly closer.
const SelectRadius = 10.0

// Polygon is an ordered list of integer vertices with stable indices.
// The zero value is an empty polygon ready to use. Not safe for concurrent use.
type Polygon struct {
	pts []image.Point
}

// NewPolygon returns a polygon holding a copy of pts.
func NewPolygon(pts ...image.Point) *Polygon {
	p := &Polygon{}
	p.pts = append(p.pts, pts...)
	return p
}

// Len reports the number of vertices.
func (p *Polygon) Len() int {
	if p == nil {
		return 0
	}
	return len(p.pts)
}

// Points returns a copy of the vertices in insertion order.
func (p *Polygon) Points() []image.Point {
	if p == nil || len(p.pts) == 0 {
		return nil
	}
	out := make([]image.Point, len(p.pts))
	copy(out, p.pts)
	return out
}

// At returns vertex i.
func (p *Polygon) At(i int) (image.Point, bool) {
	if p == nil || i < 0 || i >= len(p.pts) {
		return image.Point{}, false
	}
	return p.pts[i], true
}

// Add appends a vertex.
func (p *Polygon) Add(pt image.Point) {
	if p == nil {
		return
	}
	p.pts = append(p.pts, pt)
}

// Undo removes the most recently added vertex. It reports false when the
// polygon was already empty.
func (p *Polygon) Undo() bool {
	if p == nil || len(p.pts) == 0 {
		return false
	}
	p.pts = p.pts[:len(p.pts)-1]
	return true
}

// Move relocates vertex i, leaving every other vertex untouched.
func (p *Polygon) Move(i int, pt image.Point) bool {
	if p == nil || i < 0 || i >= len(p.pts) {
		return false
	}
	p.pts[i] = pt
	return true
}

// Nearest returns the index of the first vertex whose Euclidean distance to
// pt is strictly below radius.
func (p *Polygon) Nearest(pt image.Point, radius float64) (int, bool) {
	if p == nil {
		return -1, false
	}
	for i, v := range p.pts {
		if math.Hypot(float64(v.X-pt.X), float64(v.Y-pt.Y)) < radius {
			return i, true
		}
	}
	return -1, false
}

// Reset drops all vertices.
func (p *Polygon) Reset() {
	if p == nil {
		return
	}
	p.pts = p.pts[:0]
}
