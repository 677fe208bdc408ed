package model

import (
	"image"

	"github.com/soocke/roimask/domain/contrast"
	"github.com/soocke/roimask/domain/roi"
)

// Mode selects what a primary click does.
type Mode int

const (
	ModeDraw Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "Edit"
	}
	return "Draw"
}

// AnnotationModel holds the polygon being drawn for the current pair and the
// mask rasterized from it. Every mutation re-rasterizes the mask. The edit
// mode survives Reset so a user editing one pair keeps editing the next.
type AnnotationModel struct {
	poly     *roi.Polygon
	mask     *image.Gray
	mode     Mode
	selected int
	contrast float64
}

// NewAnnotationModel returns an empty model in draw mode.
func NewAnnotationModel() *AnnotationModel {
	return &AnnotationModel{
		poly:     roi.NewPolygon(),
		mask:     roi.NewMask(),
		selected: -1,
		contrast: contrast.Identity,
	}
}

// Reset clears points, mask, selection and contrast for a new pair.
func (m *AnnotationModel) Reset() {
	if m == nil {
		return
	}
	m.poly.Reset()
	m.selected = -1
	m.contrast = contrast.Identity
	m.rasterize()
}

// Press handles a primary click at image point pt. In draw mode the point is
// appended; in edit mode the first vertex within roi.SelectRadius is selected.
// It reports whether the polygon changed.
func (m *AnnotationModel) Press(pt image.Point) bool {
	if m == nil {
		return false
	}
	if m.mode == ModeEdit {
		if i, ok := m.poly.Nearest(pt, roi.SelectRadius); ok {
			m.selected = i
		}
		return false
	}
	m.poly.Add(pt)
	m.rasterize()
	return true
}

// Motion drags the selected vertex to pt. Without a selection, or outside
// edit mode, it does nothing.
func (m *AnnotationModel) Motion(pt image.Point) bool {
	if m == nil || m.mode != ModeEdit || m.selected < 0 {
		return false
	}
	if !m.poly.Move(m.selected, pt) {
		return false
	}
	m.rasterize()
	return true
}

// Release drops the selection.
func (m *AnnotationModel) Release() {
	if m == nil {
		return
	}
	m.selected = -1
}

// Undo removes the most recently added point.
func (m *AnnotationModel) Undo() bool {
	if m == nil || !m.poly.Undo() {
		return false
	}
	if m.selected >= m.poly.Len() {
		m.selected = -1
	}
	m.rasterize()
	return true
}

// ToggleMode switches between draw and edit and returns the new mode.
func (m *AnnotationModel) ToggleMode() Mode {
	if m == nil {
		return ModeDraw
	}
	if m.mode == ModeDraw {
		m.mode = ModeEdit
	} else {
		m.mode = ModeDraw
		m.selected = -1
	}
	return m.mode
}

// SetContrast stores the clamped preview factor and reports whether it changed.
func (m *AnnotationModel) SetContrast(f float64) bool {
	if m == nil {
		return false
	}
	f = contrast.Clamp(f)
	if f == m.contrast {
		return false
	}
	m.contrast = f
	return true
}

func (m *AnnotationModel) Mode() Mode {
	if m == nil {
		return ModeDraw
	}
	return m.mode
}

func (m *AnnotationModel) Contrast() float64 {
	if m == nil {
		return contrast.Identity
	}
	return m.contrast
}

// Selected returns the index of the vertex being dragged.
func (m *AnnotationModel) Selected() (int, bool) {
	if m == nil || m.selected < 0 {
		return -1, false
	}
	return m.selected, true
}

// Points returns a copy of the polygon vertices.
func (m *AnnotationModel) Points() []image.Point {
	if m == nil {
		return nil
	}
	return m.poly.Points()
}

// Mask returns the current mask. Callers must not modify it.
func (m *AnnotationModel) Mask() *image.Gray {
	if m == nil {
		return nil
	}
	return m.mask
}

func (m *AnnotationModel) rasterize() {
	roi.RasterizeInto(m.mask, m.poly.Points())
}
