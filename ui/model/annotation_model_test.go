package model

import (
	"image"
	"testing"

	"github.com/soocke/roimask/domain/roi"
)

func TestAnnotationModel_DrawAndUndo(t *testing.T) {
	m := NewAnnotationModel()
	for _, p := range []image.Point{{10, 10}, {20, 10}} {
		if !m.Press(p) {
			t.Fatalf("press in draw mode should change polygon")
		}
	}
	if roi.Area(m.Mask()) != 0 {
		t.Fatalf("two points must not produce a mask")
	}
	m.Press(image.Pt(20, 20))
	m.Press(image.Pt(10, 20))
	if got := roi.Area(m.Mask()); got != 121 {
		t.Fatalf("expected 121 mask pixels, got %d", got)
	}
	if !m.Undo() || len(m.Points()) != 3 {
		t.Fatalf("undo should drop the last point")
	}
	m.Undo()
	m.Undo()
	m.Undo()
	if m.Undo() {
		t.Fatalf("undo on empty polygon should be a no-op")
	}
	if roi.Area(m.Mask()) != 0 {
		t.Fatalf("mask should be empty after undoing everything")
	}
}

func TestAnnotationModel_EditDragsOnlySelected(t *testing.T) {
	m := NewAnnotationModel()
	pts := []image.Point{{10, 10}, {100, 10}, {100, 100}, {10, 100}}
	for _, p := range pts {
		m.Press(p)
	}
	before := roi.Area(m.Mask())

	if m.ToggleMode() != ModeEdit {
		t.Fatalf("expected edit mode")
	}
	if m.Press(image.Pt(104, 104)) {
		t.Fatalf("press in edit mode must not change polygon")
	}
	if i, ok := m.Selected(); !ok || i != 2 {
		t.Fatalf("expected vertex 2 selected, got %d %v", i, ok)
	}
	if roi.Area(m.Mask()) != before {
		t.Fatalf("selection alone must not change the mask")
	}
	if !m.Motion(image.Pt(150, 150)) {
		t.Fatalf("motion with selection should move the vertex")
	}
	got := m.Points()
	for i, p := range got {
		want := pts[i]
		if i == 2 {
			want = image.Pt(150, 150)
		}
		if p != want {
			t.Fatalf("point %d = %v, want %v", i, p, want)
		}
	}
	if roi.Area(m.Mask()) <= before {
		t.Fatalf("mask should grow after dragging outward")
	}
	m.Release()
	if m.Motion(image.Pt(1, 1)) {
		t.Fatalf("motion after release must do nothing")
	}
}

func TestAnnotationModel_EditMissSelectsNothing(t *testing.T) {
	m := NewAnnotationModel()
	m.Press(image.Pt(50, 50))
	m.ToggleMode()
	m.Press(image.Pt(60, 50)) // exactly 10 away, outside the strict radius
	if _, ok := m.Selected(); ok {
		t.Fatalf("no vertex should be selected")
	}
}

func TestAnnotationModel_ResetKeepsMode(t *testing.T) {
	m := NewAnnotationModel()
	m.Press(image.Pt(1, 1))
	m.ToggleMode()
	m.SetContrast(2.5)
	m.Reset()
	if len(m.Points()) != 0 || m.Contrast() != 1.0 {
		t.Fatalf("reset should clear points and contrast")
	}
	if m.Mode() != ModeEdit {
		t.Fatalf("reset should keep the edit mode")
	}
	if m.Mode().String() != "Edit" || ModeDraw.String() != "Draw" {
		t.Fatalf("mode strings wrong")
	}
}

func TestAnnotationModel_SetContrastClamps(t *testing.T) {
	m := NewAnnotationModel()
	if m.SetContrast(1.0) {
		t.Fatalf("identity contrast is already set")
	}
	if !m.SetContrast(9) || m.Contrast() != 5.0 {
		t.Fatalf("contrast should clamp to 5, got %v", m.Contrast())
	}
}
