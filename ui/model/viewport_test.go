package model

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestViewport_FullExtentMapping(t *testing.T) {
	v := NewViewport(370, 370, 370)
	fx, fy := v.ToImage(0, 0)
	if !near(fx, 0) || !near(fy, 0) {
		t.Fatalf("pixel 0 should map to 0,0 got %v,%v", fx, fy)
	}
	fx, fy = v.ToImage(369, 100)
	if !near(fx, 369) || !near(fy, 100) {
		t.Fatalf("unexpected mapping %v,%v", fx, fy)
	}
	dx, dy := v.ToDisplay(fx, fy)
	if !near(dx, 369) || !near(dy, 100) {
		t.Fatalf("ToDisplay not inverse: %v,%v", dx, dy)
	}
}

func TestViewport_ScaledPane(t *testing.T) {
	v := NewViewport(370, 370, 740)
	fx, _ := v.ToImage(1, 0)
	// display pixel 1 centre is 1.5/740 of the way across the 370-wide window
	if !near(fx, -0.5+1.5*0.5) {
		t.Fatalf("got %v", fx)
	}
}

func TestViewport_ZoomKeepsCursorFixed(t *testing.T) {
	v := NewViewport(370, 370, 400)
	cx, cy := v.ToImage(100, 250)
	v.Zoom(100, 250, true)
	x0, x1, y0, y1 := v.Window()
	if !near(x1-x0, 370/ZoomStep) || !near(y1-y0, 370/ZoomStep) {
		t.Fatalf("zoom in should shrink window by step: %v %v", x1-x0, y1-y0)
	}
	ax, ay := v.ToDisplay(cx, cy)
	if !near(ax, 100) || !near(ay, 250) {
		t.Fatalf("cursor point moved to %v,%v", ax, ay)
	}

	v.Zoom(100, 250, false)
	x0, x1, _, _ = v.Window()
	if !near(x1-x0, 370) {
		t.Fatalf("zoom out should restore width, got %v", x1-x0)
	}

	v.Zoom(10, 10, true)
	v.Reset()
	x0, x1, y0, y1 = v.Window()
	if x0 != -0.5 || x1 != 369.5 || y0 != -0.5 || y1 != 369.5 {
		t.Fatalf("reset failed: %v %v %v %v", x0, x1, y0, y1)
	}
}
