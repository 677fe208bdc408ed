package model

import (
	"math"
	"testing"
)

func TestSlider_SnapsAndClamps(t *testing.T) {
	s := NewSlider(-1, 5, 0.05, 1)
	if s.Value() != 1 {
		t.Fatalf("initial value should be exactly 1, got %v", s.Value())
	}
	s.Set(1.234)
	if math.Abs(s.Value()-1.25) > 1e-9 {
		t.Fatalf("expected snap to 1.25, got %v", s.Value())
	}
	s.Set(42)
	if s.Value() != 5 {
		t.Fatalf("expected clamp to 5, got %v", s.Value())
	}
	if s.Set(5) {
		t.Fatalf("setting the same value should report no change")
	}
	s.SetFraction(0)
	if s.Value() != -1 || s.Fraction() != 0 {
		t.Fatalf("fraction 0 should be the minimum")
	}
	s.SetFraction(0.5)
	if math.Abs(s.Value()-2) > 1e-9 {
		t.Fatalf("fraction 0.5 should be 2, got %v", s.Value())
	}
}
