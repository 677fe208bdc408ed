package model

import "math"

// Slider is a bounded value snapped to a fixed step.
type Slider struct {
	Min, Max, Step float64
	value          float64
}

// NewSlider returns a slider positioned at initial.
func NewSlider(lo, hi, step, initial float64) *Slider {
	s := &Slider{Min: lo, Max: hi, Step: step}
	s.Set(initial)
	return s
}

func (s *Slider) Value() float64 {
	if s == nil {
		return 0
	}
	return s.value
}

// Set snaps v to the nearest step and clamps it. It reports whether the
// stored value changed.
func (s *Slider) Set(v float64) bool {
	if s == nil {
		return false
	}
	v = min(max(v, s.Min), s.Max)
	if s.Step > 0 {
		n := math.Round((v - s.Min) / s.Step)
		v = s.Min + n*s.Step
		// kill float noise like 1.0000000000000002
		v = math.Round(v/s.Step) * s.Step
		v = min(max(v, s.Min), s.Max)
	}
	if v == s.value {
		return false
	}
	s.value = v
	return true
}

// SetFraction positions the slider at frac of its range (0 left, 1 right).
func (s *Slider) SetFraction(frac float64) bool {
	if s == nil {
		return false
	}
	frac = min(max(frac, 0), 1)
	return s.Set(s.Min + frac*(s.Max-s.Min))
}

// Fraction returns the current position as a fraction of the range.
func (s *Slider) Fraction() float64 {
	if s == nil || s.Max == s.Min {
		return 0
	}
	return (s.value - s.Min) / (s.Max - s.Min)
}
