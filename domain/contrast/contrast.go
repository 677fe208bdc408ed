// Package contrast implements the preview-only contrast stretch applied to
// movie frames while annotating.
package contrast

import (
	"image"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Slider bounds and defaults for the contrast factor.
const (
	Min      = -1.0
	Max      = 5.0
	Step     = 0.05
	Identity = 1.0
)

// Clamp limits f to [Min, Max].
func Clamp(f float64) float64 {
	if math.IsNaN(f) {
		return Identity
	}
	return math.Max(Min, math.Min(Max, f))
}

// Mean returns the mean intensity of src.
func Mean(src *image.Gray) float64 {
	if src == nil || len(src.Pix) == 0 {
		return 0
	}
	vals := make([]float64, 0, src.Bounds().Dx()*src.Bounds().Dy())
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, y) : src.PixOffset(b.Min.X, y)+b.Dx()]
		for _, v := range row {
			vals = append(vals, float64(v))
		}
	}
	return stat.Mean(vals, nil)
}

// Enhance scales every pixel of src around the frame mean by factor,
// rounding and clipping to [0, 255]. src is not modified. A factor of
// Identity returns an exact copy.
func Enhance(src *image.Gray, factor float64) *image.Gray {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	dst := image.NewGray(b)
	if factor == Identity {
		copy(dst.Pix, src.Pix)
		return dst
	}
	mean := Mean(src)
	var lut [256]uint8
	for v := 0; v < 256; v++ {
		lut[v] = clip((float64(v)-mean)*factor + mean)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		si := src.PixOffset(b.Min.X, y)
		di := dst.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[di+x] = lut[src.Pix[si+x]]
		}
	}
	return dst
}

func clip(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
