// Package stack reads, masks and writes grayscale TIFF stacks: single
// brightfield frames, masks and multi-page time-lapse movies.
package stack

import (
	"errors"
	"image"
	"image/color"
)

// ErrEmpty is returned for stacks without frames.
var ErrEmpty = errors.New("stack has no frames")

// Stack is an ordered list of equally sized grayscale frames. Frames are
// *image.Gray or *image.Gray16.
type Stack struct {
	Frames []image.Image
}

// New builds a stack from frames, normalising each one to Gray or Gray16.
func New(frames ...image.Image) *Stack {
	s := &Stack{Frames: make([]image.Image, 0, len(frames))}
	for _, f := range frames {
		s.Frames = append(s.Frames, normalize(f))
	}
	return s
}

// Len reports the number of frames.
func (s *Stack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Bounds returns the bounds of the first frame.
func (s *Stack) Bounds() image.Rectangle {
	if s.Len() == 0 {
		return image.Rectangle{}
	}
	return s.Frames[0].Bounds()
}

// Frame returns frame i, or the last frame when i is past the end.
// Masks with fewer slices than a movie keep applying their last slice.
func (s *Stack) Frame(i int) image.Image {
	if s.Len() == 0 {
		return nil
	}
	if i < 0 {
		i = 0
	}
	if i >= len(s.Frames) {
		i = len(s.Frames) - 1
	}
	return s.Frames[i]
}

// BitDepth returns 8 or 16 depending on the first frame.
func (s *Stack) BitDepth() int {
	if s.Len() > 0 {
		if _, ok := s.Frames[0].(*image.Gray16); ok {
			return 16
		}
	}
	return 8
}

// normalize converts any decoded image to *image.Gray or *image.Gray16,
// keeping 8-bit data 8-bit.
func normalize(img image.Image) image.Image {
	switch v := img.(type) {
	case nil:
		return nil
	case *image.Gray, *image.Gray16:
		return v
	}
	b := img.Bounds()
	if img.ColorModel() == color.GrayModel {
		out := image.NewGray(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				out.SetGray(x, y, color.GrayModel.Convert(img.At(x, y)).(color.Gray))
			}
		}
		return out
	}
	out := image.NewGray16(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.SetGray16(x, y, color.Gray16Model.Convert(img.At(x, y)).(color.Gray16))
		}
	}
	return out
}

// ToGray8 returns an 8-bit copy of img for display. 8-bit frames are copied
// as-is; deeper frames are stretched linearly from their min..max range.
func ToGray8(img image.Image) *image.Gray {
	img = normalize(img)
	switch v := img.(type) {
	case nil:
		return nil
	case *image.Gray:
		return &image.Gray{Pix: append([]uint8(nil), v.Pix...), Stride: v.Stride, Rect: v.Rect}
	case *image.Gray16:
		b := v.Bounds()
		lo, hi := uint16(0xffff), uint16(0)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				p := v.Gray16At(x, y).Y
				lo = min(lo, p)
				hi = max(hi, p)
			}
		}
		out := image.NewGray(b)
		if hi <= lo {
			return out
		}
		span := float64(hi - lo)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				p := v.Gray16At(x, y).Y
				out.SetGray(x, y, color.Gray{Y: uint8(float64(p-lo)*255/span + 0.5)})
			}
		}
		return out
	}
	return nil
}

func isZero(img image.Image, x, y int) bool {
	switch v := img.(type) {
	case *image.Gray:
		return v.Pix[v.PixOffset(x, y)] == 0
	case *image.Gray16:
		i := v.PixOffset(x, y)
		return v.Pix[i] == 0 && v.Pix[i+1] == 0
	}
	r, g, b, _ := img.At(x, y).RGBA()
	return r == 0 && g == 0 && b == 0
}

func setZero(img image.Image, x, y int) {
	switch v := img.(type) {
	case *image.Gray:
		v.Pix[v.PixOffset(x, y)] = 0
	case *image.Gray16:
		i := v.PixOffset(x, y)
		v.Pix[i], v.Pix[i+1] = 0, 0
	}
}
