package stack

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// ApplyMask zeroes every movie pixel whose mask pixel is zero, in place.
// Movie frame i is paired with mask frame i; a mask with fewer frames keeps
// applying its last one, so a single-frame mask is broadcast over the movie.
// Only the overlap of the two frame rectangles is visited. It returns the
// number of pixels forced to zero.
func ApplyMask(movie, mask *Stack) (int, error) {
	if movie.Len() == 0 || mask.Len() == 0 {
		return 0, ErrEmpty
	}
	zeroed := 0
	for i, fr := range movie.Frames {
		m := mask.Frame(i)
		fb, mb := fr.Bounds(), m.Bounds()
		w := min(fb.Dx(), mb.Dx())
		h := min(fb.Dy(), mb.Dy())
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if !isZero(m, mb.Min.X+x, mb.Min.Y+y) {
					continue
				}
				fx, fy := fb.Min.X+x, fb.Min.Y+y
				if !isZero(fr, fx, fy) {
					zeroed++
				}
				setZero(fr, fx, fy)
			}
		}
	}
	return zeroed, nil
}

// SequencePrefix is the basename prefix of exported sequence frames.
const SequencePrefix = "image"

// SequenceName returns the filename of frame n (1-based) in a sequence of
// total frames: "image0001.tif", widening past four digits when needed.
func SequenceName(n, total int) string {
	digits := max(4, len(strconv.Itoa(total)))
	return fmt.Sprintf("%s%0*d.tif", SequencePrefix, digits, n)
}

// ExportSequence writes each frame of s as its own TIFF into dir, numbered
// from 1, and returns the written paths.
func ExportSequence(dir string, s *Stack) ([]string, error) {
	if s.Len() == 0 {
		return nil, ErrEmpty
	}
	paths := make([]string, 0, s.Len())
	for i, fr := range s.Frames {
		p := filepath.Join(dir, SequenceName(i+1, s.Len()))
		if err := WriteFrame(p, fr); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
