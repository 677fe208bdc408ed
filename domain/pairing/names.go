package pairing

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// TiffExt is the extension of every image this tool reads or writes.
	TiffExt = ".tif"
	// CleanedSuffix marks pre-processed movie stacks.
	CleanedSuffix = "_cleaned.tif"
)

// ExtractIndex returns the number held by the last "_"-separated segment of
// name, cut at that segment's first dot ("cell_007.tif" -> 7).
func ExtractIndex(name string) (int, error) {
	seg := filepath.Base(name)
	if i := strings.LastIndexByte(seg, '_'); i >= 0 {
		seg = seg[i+1:]
	}
	if i := strings.IndexByte(seg, '.'); i >= 0 {
		seg = seg[:i]
	}
	v, err := strconv.Atoi(seg)
	if err != nil {
		return 0, fmt.Errorf("%w: no numeric index in %q", ErrFormula, name)
	}
	return v, nil
}

// Pad renders an index as a zero-padded 3-digit segment.
func Pad(index int) string { return fmt.Sprintf("%03d", index) }

// MovieName derives the cleaned-movie filename paired with a brightfield
// image: every occurrence of the padded brightfield index is replaced by the
// padded mapped index, then ".tif" becomes "_cleaned.tif".
func MovieName(brightfield string, f Formula) (string, error) {
	idx, err := ExtractIndex(brightfield)
	if err != nil {
		return "", err
	}
	mapped, err := f.Apply(idx)
	if err != nil {
		return "", err
	}
	name := strings.ReplaceAll(brightfield, Pad(idx), Pad(mapped))
	return strings.ReplaceAll(name, TiffExt, CleanedSuffix), nil
}

// MovieStem strips the cleaned suffix ("cell_005_cleaned.tif" -> "cell_005").
func MovieStem(movie string) string {
	return strings.TrimSuffix(movie, CleanedSuffix)
}

// MaskName derives the mask filename for a cleaned movie: the last segment of
// the movie stem is replaced by the padded mapped index.
func MaskName(movie string, f Formula) (string, error) {
	stem := MovieStem(movie)
	parts := strings.Split(stem, "_")
	idx, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return "", fmt.Errorf("%w: no numeric index in %q", ErrFormula, movie)
	}
	mapped, err := f.Apply(idx)
	if err != nil {
		return "", err
	}
	parts[len(parts)-1] = Pad(mapped) + TiffExt
	return strings.Join(parts, "_"), nil
}
