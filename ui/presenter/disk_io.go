package presenter

import (
	"image"

	"github.com/soocke/roimask/domain/stack"
)

// DiskIO loads pair images from TIFF files and writes masks as TIFF.
type DiskIO struct{}

var (
	_ PairLoader = DiskIO{}
	_ MaskWriter = DiskIO{}
)

// Brightfield decodes the first page of a brightfield TIFF to 8-bit gray.
func (DiskIO) Brightfield(path string) (*image.Gray, error) {
	img, err := stack.ReadFrame(path)
	if err != nil {
		return nil, err
	}
	return stack.ToGray8(img), nil
}

// MovieFrame decodes the first frame of a movie TIFF to 8-bit gray.
// 16-bit frames are stretched to their own range.
func (DiskIO) MovieFrame(path string) (*image.Gray, error) {
	img, err := stack.ReadFrame(path)
	if err != nil {
		return nil, err
	}
	return stack.ToGray8(img), nil
}

// WriteMask writes mask as an 8-bit single-page TIFF, creating folders.
func (DiskIO) WriteMask(path string, mask *image.Gray) error {
	return stack.WriteFrame(path, mask)
}
