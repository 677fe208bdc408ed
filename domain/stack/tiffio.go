package stack

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	chaitiff "github.com/chai2010/tiff"
	xtiff "golang.org/x/image/tiff"
)

// Probe returns the dimensions of the first page without decoding pixels.
func Probe(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, err
	}
	defer f.Close()
	cfg, err := xtiff.DecodeConfig(f)
	if err != nil {
		return image.Config{}, fmt.Errorf("probe %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// ReadFrame decodes the first page of a TIFF file.
func ReadFrame(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := xtiff.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return normalize(img), nil
}

// ReadStack decodes every page of a TIFF file.
func ReadStack(path string) (*Stack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pages, errs, err := chaitiff.DecodeAll(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	s := &Stack{}
	for i, page := range pages {
		if len(page) == 0 {
			continue
		}
		if i < len(errs) && len(errs[i]) > 0 && errs[i][0] != nil {
			return nil, fmt.Errorf("decode %s page %d: %w", filepath.Base(path), i+1, errs[i][0])
		}
		s.Frames = append(s.Frames, normalize(page[0]))
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), ErrEmpty)
	}
	b := s.Bounds()
	for i, fr := range s.Frames {
		if fr.Bounds().Size() != b.Size() {
			return nil, fmt.Errorf("decode %s: page %d is %v, want %v", filepath.Base(path), i+1, fr.Bounds().Size(), b.Size())
		}
	}
	return s, nil
}

// WriteFrame writes img as a single-page uncompressed TIFF, creating parent
// directories as needed.
func WriteFrame(path string, img image.Image) error {
	if img == nil {
		return ErrEmpty
	}
	return writeFile(path, func(w io.Writer) error {
		return xtiff.Encode(w, normalize(img), &xtiff.Options{Compression: xtiff.Uncompressed})
	})
}

// WriteStack writes every frame of s as one multi-page TIFF.
func WriteStack(path string, s *Stack) error {
	return writeFile(path, func(w io.Writer) error { return EncodeStack(w, s) })
}

func writeFile(path string, encode func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := encode(bw); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// TIFF field types and tags used by EncodeStack.
const (
	typeShort = 3
	typeLong  = 4

	tagNewSubfileType            = 254
	tagImageWidth                = 256
	tagImageLength               = 257
	tagBitsPerSample             = 258
	tagCompression               = 259
	tagPhotometricInterpretation = 262
	tagStripOffsets              = 273
	tagSamplesPerPixel           = 277
	tagRowsPerStrip              = 278
	tagStripByteCounts           = 279

	ifdEntries = 10
	ifdSize    = 2 + ifdEntries*12 + 4
)

// EncodeStack writes s as a little-endian baseline TIFF with one
// uncompressed, single-strip IFD per frame. 16-bit stacks stay 16-bit.
func EncodeStack(w io.Writer, s *Stack) error {
	if s.Len() == 0 {
		return ErrEmpty
	}
	depth := s.BitDepth()
	size := s.Bounds().Size()
	le := binary.LittleEndian

	out := make([]byte, 0, 8)
	out = append(out, 'I', 'I')
	out = le.AppendUint16(out, 42)
	out = le.AppendUint32(out, 8)
	if _, err := w.Write(out); err != nil {
		return err
	}

	offset := uint32(8)
	for i, fr := range s.Frames {
		if fr.Bounds().Size() != size {
			return fmt.Errorf("frame %d is %v, want %v", i+1, fr.Bounds().Size(), size)
		}
		data := rawPixels(fr, depth)
		dataOff := offset + ifdSize
		padded := uint32(len(data))
		if padded%2 == 1 {
			padded++
		}
		next := uint32(0)
		if i < len(s.Frames)-1 {
			next = dataOff + padded
		}

		ifd := make([]byte, 0, ifdSize)
		ifd = le.AppendUint16(ifd, ifdEntries)
		entry := func(tag, typ uint16, val uint32) {
			ifd = le.AppendUint16(ifd, tag)
			ifd = le.AppendUint16(ifd, typ)
			ifd = le.AppendUint32(ifd, 1)
			if typ == typeShort {
				ifd = le.AppendUint16(ifd, uint16(val))
				ifd = le.AppendUint16(ifd, 0)
				return
			}
			ifd = le.AppendUint32(ifd, val)
		}
		entry(tagNewSubfileType, typeLong, 0)
		entry(tagImageWidth, typeLong, uint32(size.X))
		entry(tagImageLength, typeLong, uint32(size.Y))
		entry(tagBitsPerSample, typeShort, uint32(depth))
		entry(tagCompression, typeShort, 1)
		entry(tagPhotometricInterpretation, typeShort, 1)
		entry(tagStripOffsets, typeLong, dataOff)
		entry(tagSamplesPerPixel, typeShort, 1)
		entry(tagRowsPerStrip, typeLong, uint32(size.Y))
		entry(tagStripByteCounts, typeLong, uint32(len(data)))
		ifd = le.AppendUint32(ifd, next)

		if _, err := w.Write(ifd); err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		if padded != uint32(len(data)) {
			if _, err := w.Write([]byte{0}); err != nil {
				return err
			}
		}
		offset = dataOff + padded
	}
	return nil
}

// rawPixels returns the row-major samples of fr at the given depth,
// little-endian for 16-bit.
func rawPixels(fr image.Image, depth int) []byte {
	b := fr.Bounds()
	w, h := b.Dx(), b.Dy()
	if depth == 8 {
		g, ok := fr.(*image.Gray)
		if !ok {
			g = ToGray8(fr)
		}
		out := make([]byte, 0, w*h)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := g.PixOffset(b.Min.X, y)
			out = append(out, g.Pix[i:i+w]...)
		}
		return out
	}
	g16, ok := fr.(*image.Gray16)
	if !ok {
		g16 = normalizeGray16(fr)
	}
	out := make([]byte, 0, w*h*2)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = binary.LittleEndian.AppendUint16(out, g16.Gray16At(x, y).Y)
		}
	}
	return out
}

func normalizeGray16(img image.Image) *image.Gray16 {
	b := img.Bounds()
	out := image.NewGray16(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}
