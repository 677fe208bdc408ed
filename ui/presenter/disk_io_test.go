package presenter

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/soocke/roimask/domain/roi"
	"github.com/soocke/roimask/domain/stack"
)

func TestDiskIO_MaskRoundTrip(t *testing.T) {
	dir := t.TempDir()
	mask := roi.Rasterize([]image.Point{{10, 10}, {20, 10}, {20, 20}, {10, 20}})
	path := filepath.Join(dir, "masks", "cell_002.tif")
	if err := (DiskIO{}).WriteMask(path, mask); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := DiskIO{}.Brightfield(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if roi.Area(got) != 121 || got.Bounds().Dx() != roi.FrameSize {
		t.Fatalf("unexpected mask read back: area=%d bounds=%v", roi.Area(got), got.Bounds())
	}
}

func TestDiskIO_MovieFrameUsesFirstPage(t *testing.T) {
	dir := t.TempDir()
	a := image.NewGray16(image.Rect(0, 0, 4, 4))
	a.Pix[1] = 10 // pixel 0 = 10, others 0
	b := image.NewGray16(image.Rect(0, 0, 4, 4))
	path := filepath.Join(dir, "cell_001_cleaned.tif")
	if err := stack.WriteStack(path, stack.New(a, b)); err != nil {
		t.Fatalf("write stack: %v", err)
	}
	got, err := DiskIO{}.MovieFrame(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Pix[0] != 255 || got.Pix[1] != 0 {
		t.Fatalf("expected stretched first frame, got %v", got.Pix[:2])
	}
	if _, err := (DiskIO{}).MovieFrame(filepath.Join(dir, "missing.tif")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
