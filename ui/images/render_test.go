package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestRenderGray_FullWindowIsIdentity(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 10)
	}
	out := RenderGray(src, Window{X0: -0.5, X1: 3.5, Y0: -0.5, Y1: 3.5}, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			got := out.NRGBAAt(x, y)
			want := src.GrayAt(x, y).Y
			if got.R != want || got.A != 0xff {
				t.Fatalf("pixel %d,%d = %v want %d", x, y, got, want)
			}
		}
	}
}

func TestRenderGray_UpscalesAndPadsOutside(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(1, 1, color.Gray{Y: 200})
	// window twice as wide as the image, image in the top-left quarter
	out := RenderGray(src, Window{X0: -0.5, X1: 3.5, Y0: -0.5, Y1: 3.5}, 8)
	if out.NRGBAAt(3, 3).R != 200 {
		t.Fatalf("expected upscaled pixel, got %v", out.NRGBAAt(3, 3))
	}
	if out.NRGBAAt(7, 7) != Background {
		t.Fatalf("outside the image should be background, got %v", out.NRGBAAt(7, 7))
	}
}

func TestDrawOverlay(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	lime := color.NRGBA{G: 255, A: 255}
	DrawOverlay(dst, []image.Point{{2, 2}, {15, 2}, {15, 15}}, lime)
	if dst.NRGBAAt(8, 2) != lime {
		t.Fatalf("edge pixel missing")
	}
	if dst.NRGBAAt(8, 8) != lime {
		t.Fatalf("closing edge pixel missing")
	}
	if dst.NRGBAAt(15, 17) != lime {
		t.Fatalf("marker pixel missing")
	}
	if dst.NRGBAAt(3, 12) == lime {
		t.Fatalf("outside pixel painted")
	}

	single := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	DrawOverlay(single, []image.Point{{0, 0}}, lime)
	if single.NRGBAAt(0, 0) != lime || single.NRGBAAt(5, 5) == lime {
		t.Fatalf("single point should only draw a clipped marker")
	}
}

func TestSliderGeometry(t *testing.T) {
	for _, frac := range []float64{0, 0.25, 1} {
		x := KnobCenter(200, frac)
		if got := SliderFraction(200, x); got < frac-0.01 || got > frac+0.01 {
			t.Fatalf("fraction %v round-tripped to %v", frac, got)
		}
	}
	if SliderFraction(200, -50) != 0 || SliderFraction(200, 500) != 1 {
		t.Fatalf("fraction should clamp")
	}
	img := RenderSlider(200, 20, 0.5, color.Black, color.White)
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 20 {
		t.Fatalf("unexpected slider size %v", img.Bounds())
	}
}

func TestEncodePNG(t *testing.T) {
	data := EncodePNG(Placeholder(5))
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 5 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
	if EncodePNG(nil) != nil {
		t.Fatalf("nil image should encode to nil")
	}
}
