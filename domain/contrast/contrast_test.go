package contrast

import (
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomFrame(seed int64, w, h int) *image.Gray {
	r := rand.New(rand.NewSource(seed))
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(r.Intn(256))
	}
	return img
}

func TestEnhance_IdentityFactor(t *testing.T) {
	src := randomFrame(1, 37, 23)
	out := Enhance(src, Identity)
	require.Equal(t, src.Pix, out.Pix)
	out.Pix[0]++
	require.NotEqual(t, src.Pix[0], out.Pix[0], "output must not alias input")
}

func TestEnhance_OutputWithinRange(t *testing.T) {
	src := randomFrame(2, 64, 64)
	for _, f := range []float64{Min, -0.5, 0, 0.3, 2, Max} {
		out := Enhance(src, f)
		require.Equal(t, src.Bounds(), out.Bounds())
		for _, v := range out.Pix {
			require.GreaterOrEqual(t, int(v), 0)
			require.LessOrEqual(t, int(v), 255)
		}
	}
}

func TestEnhance_ZeroFactorFlattensToMean(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	copy(src.Pix, []uint8{10, 20, 30, 40})
	require.InDelta(t, 25.0, Mean(src), 1e-9)
	out := Enhance(src, 0)
	for _, v := range out.Pix {
		require.Equal(t, uint8(25), v)
	}
}

func TestEnhance_StretchClips(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 1))
	copy(src.Pix, []uint8{0, 128, 255})
	out := Enhance(src, Max)
	require.Equal(t, uint8(0), out.Pix[0])
	require.Equal(t, uint8(255), out.Pix[2])
}

func TestEnhance_NegativeFactorInverts(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	copy(src.Pix, []uint8{100, 200})
	out := Enhance(src, -1)
	require.Equal(t, []uint8{200, 100}, out.Pix)
}

func TestClamp(t *testing.T) {
	require.Equal(t, Min, Clamp(-3))
	require.Equal(t, Max, Clamp(9))
	require.Equal(t, 1.5, Clamp(1.5))
}
