package roi

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func square(x0, y0, x1, y1 int) []image.Point {
	return []image.Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func TestRasterize_SquareIncludesBoundary(t *testing.T) {
	m := Rasterize(square(10, 10, 20, 20))
	require.Equal(t, FrameSize, m.Bounds().Dx())
	require.Equal(t, FrameSize, m.Bounds().Dy())
	require.Equal(t, 11*11, Area(m))
	require.Equal(t, Inside, m.GrayAt(10, 10).Y)
	require.Equal(t, Inside, m.GrayAt(20, 20).Y)
	require.Equal(t, Inside, m.GrayAt(15, 15).Y)
	require.Equal(t, Outside, m.GrayAt(21, 15).Y)
	require.Equal(t, Outside, m.GrayAt(9, 9).Y)
}

func TestRasterize_Idempotent(t *testing.T) {
	pts := []image.Point{{5, 7}, {300, 40}, {350, 360}, {120, 200}, {20, 330}}
	a := Rasterize(pts)
	b := Rasterize(pts)
	require.True(t, bytes.Equal(a.Pix, b.Pix))

	// re-rasterizing into a dirty buffer gives the same raster
	dirty := NewMask()
	for i := range dirty.Pix {
		dirty.Pix[i] = 7
	}
	RasterizeInto(dirty, pts)
	require.True(t, bytes.Equal(a.Pix, dirty.Pix))
}

func TestRasterize_FewerThanThreePointsIsEmpty(t *testing.T) {
	for _, pts := range [][]image.Point{nil, {{4, 4}}, {{4, 4}, {100, 100}}} {
		m := Rasterize(pts)
		require.Zero(t, Area(m), "points=%v", pts)
	}
}

func TestRasterize_ClipsOutsideFrame(t *testing.T) {
	m := Rasterize(square(-50, -50, 10, 10))
	require.Equal(t, 11*11, Area(m))
	m = Rasterize(square(360, 360, 500, 500))
	require.Equal(t, 10*10, Area(m))
}

func TestRasterize_OnlyBinaryValues(t *testing.T) {
	m := Rasterize([]image.Point{{0, 0}, {369, 10}, {200, 369}})
	for _, v := range m.Pix {
		if v != Inside && v != Outside {
			t.Fatalf("unexpected mask value %d", v)
		}
	}
	require.Positive(t, Area(m))
}

func TestLine_Endpoints(t *testing.T) {
	var got []image.Point
	Line(image.Pt(0, 0), image.Pt(3, 1), func(x, y int) { got = append(got, image.Pt(x, y)) })
	require.Equal(t, image.Pt(0, 0), got[0])
	require.Equal(t, image.Pt(3, 1), got[len(got)-1])
	require.Len(t, got, 4)
}

func TestPolygon_UndoAndReset(t *testing.T) {
	p := &Polygon{}
	require.False(t, p.Undo())
	p.Add(image.Pt(1, 1))
	p.Add(image.Pt(2, 2))
	require.True(t, p.Undo())
	require.Equal(t, []image.Point{{1, 1}}, p.Points())
	p.Reset()
	require.Zero(t, p.Len())
	require.Nil(t, p.Points())
}

func TestPolygon_MoveOnlyTouchesSelected(t *testing.T) {
	p := NewPolygon(image.Pt(10, 10), image.Pt(50, 10), image.Pt(50, 50), image.Pt(10, 50))
	before := p.Points()
	require.True(t, p.Move(2, image.Pt(80, 90)))
	after := p.Points()
	for i := range before {
		if i == 2 {
			require.Equal(t, image.Pt(80, 90), after[i])
			continue
		}
		require.Equal(t, before[i], after[i])
	}
	require.False(t, p.Move(9, image.Pt(0, 0)))
}

func TestPolygon_NearestStrictRadius(t *testing.T) {
	p := NewPolygon(image.Pt(100, 100), image.Pt(105, 100))
	i, ok := p.Nearest(image.Pt(103, 100), SelectRadius)
	require.True(t, ok)
	require.Equal(t, 0, i, "first vertex within radius wins")

	_, ok = p.Nearest(image.Pt(100, 109), SelectRadius)
	require.True(t, ok)
	_, ok = p.Nearest(image.Pt(90, 100), SelectRadius)
	require.False(t, ok, "distance equal to radius is not a hit")
}

func TestPolygon_PointsIsCopy(t *testing.T) {
	p := NewPolygon(image.Pt(1, 2))
	pts := p.Points()
	pts[0] = image.Pt(9, 9)
	v, _ := p.At(0)
	require.Equal(t, image.Pt(1, 2), v)
}
