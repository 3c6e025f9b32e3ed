package slice

import (
	"testing"

	"github.com/gdsfactory/xsection-go/geom"
	"github.com/gdsfactory/xsection-go/mask"
	"github.com/gdsfactory/xsection-go/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(x1, y1, x2, y2 int64) geom.Polygon { return geom.NewBox(x1, y1, x2, y2).ToPolygon() }

func testWindow() *window.Window {
	w := window.New()
	w.SetHeight(2)
	w.SetDepth(2)
	w.SetBelow(1)
	w.SetExtend(0.5)
	w.SetDbu(1) // 1 dbu = 1 um, so test coordinates can be written as plain integers
	return w
}

func testCtx() *Context {
	return NewContext(testWindow(), geom.Edge{P1: geom.Point{X: 0, Y: 0}, P2: geom.Point{X: 100, Y: 0}})
}

func TestMaskPolygonsSweep(t *testing.T) {
	ctx := testCtx()
	top := []geom.Polygon{box(20, -10, 80, 10)}
	mp := ctx.MaskPolygons(top)
	require.Len(t, mp, 1)
	b := mp[0].BBox()
	assert.Equal(t, int64(20), b.P1.X)
	assert.Equal(t, int64(80), b.P2.X)
	assert.Equal(t, ctx.HeightDbu(), b.P2.Y)
	assert.Equal(t, -(ctx.DepthDbu() + ctx.BelowDbu()), b.P1.Y)
}

func TestMaskPolygonsDiagonalRuler(t *testing.T) {
	w := testWindow()
	ctx := NewContext(w, geom.Edge{P1: geom.Point{X: 0, Y: 0}, P2: geom.Point{X: 100, Y: 100}})
	top := []geom.Polygon{box(30, 30, 70, 70)}
	mp := ctx.MaskPolygons(top)
	require.NotEmpty(t, mp)
}

func TestMaskPolygonsDisjointRegions(t *testing.T) {
	ctx := testCtx()
	top := []geom.Polygon{box(0, -5, 20, 5), box(60, -5, 90, 5)}
	mp := ctx.MaskPolygons(top)
	require.Len(t, mp, 2)
}

func TestGrowIntoDefaultAir(t *testing.T) {
	ctx := testCtx()
	e := NewEngine(ctx, nil)
	top := []geom.Polygon{box(0, -50, 100, 50)}

	result, err := e.Grow(top, GrowEtchArgs{Z: 0.5, Mode: "square"})
	require.NoError(t, err)
	require.False(t, result.IsEmpty())

	// The grown region is no longer air.
	overlap := geom.Boolean(e.Air.Polys, result.Polys, geom.And)
	assert.Empty(t, overlap)
}

func TestGrowIntoNamedMaterial(t *testing.T) {
	ctx := testCtx()
	e := NewEngine(ctx, nil)
	top := []geom.Polygon{box(0, -50, 100, 50)}

	// poly's top edge sits exactly on the air/mask interface (y=0), so the
	// seed edges can be restricted to it: growing "into" poly converts it.
	poly := mask.FromPolygons(ctx, []geom.Polygon{box(-10, -200, 110, 0)})
	result, err := e.Grow(top, GrowEtchArgs{Z: 0.5, Mode: "square", Into: []*mask.Set{&poly}})
	require.NoError(t, err)
	require.False(t, result.IsEmpty())

	overlap := geom.Boolean(poly.Polys, result.Polys, geom.And)
	assert.Empty(t, overlap)
}

func TestEtchRequiresInto(t *testing.T) {
	ctx := testCtx()
	e := NewEngine(ctx, nil)
	top := []geom.Polygon{box(0, -50, 100, 50)}

	_, err := e.Etch(top, GrowEtchArgs{Z: 0.3, Mode: "square"})
	assert.Error(t, err)
}

func TestEtchExposesAir(t *testing.T) {
	ctx := testCtx()
	e := NewEngine(ctx, nil)
	top := []geom.Polygon{box(0, -50, 100, 50)}

	bulk := mask.FromPolygons(ctx, []geom.Polygon{box(-10, -200, 110, 0)})
	airBefore := len(e.Air.Polys)

	_, err := e.Etch(top, GrowEtchArgs{Z: 0.5, Mode: "square", Into: []*mask.Set{&bulk}})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(e.Air.Polys), airBefore)
}

func TestPlanarizeRequiresInto(t *testing.T) {
	ctx := testCtx()
	e := NewEngine(ctx, nil)
	err := e.Planarize(PlanarizeArgs{})
	assert.Error(t, err)
}

// totalArea sums the area of every polygon in ps (Polygon.Area is already
// unsigned).
func totalArea(ps []geom.Polygon) float64 {
	var sum float64
	for _, p := range ps {
		sum += p.Area()
	}
	return sum
}

// TestGrowRoundKernelSurvivesBoolean checks that a round-kernel grow keeps
// its circumscribed-polygon corners all the way through produceGeom's
// returned region, not just through BuildKernel's raw output: a single
// horizontal seed edge swept with a round kernel produces a many-vertex
// convex body whose area is below the square-kernel sweep's area and above
// half of it. If Boolean/Merge rasterized
// the body back onto an axis-aligned grid (as an earlier revision did),
// this body would collapse to a 4-vertex rectangle matching the square
// case exactly.
func TestGrowRoundKernelSurvivesBoolean(t *testing.T) {
	w := window.New()
	w.SetHeight(20)
	w.SetDepth(20)
	w.SetBelow(1)
	w.SetExtend(0.5)
	w.SetDbu(1)
	ruler := geom.Edge{P1: geom.Point{X: 0, Y: 0}, P2: geom.Point{X: 100, Y: 0}}
	top := []geom.Polygon{box(20, -50, 80, 50)}

	square, err := NewEngine(NewContext(w, ruler), nil).Grow(top, GrowEtchArgs{Z: 5, XY: 5, Mode: "square"})
	require.NoError(t, err)
	require.False(t, square.IsEmpty())

	round, err := NewEngine(NewContext(w, ruler), nil).Grow(top, GrowEtchArgs{Z: 5, XY: 5, Mode: "round"})
	require.NoError(t, err)
	require.False(t, round.IsEmpty())

	maxVerts := 0
	for _, p := range round.Polys {
		if n := len(p.Points); n > maxVerts {
			maxVerts = n
		}
	}
	assert.Greater(t, maxVerts, 4)

	roundArea := totalArea(round.Polys)
	squareArea := totalArea(square.Polys)
	assert.Less(t, roundArea, squareArea)
	assert.Greater(t, roundArea, squareArea*0.5)
}

func TestPlanarizeTo(t *testing.T) {
	ctx := testCtx()
	e := NewEngine(ctx, nil)
	bulk := mask.FromPolygons(ctx, []geom.Polygon{box(-1, -200, 101, 2)})

	to := 1.0
	err := e.Planarize(PlanarizeArgs{Into: []*mask.Set{&bulk}, To: &to})
	require.NoError(t, err)
	b := bulk.BBox()
	assert.Equal(t, int64(1), b.P2.Y)
}
