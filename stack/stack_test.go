package stack

import (
	"testing"

	"github.com/gdsfactory/xsection-go/geom"
	"github.com/gdsfactory/xsection-go/slab"
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
	w.SetDelta(0.2)
	w.SetDbu(1)
	return w
}

func fullXY() []geom.Polygon { return []geom.Polygon{box(-1000, -1000, 1000, 1000)} }

func TestMaskToSeed(t *testing.T) {
	ctx := NewContext(testWindow())
	e := NewEngine(ctx, fullXY(), nil)

	mask := []geom.Polygon{box(0, 0, 100, 100)}
	seed := e.MaskToSeed(mask)
	require.False(t, seed.IsEmpty())

	// The seed sits just below the air/wafer interface (z=0), one
	// delta-dbu thick: growing air by delta then subtracting the original
	// air exposes a border strip on both sides of the air stack's z-range
	// ([-delta,0) and [height,height+delta)), but only the lower strip lies
	// inside the mask's full vertical span (which tops out at z=height), so
	// only it survives the AND.
	_, zMin, zMax := seed.BBox()
	assert.Equal(t, -ctx.DeltaDbu(), zMin)
	assert.Equal(t, int64(0), zMax)
}

func TestGrow3DIntoDefaultAir(t *testing.T) {
	ctx := NewContext(testWindow())
	e := NewEngine(ctx, fullXY(), nil)

	mask := []geom.Polygon{box(0, 0, 100, 100)}
	seed := e.MaskToSeed(mask)

	result, err := e.Grow(seed, GrowEtchArgs{Z: 1, Mode: "square"})
	require.NoError(t, err)
	assert.False(t, result.IsEmpty())
}

func TestGrow3DOctagonUnsupported(t *testing.T) {
	ctx := NewContext(testWindow())
	e := NewEngine(ctx, fullXY(), nil)
	mask := []geom.Polygon{box(0, 0, 100, 100)}
	seed := e.MaskToSeed(mask)

	// octagon mode has no 3D analogue (pyxs3D_lib.py raises NotImplementedError).
	_, err := e.Grow(seed, GrowEtchArgs{Z: 1, Mode: "octagon"})
	assert.Error(t, err)
}

func TestGrow3DPositivePrebiasUnsupported(t *testing.T) {
	ctx := NewContext(testWindow())
	e := NewEngine(ctx, fullXY(), nil)
	mask := []geom.Polygon{box(0, 0, 100, 100)}
	seed := e.MaskToSeed(mask)

	_, err := e.Grow(seed, GrowEtchArgs{Z: 1, Mode: "square", Bias: 5})
	assert.Error(t, err)
}

func TestEtch3DRequiresInto(t *testing.T) {
	ctx := NewContext(testWindow())
	e := NewEngine(ctx, fullXY(), nil)
	mask := []geom.Polygon{box(0, 0, 100, 100)}
	seed := e.MaskToSeed(mask)

	_, err := e.Etch(seed, GrowEtchArgs{Z: 1, Mode: "square"})
	assert.Error(t, err)
}

func TestEtch3DExposesAir(t *testing.T) {
	ctx := NewContext(testWindow())
	e := NewEngine(ctx, fullXY(), nil)
	mask := []geom.Polygon{box(0, 0, 100, 100)}
	seed := e.MaskToSeed(mask)

	bulk := slab.Stack{Slabs: []slab.Slab{{Mask: fullXY(), ZBottom: -300, Thickness: 300}}}
	_, err := e.Etch(seed, GrowEtchArgs{Z: 1, Mode: "square", Into: []*slab.Stack{&bulk}})
	require.NoError(t, err)
	assert.False(t, e.Air.IsEmpty())
}

func TestPlanarize3DRequiresInto(t *testing.T) {
	ctx := NewContext(testWindow())
	e := NewEngine(ctx, fullXY(), nil)
	err := e.Planarize(PlanarizeArgs{FullXY: fullXY()})
	assert.Error(t, err)
}

func TestPlanarize3DTo(t *testing.T) {
	ctx := NewContext(testWindow())
	e := NewEngine(ctx, fullXY(), nil)
	bulk := slab.Stack{Slabs: []slab.Slab{{Mask: fullXY(), ZBottom: -300, Thickness: 302}}}

	to := 1.0
	err := e.Planarize(PlanarizeArgs{Into: []*slab.Stack{&bulk}, To: &to, FullXY: fullXY()})
	require.NoError(t, err)
	_, _, zMax := bulk.BBox()
	assert.Equal(t, int64(1), zMax)
}
