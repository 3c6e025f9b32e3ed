package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdsfactory/xsection-go/geom"
	"github.com/gdsfactory/xsection-go/mask"
	"github.com/gdsfactory/xsection-go/window"
)

type fakeShape struct{ p geom.Polygon }

func (f fakeShape) Kind() mask.ShapeKind   { return mask.ShapePolygon }
func (f fakeShape) ToPolygon() geom.Polygon { return f.p }

type fakeLayout struct {
	dbu    float64
	layers []mask.LayerInfo
	shapes map[int][]mask.Instance
}

func (f fakeLayout) Dbu() float64            { return f.dbu }
func (f fakeLayout) Layers() []mask.LayerInfo { return f.layers }
func (f fakeLayout) ShapesTouching(cell mask.CellID, layerIndex int, box geom.Box) []mask.Instance {
	return f.shapes[layerIndex]
}

func box(x1, y1, x2, y2 int64) geom.Polygon { return geom.NewBox(x1, y1, x2, y2).ToPolygon() }

func testWindow() *window.Window {
	w := window.New()
	w.SetDbu(1)
	w.SetHeight(50)
	w.SetDepth(50)
	w.SetBelow(10)
	w.SetExtend(20)
	w.SetDelta(1)
	return w
}

func testLayout() fakeLayout {
	return fakeLayout{
		dbu:    1,
		layers: []mask.LayerInfo{{Index: 0, Layer: 1, Datatype: 0, Name: "poly"}},
		shapes: map[int][]mask.Instance{
			0: {{Shape: fakeShape{box(10, 0, 40, 1)}}},
		},
	}
}

func TestLayerResolvesAndLoads(t *testing.T) {
	rt := NewRuntime2D(testLayout(), 0, geom.Edge{P1: geom.Point{X: 0, Y: 0}, P2: geom.Point{X: 100, Y: 0}}, testWindow(), nil)
	ms, err := rt.Layer("poly")
	require.NoError(t, err)
	assert.False(t, ms.IsEmpty())
}

func TestLayerUnknownName(t *testing.T) {
	rt := NewRuntime2D(testLayout(), 0, geom.Edge{P1: geom.Point{X: 0, Y: 0}, P2: geom.Point{X: 100, Y: 0}}, testWindow(), nil)
	_, err := rt.Layer("nosuch")
	require.Error(t, err)
}

func TestDepositIntoAirThenEtch(t *testing.T) {
	rt := NewRuntime2D(testLayout(), 0, geom.Edge{P1: geom.Point{X: 0, Y: 0}, P2: geom.Point{X: 100, Y: 0}}, testWindow(), nil)
	ms, err := rt.Layer("poly")
	require.NoError(t, err)

	seed := rt.Mask(ms)
	grown, err := rt.GrowFrom(seed, GrowEtchArgs{Z: 5, Mode: "square"})
	require.NoError(t, err)
	assert.False(t, grown.IsEmpty())

	err = rt.Output("10/0", grown)
	require.NoError(t, err)
	require.Len(t, rt.Outputs, 1)
	assert.Equal(t, 10, rt.Outputs[0].LayerNumber)

	etched, err := rt.EtchFrom(rt.Mask(ms), GrowEtchArgs{Z: 2, Mode: "square", Into: []*Material{grown}})
	require.NoError(t, err)
	assert.False(t, etched.IsEmpty())
}

func TestEtchRequiresInto(t *testing.T) {
	rt := NewRuntime2D(testLayout(), 0, geom.Edge{P1: geom.Point{X: 0, Y: 0}, P2: geom.Point{X: 100, Y: 0}}, testWindow(), nil)
	_, err := rt.Etch(GrowEtchArgs{Z: 1, Mode: "square"})
	require.Error(t, err)
}

func TestDepositUniformConsumesAir(t *testing.T) {
	rt := NewRuntime2D(testLayout(), 0, geom.Edge{P1: geom.Point{X: 0, Y: 0}, P2: geom.Point{X: 100, Y: 0}}, testWindow(), nil)
	before := rt.Air().BBox()
	deposited, err := rt.Deposit(GrowEtchArgs{Z: 5, Mode: "square"})
	require.NoError(t, err)
	assert.False(t, deposited.IsEmpty())
	after := rt.Air().BBox()
	assert.NotEqual(t, before, after)
}

func TestOutputRejectsBadColor(t *testing.T) {
	rt := NewRuntime2D(testLayout(), 0, geom.Edge{P1: geom.Point{X: 0, Y: 0}, P2: geom.Point{X: 100, Y: 0}}, testWindow(), nil)
	m, err := rt.Deposit(GrowEtchArgs{Z: 5, Mode: "square"})
	require.NoError(t, err)
	err = rt.Output("10/0", m, 1.5, 0, 0)
	require.Error(t, err)
}

func TestPlanarizeRequiresInto(t *testing.T) {
	rt := NewRuntime2D(testLayout(), 0, geom.Edge{P1: geom.Point{X: 0, Y: 0}, P2: geom.Point{X: 100, Y: 0}}, testWindow(), nil)
	err := rt.Planarize(PlanarizeArgs{})
	require.Error(t, err)
}

func TestRunRecoversPanic(t *testing.T) {
	rt := NewRuntime2D(testLayout(), 0, geom.Edge{P1: geom.Point{X: 0, Y: 0}, P2: geom.Point{X: 100, Y: 0}}, testWindow(), nil)
	err := rt.Run(func(c Capabilities) error {
		panic("boom")
	})
	require.Error(t, err)
}

func TestRunSucceeds(t *testing.T) {
	rt := NewRuntime2D(testLayout(), 0, geom.Edge{P1: geom.Point{X: 0, Y: 0}, P2: geom.Point{X: 100, Y: 0}}, testWindow(), nil)
	err := rt.Run(func(c Capabilities) error {
		ms, err := c.Layer("poly")
		if err != nil {
			return err
		}
		seed := c.Mask(ms)
		grown, err := c.GrowFrom(seed, GrowEtchArgs{Z: 5, Mode: "square"})
		if err != nil {
			return err
		}
		return c.Output("10/0", grown)
	})
	require.NoError(t, err)
}

func TestRuntime3DMaskAndGrow(t *testing.T) {
	fullXY := []geom.Polygon{box(-20, -20, 120, 20)}
	rt := NewRuntime3D(testLayout(), 0, fullXY, testWindow(), nil)

	ms, err := rt.Layer("poly")
	require.NoError(t, err)

	seed := rt.Mask(ms)
	grown, err := rt.GrowFrom(seed, GrowEtchArgs{Z: 5, Mode: "square"})
	require.NoError(t, err)
	assert.False(t, grown.IsEmpty())

	err = rt.Output("10/0", grown)
	require.NoError(t, err)
	assert.NotEmpty(t, rt.Outputs)
	for _, rec := range rt.Outputs {
		assert.True(t, rec.Is3D)
		assert.GreaterOrEqual(t, rec.Thickness, int64(minExportSlabThickness))
	}
}

func TestRuntime3DTaperedGrowRejected(t *testing.T) {
	fullXY := []geom.Polygon{box(-20, -20, 120, 20)}
	rt := NewRuntime3D(testLayout(), 0, fullXY, testWindow(), nil)
	_, err := rt.Deposit(GrowEtchArgs{Z: 5, Mode: "square", Taper: 30})
	require.Error(t, err)
}
