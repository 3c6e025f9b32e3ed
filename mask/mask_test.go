package mask

import (
	"testing"

	"github.com/gdsfactory/xsection-go/geom"
	"github.com/gdsfactory/xsection-go/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCtx struct {
	dbu float64
	bg  []geom.Polygon
}

func (f fakeCtx) Dbu() float64              { return f.dbu }
func (f fakeCtx) Background() []geom.Polygon { return f.bg }

func box(x1, y1, x2, y2 int64) geom.Polygon { return geom.NewBox(x1, y1, x2, y2).ToPolygon() }

func TestAddSubMask(t *testing.T) {
	ctx := fakeCtx{dbu: 0.001}
	a := FromPolygons(ctx, []geom.Polygon{box(0, 0, 10, 10)})
	b := FromPolygons(ctx, []geom.Polygon{box(5, 5, 15, 15)})

	sum := a.Or(b)
	assert.Equal(t, geom.Box{Point1(0, 0), Point1(15, 15)}, geom.BBox(sum.Polys))

	a.Add(b)
	assert.Equal(t, geom.BBox(sum.Polys), geom.BBox(a.Polys))
}

func Point1(x, y int64) geom.Point { return geom.Point{X: x, Y: y} }

func TestInverted(t *testing.T) {
	bg := []geom.Polygon{box(0, 0, 100, 100)}
	ctx := fakeCtx{dbu: 0.001, bg: bg}
	a := FromPolygons(ctx, []geom.Polygon{box(0, 0, 10, 10)})
	inv := a.Inverted()
	assert.False(t, inv.IsEmpty())
}

func TestSizedMicrometres(t *testing.T) {
	ctx := fakeCtx{dbu: 0.001}
	a := FromPolygons(ctx, []geom.Polygon{box(0, 0, 1000, 1000)})
	grown := a.Sized(0.5)
	assert.Equal(t, geom.NewBox(-500, -500, 1500, 1500), geom.BBox(grown.Polys))
}

type fakeShape struct {
	kind ShapeKind
	p    geom.Polygon
}

func (f fakeShape) Kind() ShapeKind      { return f.kind }
func (f fakeShape) ToPolygon() geom.Polygon { return f.p }

type fakeLayout struct {
	dbu    float64
	layers []LayerInfo
	shapes map[int][]Instance
}

func (f fakeLayout) Dbu() float64        { return f.dbu }
func (f fakeLayout) Layers() []LayerInfo { return f.layers }
func (f fakeLayout) ShapesTouching(cell CellID, layerIndex int, box geom.Box) []Instance {
	return f.shapes[layerIndex]
}

func TestLoad(t *testing.T) {
	lay := fakeLayout{
		dbu:    0.001,
		layers: []LayerInfo{{Index: 0, Layer: 5, Datatype: 0, Name: "poly"}},
		shapes: map[int][]Instance{
			0: {{Shape: fakeShape{ShapeBox, box(0, 0, 10, 10)}, Transform: geom.Transform{}}},
		},
	}
	ctx := fakeCtx{dbu: 0.001}
	s := NewSet(ctx)
	err := s.Load(lay, 0, geom.NewBox(-1000, -1000, 1000, 1000), layer.MustParse("poly"))
	require.NoError(t, err)
	assert.Len(t, s.Polys, 1)
}
