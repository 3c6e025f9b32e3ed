package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(x1, y1, x2, y2 int64) Polygon { return NewBox(x1, y1, x2, y2).ToPolygon() }

func TestBooleanIdentities(t *testing.T) {
	a := []Polygon{box(0, 0, 10, 10)}
	var empty []Polygon

	assert.Equal(t, a, Boolean(a, empty, Or))
	assert.Empty(t, Boolean(a, empty, And))
	assert.Equal(t, a, Boolean(a, empty, ASubB))
	assert.Equal(t, a, Boolean(empty, a, BSubA))
	assert.Empty(t, Boolean(a, a, ASubB))
	assert.Empty(t, Boolean(a, a, Xor))
}

func TestBooleanAndOverlap(t *testing.T) {
	a := []Polygon{box(0, 0, 10, 10)}
	b := []Polygon{box(5, 5, 15, 15)}

	and := Boolean(a, b, And)
	require.Len(t, and, 1)
	assert.Equal(t, Box{Point{5, 5}, Point{10, 10}}, and[0].BBox())

	or := Boolean(a, b, Or)
	require.Len(t, or, 1)
	assert.Equal(t, Box{Point{0, 0}, Point{15, 15}}, BBox(or))

	sub := Boolean(a, b, ASubB)
	assert.NotEmpty(t, sub)
	for _, p := range sub {
		assert.False(t, containsAny(b, Point{(p.BBox().P1.X + p.BBox().P2.X) / 2, (p.BBox().P1.Y + p.BBox().P2.Y) / 2}))
	}
}

func TestSizeMonotonicity(t *testing.T) {
	a := []Polygon{box(10, 10, 20, 20)}
	grown := Size(a, 2, 2, SquareCorner)
	assert.Equal(t, Box{Point{8, 8}, Point{22, 22}}, BBox(grown))

	shrunk := Size(a, -2, -2, SquareCorner)
	assert.Equal(t, Box{Point{12, 12}, Point{18, 18}}, BBox(shrunk))
}

func TestSizeRoundTrip(t *testing.T) {
	a := []Polygon{box(0, 0, 100, 50)}
	grown := Size(a, 5, 5, SquareCorner)
	back := Size(grown, -5, -5, SquareCorner)
	assert.Equal(t, BBox(a), BBox(back))
}

func TestMinkowskiSumSquareEdge(t *testing.T) {
	kernel := BuildKernel(5, 5, KernelSquare, false)
	e := Edge{Point{0, 0}, Point{10, 0}}
	body := MinkowskiSum(kernel, e)
	assert.Equal(t, Box{Point{-5, -5}, Point{15, 5}}, body.BBox())
}

func TestEllipseKernelVertexCount(t *testing.T) {
	round := BuildKernel(10, 10, KernelRound, false)
	assert.Len(t, round.Points, 64)
	oct := BuildKernel(10, 10, KernelOctagon, false)
	assert.Len(t, oct.Points, 8)
}

func TestEdgesAndEdges(t *testing.T) {
	e1 := []Edge{{Point{0, 0}, Point{10, 0}}}
	e2 := []Edge{{Point{5, 0}, Point{15, 0}}}
	frags := EdgesAndEdges(e1, e2)
	require.Len(t, frags, 1)
	assert.Equal(t, Edge{Point{5, 0}, Point{10, 0}}, frags[0])
}

func TestIndexQuery(t *testing.T) {
	ix := NewIndex([]Polygon{box(0, 0, 10, 10), box(100, 100, 110, 110)})
	hits := ix.Query(NewBox(5, 5, 6, 6))
	assert.Len(t, hits, 1)
}
