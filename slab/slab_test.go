package slab

import (
	"testing"

	"github.com/gdsfactory/xsection-go/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(x1, y1, x2, y2 int64) geom.Polygon { return geom.NewBox(x1, y1, x2, y2).ToPolygon() }

func TestNormalizeIdempotent(t *testing.T) {
	m := []geom.Polygon{box(0, 0, 10, 10)}
	st := Stack{[]Slab{{Mask: m, ZBottom: 0, Thickness: 100}, {Mask: m, ZBottom: 50, Thickness: 100}}}
	once := Normalize(st)
	twice := Normalize(once)
	require.Equal(t, len(once.Slabs), len(twice.Slabs))
	for i := range once.Slabs {
		assert.Equal(t, once.Slabs[i].ZBottom, twice.Slabs[i].ZBottom)
		assert.Equal(t, once.Slabs[i].Thickness, twice.Slabs[i].Thickness)
	}
}

func TestNormalizeSplitsOverlapS5(t *testing.T) {
	m := []geom.Polygon{box(0, 0, 10, 10)}
	st := Stack{[]Slab{
		{Mask: m, ZBottom: 0, Thickness: 100},
		{Mask: m, ZBottom: 50, Thickness: 100},
	}}
	norm := Normalize(st)
	require.Len(t, norm.Slabs, 1) // same mask on both -> merges fully after split
	assert.Equal(t, int64(0), norm.Slabs[0].ZBottom)
	assert.Equal(t, int64(150), norm.Slabs[0].Thickness)
}

func TestNormalizeSplitsOverlapDifferentMasks(t *testing.T) {
	m1 := []geom.Polygon{box(0, 0, 10, 10)}
	m2 := []geom.Polygon{box(20, 0, 30, 10)}
	st := Stack{[]Slab{
		{Mask: m1, ZBottom: 0, Thickness: 100},
		{Mask: m2, ZBottom: 50, Thickness: 100},
	}}
	norm := Normalize(st)
	require.Len(t, norm.Slabs, 3)
	assert.Equal(t, int64(0), norm.Slabs[0].ZBottom)
	assert.Equal(t, int64(50), norm.Slabs[0].Thickness)
	assert.Equal(t, int64(50), norm.Slabs[1].ZBottom)
	assert.Equal(t, int64(50), norm.Slabs[1].Thickness)
	assert.Equal(t, int64(100), norm.Slabs[2].ZBottom)
	assert.Equal(t, int64(50), norm.Slabs[2].Thickness)
}

func TestDisjointness(t *testing.T) {
	m := []geom.Polygon{box(0, 0, 10, 10)}
	st := Stack{[]Slab{{Mask: m, ZBottom: 0, Thickness: 30}, {Mask: m, ZBottom: 10, Thickness: 30}}}
	norm := Normalize(st)
	for i := 0; i+1 < len(norm.Slabs); i++ {
		assert.False(t, norm.Slabs[i].Overlaps(norm.Slabs[i+1]))
	}
}

func TestBooleanIdentities(t *testing.T) {
	m := []geom.Polygon{box(0, 0, 10, 10)}
	a := Stack{[]Slab{{Mask: m, ZBottom: 0, Thickness: 100}}}
	empty := Stack{}

	or := Boolean(a, empty, Or)
	assert.Equal(t, len(a.Slabs), len(or.Slabs))

	and := Boolean(a, empty, And)
	assert.True(t, and.IsEmpty())

	sub := Boolean(a, a, ASubB)
	assert.True(t, sub.IsEmpty())
}
