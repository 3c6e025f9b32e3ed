// Package mask implements MaskSet: a 2D container of polygons representing
// a top-view set, with the set algebra, sizing, rigid transforms, and
// morphological cleanup operations spec.md §4.3 requires.
package mask

import (
	"math"

	"github.com/gdsfactory/xsection-go/geom"
)

// Context supplies the dbu scale and background region a MaskSet needs for
// Inverted and micrometre conversions, without MaskSet holding a back
// reference to its owning engine (spec.md §9 "cyclic ownership").
type Context interface {
	Dbu() float64
	Background() []geom.Polygon
}

// Set is a MaskSet: an unordered multiset of polygons interpreted as their
// union, plus the context needed for dbu-aware operations.
type Set struct {
	Polys []geom.Polygon
	ctx   Context
}

// NewSet returns an empty Set bound to ctx.
func NewSet(ctx Context) Set { return Set{ctx: ctx} }

// FromPolygons wraps an existing polygon list as a Set.
func FromPolygons(ctx Context, ps []geom.Polygon) Set {
	return Set{Polys: ps, ctx: ctx}
}

// IsEmpty reports whether the set has no polygons.
func (s Set) IsEmpty() bool { return len(s.Polys) == 0 }

// Add mutates s to self ∪ o.
func (s *Set) Add(o Set) { s.Polys = geom.Boolean(s.Polys, o.Polys, geom.Or) }

// Sub mutates s to self ∖ o.
func (s *Set) Sub(o Set) { s.Polys = geom.Boolean(s.Polys, o.Polys, geom.ASubB) }

// Mask mutates s to self ∩ o.
func (s *Set) Mask(o Set) { s.Polys = geom.Boolean(s.Polys, o.Polys, geom.And) }

// And returns a new Set: self ∩ o.
func (s Set) And(o Set) Set { return Set{geom.Boolean(s.Polys, o.Polys, geom.And), s.ctx} }

// Or returns a new Set: self ∪ o.
func (s Set) Or(o Set) Set { return Set{geom.Boolean(s.Polys, o.Polys, geom.Or), s.ctx} }

// Not returns a new Set: self ∖ o.
func (s Set) Not(o Set) Set { return Set{geom.Boolean(s.Polys, o.Polys, geom.ASubB), s.ctx} }

// Xor returns a new Set: self △ o.
func (s Set) Xor(o Set) Set { return Set{geom.Boolean(s.Polys, o.Polys, geom.Xor), s.ctx} }

// Inverted returns background ⊕ self (symmetric difference with the
// engine's background region).
func (s Set) Inverted() Set {
	return Set{geom.Boolean(s.ctx.Background(), s.Polys, geom.Xor), s.ctx}
}

// dbuRound converts a micrometre length to dbu per floor(x/dbu+0.5).
func (s Set) dbuRound(x float64) int64 {
	return dbuRound(x, s.ctx.Dbu())
}

func dbuRound(x, dbu float64) int64 {
	return int64(math.Floor(x/dbu + 0.5))
}

// Sized returns a copy sized by (dx, dy) micrometres; dy defaults to dx
// when dyOpt is not supplied.
func (s Set) Sized(dx float64, dyOpt ...float64) Set {
	dy := dx
	if len(dyOpt) > 0 {
		dy = dyOpt[0]
	}
	dxi := s.dbuRound(dx)
	dyi := s.dbuRound(dy)
	return Set{geom.Size(s.Polys, dxi, dyi, geom.SquareCorner), s.ctx}
}

// Transform applies a rigid transform to every polygon, returning a new Set.
func (s Set) Transform(t geom.Transform) Set {
	return Set{geom.TransformPolygons(s.Polys, t), s.ctx}
}

// CloseGaps sizes by (0,+1)(0,-1)(+1,0)(-1,0) dbu, closing single-dbu gaps.
func (s Set) CloseGaps() Set {
	out := s.Polys
	out = geom.Size(out, 0, 1, geom.SquareCorner)
	out = geom.Size(out, 0, -1, geom.SquareCorner)
	out = geom.Size(out, 1, 0, geom.SquareCorner)
	out = geom.Size(out, -1, 0, geom.SquareCorner)
	return Set{out, s.ctx}
}

// RemoveSlivers sizes by (0,-1)(0,+1)(-1,0)(+1,0) dbu, removing slivers
// thinner than one dbu.
func (s Set) RemoveSlivers() Set {
	out := s.Polys
	out = geom.Size(out, 0, -1, geom.SquareCorner)
	out = geom.Size(out, 0, 1, geom.SquareCorner)
	out = geom.Size(out, -1, 0, geom.SquareCorner)
	out = geom.Size(out, 1, 0, geom.SquareCorner)
	return Set{out, s.ctx}
}

// BBox returns the bounding box of the set.
func (s Set) BBox() geom.Box { return geom.BBox(s.Polys) }

// Clone returns a value copy of s (regions are plain value types per
// spec.md §3 "Lifecycles").
func (s Set) Clone() Set {
	cp := make([]geom.Polygon, len(s.Polys))
	copy(cp, s.Polys)
	return Set{cp, s.ctx}
}
