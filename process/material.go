// Package process implements ProcessRuntime (spec.md §4.7): it binds a
// process script to the 2D slice.Engine or 3D stack.Engine, exposing the
// script-visible names layer/mask/all/air/bulk/deposit/grow/etch/
// planarize/flip/output/set_* that a host interpreter (or, in this
// module's own examples, a plain Go function) drives directly.
package process

import (
	"github.com/gdsfactory/xsection-go/geom"
	"github.com/gdsfactory/xsection-go/mask"
	"github.com/gdsfactory/xsection-go/perr"
	"github.com/gdsfactory/xsection-go/slab"
)

// Mode selects whether a Runtime drives the 2D SliceEngine or the 3D
// StackEngine (spec.md §9 "Polymorphism over mask/slab").
type Mode int

const (
	TwoD Mode = iota
	ThreeD
)

// Material is the MaterialRegion of spec.md §3/§9: a tagged variant over a
// 2D mask.Set or a 3D slab.Stack, exposed through one capability set so
// script-facing code can treat air/bulk/named results uniformly regardless
// of Mode. The underlying mask/stack is heap-allocated and referenced by
// pointer, so a Material returned by Air()/Bulk() aliases the engine's own
// standing region (mutating through Sub/Add is visible to later script
// steps), while a Material returned by Grow/Etch is a fresh region — Clone
// gives an explicit independent copy where a script needs one (spec.md §3
// "Lifecycles": regions are value types; Go expresses the copy as an
// explicit call rather than assignment).
type Material struct {
	mode Mode
	d2   *mask.Set
	d3   *slab.Stack
}

func material2D(s mask.Set) *Material { return &Material{mode: TwoD, d2: &s} }
func material3D(s slab.Stack) *Material { return &Material{mode: ThreeD, d3: &s} }

// Mode reports which variant m holds.
func (m *Material) Mode() Mode { return m.mode }

// IsEmpty reports whether the region has no geometry.
func (m *Material) IsEmpty() bool {
	if m.mode == TwoD {
		return m.d2.IsEmpty()
	}
	return m.d3.IsEmpty()
}

// BBox returns the region's 2D bounding box (for 3D, the XY bbox across all
// slabs).
func (m *Material) BBox() geom.Box {
	if m.mode == TwoD {
		return m.d2.BBox()
	}
	b, _, _ := m.d3.BBox()
	return b
}

// Clone returns an independent copy of m.
func (m *Material) Clone() *Material {
	if m.mode == TwoD {
		c := m.d2.Clone()
		return material2D(c)
	}
	c := m.d3.Clone()
	return material3D(c)
}

// Add mutates m to self ∪ o (spec.md §4.3 "add").
func (m *Material) Add(o *Material) error {
	if err := requireSameMode("add", m, o); err != nil {
		return err
	}
	if m.mode == TwoD {
		m.d2.Add(*o.d2)
		return nil
	}
	*m.d3 = slab.Boolean(*m.d3, *o.d3, slab.Or)
	return nil
}

// Sub mutates m to self ∖ o (spec.md §4.3 "sub").
func (m *Material) Sub(o *Material) error {
	if err := requireSameMode("sub", m, o); err != nil {
		return err
	}
	if m.mode == TwoD {
		m.d2.Sub(*o.d2)
		return nil
	}
	*m.d3 = slab.Boolean(*m.d3, *o.d3, slab.ASubB)
	return nil
}

// Mask mutates m to self ∩ o (spec.md §4.3 "mask").
func (m *Material) Mask(o *Material) error {
	if err := requireSameMode("mask", m, o); err != nil {
		return err
	}
	if m.mode == TwoD {
		m.d2.Mask(*o.d2)
		return nil
	}
	*m.d3 = slab.Boolean(*m.d3, *o.d3, slab.And)
	return nil
}

// And, Or, Not, Xor return new Materials (spec.md §4.3 "and_/or_/not_/xor").
func (m *Material) And(o *Material) (*Material, error) { return m.boolean("and_", o, geom.And) }
func (m *Material) Or(o *Material) (*Material, error)  { return m.boolean("or_", o, geom.Or) }
func (m *Material) Not(o *Material) (*Material, error) { return m.boolean("not_", o, geom.ASubB) }
func (m *Material) Xor(o *Material) (*Material, error) { return m.boolean("xor", o, geom.Xor) }

func (m *Material) boolean(op string, o *Material, bm geom.BoolMode) (*Material, error) {
	if err := requireSameMode(op, m, o); err != nil {
		return nil, err
	}
	if m.mode == TwoD {
		switch bm {
		case geom.And:
			return material2D(m.d2.And(*o.d2)), nil
		case geom.Or:
			return material2D(m.d2.Or(*o.d2)), nil
		case geom.Xor:
			return material2D(m.d2.Xor(*o.d2)), nil
		default: // ASubB
			return material2D(m.d2.Not(*o.d2)), nil
		}
	}
	return material3D(slab.Boolean(*m.d3, *o.d3, slab.BoolMode(bm))), nil
}

func requireSameMode(op string, a, b *Material) error {
	if a.mode != b.mode {
		return perr.Newf(perr.Config, op, "operands are not both 2D or both 3D")
	}
	return nil
}

// Sized returns a sized copy (spec.md §4.3 "sized"); dz is ignored in 2D.
func (m *Material) Sized(ctx DbuContext, dx, dy, dz float64) *Material {
	if m.mode == TwoD {
		return material2D(m.d2.Sized(dx, dy))
	}
	r := ctx.Round
	return material3D(slab.Size(*m.d3, r(dx), r(dy), r(dz)))
}

// CloseGaps/RemoveSlivers are 2D-only morphological cleanup (spec.md §4.3);
// they report a ConfigError in 3D, since spec.md never defines a SlabStack
// analogue.
func (m *Material) CloseGaps() (*Material, error) {
	if m.mode != TwoD {
		return nil, perr.Newf(perr.Config, "close_gaps", "not defined for 3D materials")
	}
	return material2D(m.d2.CloseGaps()), nil
}

func (m *Material) RemoveSlivers() (*Material, error) {
	if m.mode != TwoD {
		return nil, perr.Newf(perr.Config, "remove_slivers", "not defined for 3D materials")
	}
	return material2D(m.d2.RemoveSlivers()), nil
}

// Transform applies a rigid transform (2D only; spec.md §4.3 "transform").
func (m *Material) Transform(t geom.Transform) (*Material, error) {
	if m.mode != TwoD {
		return nil, perr.Newf(perr.Config, "transform", "not defined for 3D materials")
	}
	return material2D(m.d2.Transform(t)), nil
}

// DbuContext rounds a micrometre length to dbu; *window.Window satisfies
// it, passed explicitly per spec.md §9 "cyclic ownership".
type DbuContext interface {
	Round(x float64) int64
}

// MaskSeed is the result of mask()/all() (spec.md §4.7): the starting point
// for a structured grow/etch. It is not itself a Material — like the
// original source's MaskData vs MaterialData split, a seed only supports
// Grow/Etch, not add/sub/mask/boolean.
type MaskSeed struct {
	mode Mode

	// 2D: either topView (raw, pre-sweep polygons in the original layout's
	// XY space — mask()) or swept (the already-computed rectangle(s) —
	// all()) is set, never both.
	topView []geom.Polygon
	swept   []geom.Polygon

	// 3D: the seed slab.Stack, already converted by
	// stack.Engine.MaskToSeed for both mask() and all().
	seed3 slab.Stack
}
