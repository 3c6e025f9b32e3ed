// Package slab implements Slab and SlabStack: the 3D analogue of a 2D
// MaskSet — a sorted, non-overlapping list of (mask, z-bottom, thickness)
// slabs with normalization and boolean set algebra lifted from the 2D
// plane via paired z-interval walks (spec.md §4.5).
package slab

import (
	"sort"

	"github.com/gdsfactory/xsection-go/geom"
)

// Slab is one material layer: a 2D mask over the z-interval
// [ZBottom, ZBottom+Thickness).
type Slab struct {
	Mask      []geom.Polygon
	ZBottom   int64
	Thickness int64
}

// ZTop returns z_bottom + thickness.
func (s Slab) ZTop() int64 { return s.ZBottom + s.Thickness }

// Overlaps reports whether the open z-intervals of s and o intersect.
func (s Slab) Overlaps(o Slab) bool {
	return s.ZBottom < o.ZTop() && o.ZBottom < s.ZTop()
}

// Stack is an ordered list of Slabs.
type Stack struct {
	Slabs []Slab
}

// IsEmpty reports whether the stack has no slabs.
func (st Stack) IsEmpty() bool { return len(st.Slabs) == 0 }

// Clone returns a value copy of st.
func (st Stack) Clone() Stack {
	cp := make([]Slab, len(st.Slabs))
	for i, s := range st.Slabs {
		m := make([]geom.Polygon, len(s.Mask))
		copy(m, s.Mask)
		cp[i] = Slab{Mask: m, ZBottom: s.ZBottom, Thickness: s.Thickness}
	}
	return Stack{cp}
}

// less orders slabs by (z_bottom, z_top) ascending.
func less(a, b Slab) bool {
	if a.ZBottom != b.ZBottom {
		return a.ZBottom < b.ZBottom
	}
	return a.ZTop() < b.ZTop()
}

func sortSlabs(ss []Slab) {
	sort.SliceStable(ss, func(i, j int) bool { return less(ss[i], ss[j]) })
}

// Normalize returns the canonical form of st (st itself is left unchanged):
// sort, split z-overlaps, then merge adjacent slabs sharing the same mask
// (spec.md §4.5).
func Normalize(st Stack) Stack {
	ss := append([]Slab(nil), st.Slabs...)
	sortSlabs(ss)
	ss = splitOverlappingZ(ss)
	ss = mergeSameMask(ss)
	return Stack{ss}
}

// splitOverlappingZ implements the pipeline step of the same name in
// spec.md §4.5: walk the sorted list, splitting/merging adjacent slabs so
// that no two slabs in the result z-overlap.
func splitOverlappingZ(in []Slab) []Slab {
	work := append([]Slab(nil), in...)
	var out []Slab

	for len(work) > 0 {
		sortSlabs(work)
		a := work[0]
		if len(work) == 1 {
			out = append(out, a)
			work = work[1:]
			continue
		}
		b := work[1]

		if a.ZTop() <= b.ZBottom {
			out = append(out, a)
			work = work[1:]
			continue
		}

		switch {
		case a.ZBottom == b.ZBottom && a.ZTop() == b.ZTop():
			merged := Slab{
				Mask:      geom.Boolean(a.Mask, b.Mask, geom.Or),
				ZBottom:   a.ZBottom,
				Thickness: a.Thickness,
			}
			work = append([]Slab{merged}, work[2:]...)

		case a.ZBottom == b.ZBottom && a.ZTop() < b.ZTop():
			lower := Slab{
				Mask:      geom.Boolean(a.Mask, b.Mask, geom.Or),
				ZBottom:   a.ZBottom,
				Thickness: a.Thickness,
			}
			upperB := Slab{
				Mask:      b.Mask,
				ZBottom:   a.ZTop(),
				Thickness: b.ZTop() - a.ZTop(),
			}
			// lower goes back into the worklist: a later slab may start
			// inside (a.ZBottom, a.ZTop()).
			work = append([]Slab{lower, upperB}, work[2:]...)

		default: // a.ZBottom < b.ZBottom, a z-overlaps b
			lower := Slab{Mask: a.Mask, ZBottom: a.ZBottom, Thickness: b.ZBottom - a.ZBottom}
			upperA := Slab{Mask: a.Mask, ZBottom: b.ZBottom, Thickness: a.ZTop() - b.ZBottom}
			out = append(out, lower)
			work = append([]Slab{upperA, b}, work[2:]...)
		}
	}
	return out
}

// mergeSameMask merges adjacent slabs with identical mask polygons and
// a.top == b.bottom into one slab.
func mergeSameMask(in []Slab) []Slab {
	if len(in) == 0 {
		return nil
	}
	sortSlabs(in)
	out := []Slab{in[0]}
	for _, s := range in[1:] {
		last := &out[len(out)-1]
		if last.ZTop() == s.ZBottom && samePolys(last.Mask, s.Mask) {
			last.Thickness += s.Thickness
			continue
		}
		out = append(out, s)
	}
	return out
}

func samePolys(a, b []geom.Polygon) bool {
	// Equal as point sets: symmetric difference is empty.
	diff := geom.Boolean(a, b, geom.Xor)
	return len(diff) == 0
}

// BoolMode mirrors geom.BoolMode for slab-level boolean operations.
type BoolMode = geom.BoolMode

const (
	And   = geom.And
	Or    = geom.Or
	Xor   = geom.Xor
	ASubB = geom.ASubB
	BSubA = geom.BSubA
)

// Boolean walks the paired z-intervals of a and b, splitting each stack at
// the other's z-edges, and assembles the mode-appropriate buckets from the
// per-pair 2D boolean of overlapping slabs (spec.md §4.5).
func Boolean(a, b Stack, mode BoolMode) Stack {
	edges := zEdges(a.Slabs, b.Slabs)
	var out []Slab
	for i := 0; i+1 < len(edges); i++ {
		z0, z1 := edges[i], edges[i+1]
		if z1 <= z0 {
			continue
		}
		aMask := maskAt(a.Slabs, z0, z1)
		bMask := maskAt(b.Slabs, z0, z1)
		aHas := aMask != nil
		bHas := bMask != nil
		if !aHas && !bHas {
			continue
		}
		var m []geom.Polygon
		switch mode {
		case And:
			if aHas && bHas {
				m = geom.Boolean(aMask, bMask, geom.And)
			}
		case Or:
			switch {
			case aHas && bHas:
				m = geom.Boolean(aMask, bMask, geom.Or)
			case aHas:
				m = aMask
			default:
				m = bMask
			}
		case Xor:
			switch {
			case aHas && bHas:
				m = geom.Boolean(aMask, bMask, geom.Xor)
			case aHas:
				m = aMask
			default:
				m = bMask
			}
		case ASubB:
			switch {
			case aHas && bHas:
				m = geom.Boolean(aMask, bMask, geom.ASubB)
			case aHas:
				m = aMask
			}
		case BSubA:
			switch {
			case aHas && bHas:
				m = geom.Boolean(aMask, bMask, geom.BSubA)
			case bHas:
				m = bMask
			}
		}
		if len(m) > 0 {
			out = append(out, Slab{Mask: m, ZBottom: z0, Thickness: z1 - z0})
		}
	}
	return Normalize(Stack{out})
}

// zEdges returns the sorted, deduplicated set of z-bottom/z-top values
// across both slab lists — the cut points of the paired interval walk.
func zEdges(a, b []Slab) []int64 {
	seen := map[int64]struct{}{}
	add := func(ss []Slab) {
		for _, s := range ss {
			seen[s.ZBottom] = struct{}{}
			seen[s.ZTop()] = struct{}{}
		}
	}
	add(a)
	add(b)
	out := make([]int64, 0, len(seen))
	for z := range seen {
		out = append(out, z)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// maskAt returns the mask of whichever slab in ss covers [z0,z1), or nil.
func maskAt(ss []Slab, z0, z1 int64) []geom.Polygon {
	for _, s := range ss {
		if s.ZBottom <= z0 && z1 <= s.ZTop() {
			return s.Mask
		}
	}
	return nil
}

// Size returns slabs with 2D-sized masks and (bottom-dz, thickness+2*dz),
// normalized.
func Size(st Stack, dx, dy, dz int64) Stack {
	out := make([]Slab, len(st.Slabs))
	for i, s := range st.Slabs {
		out[i] = Slab{
			Mask:      geom.Size(s.Mask, dx, dy, geom.SquareCorner),
			ZBottom:   s.ZBottom - dz,
			Thickness: s.Thickness + 2*dz,
		}
	}
	return Normalize(Stack{out})
}

// BBox returns the 3D bounding box (XY bbox, ZBottom, ZTop) of the stack,
// or the zero value if empty.
func (st Stack) BBox() (geom.Box, int64, int64) {
	if st.IsEmpty() {
		return geom.Box{}, 0, 0
	}
	var polys []geom.Polygon
	zMin, zMax := st.Slabs[0].ZBottom, st.Slabs[0].ZTop()
	for _, s := range st.Slabs {
		polys = append(polys, s.Mask...)
		if s.ZBottom < zMin {
			zMin = s.ZBottom
		}
		if s.ZTop() > zMax {
			zMax = s.ZTop()
		}
	}
	return geom.BBox(polys), zMin, zMax
}
