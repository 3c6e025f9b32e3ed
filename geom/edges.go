package geom

// EdgesOf returns the edge set of a polygon list: every outer-ring and
// hole-ring edge of every polygon.
func EdgesOf(ps []Polygon) []Edge {
	var out []Edge
	for _, p := range ps {
		out = append(out, p.Edges()...)
		for _, hole := range p.Holes {
			n := len(hole)
			for i := 0; i < n; i++ {
				out = append(out, Edge{hole[i], hole[(i+1)%n]})
			}
		}
	}
	return out
}

// cross returns the Z component of (b-a) x (c-a).
func cross(a, b, c Point) int64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func colinear(e1, e2 Edge) bool {
	return cross(e1.P1, e1.P2, e2.P1) == 0 && cross(e1.P1, e1.P2, e2.P2) == 0
}

// overlap1D returns the overlapping closed interval of [a0,a1] and [b0,b1]
// (each may be given in either order), or ok=false if disjoint.
func overlap1D(a0, a1, b0, b1 int64) (lo, hi int64, ok bool) {
	if a0 > a1 {
		a0, a1 = a1, a0
	}
	if b0 > b1 {
		b0, b1 = b1, b0
	}
	lo = a0
	if b0 > lo {
		lo = b0
	}
	hi = a1
	if b1 < hi {
		hi = b1
	}
	return lo, hi, lo < hi
}

// colinearOverlap returns the overlapping sub-segment of two colinear
// edges, oriented along e1's direction, or ok=false if they don't overlap.
func colinearOverlap(e1, e2 Edge) (Edge, bool) {
	if !colinear(e1, e2) {
		return Edge{}, false
	}
	// Project onto the dominant axis of e1.
	dx, dy := e1.DX(), e1.DY()
	if dx == 0 && dy == 0 {
		return Edge{}, false
	}
	useX := dx != 0
	var lo, hi int64
	var ok bool
	if useX {
		lo, hi, ok = overlap1D(e1.P1.X, e1.P2.X, e2.P1.X, e2.P2.X)
	} else {
		lo, hi, ok = overlap1D(e1.P1.Y, e1.P2.Y, e2.P1.Y, e2.P2.Y)
	}
	if !ok {
		return Edge{}, false
	}
	// Reconstruct endpoints on the shared line from the parametrized axis value.
	paramPoint := func(v int64) Point {
		if useX {
			t := float64(v-e1.P1.X) / float64(dx)
			return Point{v, e1.P1.Y + int64(t*float64(dy))}
		}
		t := float64(v-e1.P1.Y) / float64(dy)
		return Point{e1.P1.X + int64(t*float64(dx)), v}
	}
	p1, p2 := paramPoint(lo), paramPoint(hi)
	if (useX && e1.P1.X > e1.P2.X) || (!useX && e1.P1.Y > e1.P2.Y) {
		p1, p2 = p2, p1
	}
	return Edge{p1, p2}, true
}

// EdgesAndEdges returns only the edge fragments shared (colinear-overlapping)
// by both edge sets.
func EdgesAndEdges(e1, e2 []Edge) []Edge {
	var out []Edge
	for _, a := range e1 {
		for _, b := range e2 {
			if frag, ok := colinearOverlap(a, b); ok {
				out = append(out, frag)
			}
		}
	}
	return out
}

// EdgesDiff returns the portions of e1 not covered by any colinear overlap
// with e2 — used by produce_geom to compute the seed edges
// edges_of(air ∩ mp) ∖ edges_of(mp).
func EdgesDiff(e1, e2 []Edge) []Edge {
	var out []Edge
	for _, a := range e1 {
		remaining := []Edge{a}
		for _, b := range e2 {
			var next []Edge
			for _, r := range remaining {
				next = append(next, subtractColinear(r, b)...)
			}
			remaining = next
		}
		out = append(out, remaining...)
	}
	return out
}

// subtractColinear removes the portion of e overlapping b (if colinear),
// returning zero, one, or two remaining sub-edges.
func subtractColinear(e, b Edge) []Edge {
	frag, ok := colinearOverlap(e, b)
	if !ok {
		return []Edge{e}
	}
	dx, dy := e.DX(), e.DY()
	useX := dx != 0
	var a0, a1, lo, hi int64
	if useX {
		a0, a1 = e.P1.X, e.P2.X
		lo, hi = frag.P1.X, frag.P2.X
	} else {
		a0, a1 = e.P1.Y, e.P2.Y
		lo, hi = frag.P1.Y, frag.P2.Y
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	asc := a0 <= a1
	if !asc {
		a0, a1 = a1, a0
	}
	var out []Edge
	if lo > a0 {
		out = append(out, Edge{pointOnLine(e, a0), pointOnLine(e, lo)})
	}
	if hi < a1 {
		out = append(out, Edge{pointOnLine(e, hi), pointOnLine(e, a1)})
	}
	if !asc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
		for i := range out {
			out[i] = Edge{out[i].P2, out[i].P1}
		}
	}
	return out
}

func pointOnLine(e Edge, axisVal int64) Point {
	dx, dy := e.DX(), e.DY()
	if dx != 0 {
		t := float64(axisVal-e.P1.X) / float64(dx)
		return Point{axisVal, e.P1.Y + int64(t*float64(dy))}
	}
	t := float64(axisVal-e.P1.Y) / float64(dy)
	return Point{e.P1.X + int64(t*float64(dx)), axisVal}
}
