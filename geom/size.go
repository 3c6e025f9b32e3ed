package geom

import (
	"sort"

	"github.com/akavel/polyclip-go"
)

// SizeMode selects the corner shape used by Size. Only Square is
// implemented; spec.md §4.1 notes all current callers pass mode=2
// (square) — round/octagon corners on a directional size are not
// exercised anywhere in this engine (they only appear as Minkowski
// kernels, see kernel.go).
type SizeMode int

const (
	SquareCorner SizeMode = 2
)

// Size grows (dx,dy > 0) or shrinks (dx,dy < 0) ps directionally. dx and dy
// are independent and may have different signs; they are applied as two
// separable axis operations.
func Size(ps []Polygon, dx, dy int64, mode SizeMode) []Polygon {
	out := sizeAxis(ps, dx, true)
	out = sizeAxis(out, dy, false)
	return out
}

func sizeAxis(ps []Polygon, amount int64, xAxis bool) []Polygon {
	if amount == 0 || len(ps) == 0 {
		return clone(ps)
	}
	if amount > 0 {
		return dilateAxis(ps, amount, xAxis)
	}
	neg := -amount
	bb := BBox(ps)
	pad := neg + 1
	var universe Box
	if xAxis {
		universe = NewBox(bb.P1.X-pad, bb.P1.Y-1, bb.P2.X+pad, bb.P2.Y+1)
	} else {
		universe = NewBox(bb.P1.X-1, bb.P1.Y-pad, bb.P2.X+1, bb.P2.Y+pad)
	}
	uPoly := []Polygon{universe.ToPolygon()}
	comp := Boolean(uPoly, ps, ASubB)
	dilatedComp := dilateAxis(comp, neg, xAxis)
	return Boolean(uPoly, dilatedComp, ASubB)
}

// dilateAxis implements Minkowski sum with the interval [-amount,amount]
// along one axis, by growing each rasterized cell of ps's own vertex grid
// independently and re-merging — valid for the axis-aligned mask
// rectangles and box kernels this is called with (spec.md §4.1 notes no
// caller sizes a non-rectilinear shape), since Minkowski sum distributes
// over union.
func dilateAxis(ps []Polygon, amount int64, xAxis bool) []Polygon {
	if amount <= 0 || len(ps) == 0 {
		return clone(ps)
	}
	cells := rasterCells(ps)
	if len(cells) == 0 {
		return nil
	}
	grown := make([]Polygon, len(cells))
	for i, c := range cells {
		if xAxis {
			c.P1.X -= amount
			c.P2.X += amount
		} else {
			c.P1.Y -= amount
			c.P2.Y += amount
		}
		grown[i] = c.ToPolygon()
	}
	return Merge(grown)
}

// rasterCells decomposes ps into the maximal axis-aligned rectangles of its
// own vertex grid that lie inside it. Exact for the rectilinear inputs
// dilateAxis is called with.
func rasterCells(ps []Polygon) []Box {
	if len(ps) == 0 {
		return nil
	}
	xs := coordSet(ps, nil, true)
	ys := coordSet(ps, nil, false)
	if len(xs) < 2 || len(ys) < 2 {
		return nil
	}
	cols := len(xs) - 1
	rows := len(ys) - 1
	include := make([]bool, cols*rows)
	ix := NewIndex(ps)
	for cy := 0; cy < rows; cy++ {
		midY := (ys[cy] + ys[cy+1]) / 2
		for cx := 0; cx < cols; cx++ {
			midX := (xs[cx] + xs[cx+1]) / 2
			if ix.Contains(Point{midX, midY}) {
				include[cy*cols+cx] = true
			}
		}
	}
	polys := rectanglesFromGrid(xs, ys, include, cols, rows)
	boxes := make([]Box, len(polys))
	for i, p := range polys {
		boxes[i] = p.BBox()
	}
	return boxes
}

// coordSet collects the distinct sorted X (or Y) coordinates of every
// vertex (outer rings and holes) in a and b (b may be nil).
func coordSet(a, b []Polygon, xAxis bool) []int64 {
	seen := map[int64]struct{}{}
	addRing := func(ring []Point) {
		for _, pt := range ring {
			v := pt.X
			if !xAxis {
				v = pt.Y
			}
			seen[v] = struct{}{}
		}
	}
	add := func(ps []Polygon) {
		for _, p := range ps {
			addRing(p.Points)
			for _, hole := range p.Holes {
				addRing(hole)
			}
		}
	}
	add(a)
	add(b)
	out := make([]int64, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// containsAny reports whether p lies inside any polygon of ps (even-odd
// ray cast, holes subtracted).
func containsAny(ps []Polygon, p Point) bool {
	for _, poly := range ps {
		if pointInRing(poly.Points, p) {
			in := true
			for _, hole := range poly.Holes {
				if pointInRing(hole, p) {
					in = false
					break
				}
			}
			if in {
				return true
			}
		}
	}
	return false
}

func pointInRing(ring []Point, p Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := ring[i], ring[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xint := float64(pj.X-pi.X)*float64(p.Y-pi.Y)/float64(pj.Y-pi.Y) + float64(pi.X)
			if float64(p.X) < xint {
				inside = !inside
			}
		}
	}
	return inside
}

// rectanglesFromGrid merges included cells into maximal horizontal runs per
// row, then merges vertically-identical runs across adjacent rows.
func rectanglesFromGrid(xs, ys []int64, include []bool, cols, rows int) []Polygon {
	type run struct{ x0, x1 int }
	rowRuns := make([][]run, rows)
	for r := 0; r < rows; r++ {
		c := 0
		for c < cols {
			if !include[r*cols+c] {
				c++
				continue
			}
			start := c
			for c < cols && include[r*cols+c] {
				c++
			}
			rowRuns[r] = append(rowRuns[r], run{start, c})
		}
	}

	var out []Polygon
	consumed := make([][]bool, rows)
	for r := range consumed {
		consumed[r] = make([]bool, len(rowRuns[r]))
	}
	for r := 0; r < rows; r++ {
		for i, rn := range rowRuns[r] {
			if consumed[r][i] {
				continue
			}
			top := r + 1
			for top < rows {
				found := -1
				for j, rn2 := range rowRuns[top] {
					if !consumed[top][j] && rn2 == rn {
						found = j
						break
					}
				}
				if found < 0 {
					break
				}
				consumed[top][found] = true
				top++
			}
			out = append(out, NewBox(xs[rn.x0], ys[r], xs[rn.x1], ys[top]).ToPolygon())
		}
	}
	return out
}

// Merge unions ps with itself, consolidating overlap from independent
// per-cell operations like dilateAxis — through the same polyclip-backed
// kernel as Boolean (geom/boolean.go), so non-rectilinear shapes merged
// here (the round/octagon/tapered Minkowski sweep bodies accumulated by
// ParallelMinkowskiSumAll) keep their real vertex shape instead of
// collapsing to a grid of rectangles.
func Merge(ps []Polygon) []Polygon {
	if len(ps) == 0 {
		return nil
	}
	subj := toClipPolygon(ps)
	result := subj.Construct(polyclip.UNION, subj)
	return fromClipPolygon(result)
}
