package geom

import "github.com/dhconnelly/rtreego"

const indexDims = 2

// indexed wraps a Polygon as an rtreego.Spatial item keyed by its bbox.
type indexed struct {
	poly Polygon
	rect *rtreego.Rect
}

func (it *indexed) Bounds() *rtreego.Rect { return it.rect }

func toRect(b Box) *rtreego.Rect {
	w := float64(b.Width())
	h := float64(b.Height())
	if w <= 0 {
		w = 1e-6
	}
	if h <= 0 {
		h = 1e-6
	}
	p := rtreego.Point{float64(b.P1.X), float64(b.P1.Y)}
	rect, err := rtreego.NewRect(p, []float64{w, h})
	if err != nil {
		// NewRect only errors on non-positive lengths, already guarded above.
		panic(err)
	}
	return rect
}

// Index is an R-tree spatial index over a set of polygons. rasterCells
// (geom/size.go) builds one per call to turn its per-cell point-containment
// test into a bounded-box query instead of a linear scan over every polygon
// for every grid cell (spec.md §4.3's "shapes touching box" query, applied
// here to the directional-size rasterizer rather than mask.Set.Load, which
// already gets its box query for free from the host Layout collaborator's
// ShapesTouching).
type Index struct {
	tree *rtreego.Rtree
}

// NewIndex builds an index over ps.
func NewIndex(ps []Polygon) *Index {
	tree := rtreego.NewTree(indexDims, 4, 16)
	for _, p := range ps {
		tree.Insert(&indexed{poly: p, rect: toRect(p.BBox())})
	}
	return &Index{tree: tree}
}

// Insert adds a polygon to the index.
func (ix *Index) Insert(p Polygon) {
	ix.tree.Insert(&indexed{poly: p, rect: toRect(p.BBox())})
}

// Query returns every indexed polygon whose bounding box intersects box.
func (ix *Index) Query(box Box) []Polygon {
	results := ix.tree.SearchIntersect(toRect(box))
	out := make([]Polygon, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*indexed).poly)
	}
	return out
}

// Len returns the number of indexed polygons.
func (ix *Index) Len() int { return ix.tree.Size() }

// Contains reports whether p lies inside any indexed polygon (even-odd ray
// cast against the outer ring, holes subtracted), querying the index for
// candidate polygons by bbox before running the exact ray cast on any of
// them.
func (ix *Index) Contains(p Point) bool {
	for _, poly := range ix.Query(Box{P1: p, P2: p}) {
		if !pointInRing(poly.Points, p) {
			continue
		}
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
	return false
}
