// Package geom implements PolyOps: the primitive operations on polygon
// sets that the rest of this module is built from. Coordinates are signed
// integers in database units (dbu).
//
// This package owns no concept of layers, masks, or process steps — it is
// the thin geometry layer the spec calls out as "a wrapper over a geometry
// library" (§4.1), backed here by gonum's r2.Vec for vector arithmetic,
// akavel/polyclip-go for Boolean/Merge's polygon-clipping kernel, and
// dhconnelly/rtreego for the Index used by rasterCells (geom/size.go).
package geom

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a coordinate in dbu.
type Point struct {
	X, Y int64
}

// Vec returns p as a gonum r2.Vec for floating-point geometry math.
func (p Point) Vec() r2.Vec { return r2.Vec{X: float64(p.X), Y: float64(p.Y)} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Edge is a directed segment p1->p2.
type Edge struct {
	P1, P2 Point
}

// DX, DY are the edge's displacement components.
func (e Edge) DX() int64 { return e.P2.X - e.P1.X }
func (e Edge) DY() int64 { return e.P2.Y - e.P1.Y }

// Box is an axis-aligned rectangle, P1 the lower-left, P2 the upper-right.
type Box struct {
	P1, P2 Point
}

// NewBox builds a normalized box from two arbitrary corners.
func NewBox(x1, y1, x2, y2 int64) Box {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Box{Point{x1, y1}, Point{x2, y2}}
}

// Width, Height of the box.
func (b Box) Width() int64  { return b.P2.X - b.P1.X }
func (b Box) Height() int64 { return b.P2.Y - b.P1.Y }

// IsEmpty reports whether the box has zero or negative area.
func (b Box) IsEmpty() bool { return b.Width() <= 0 || b.Height() <= 0 }

// ToPolygon returns the box as a 4-vertex CCW polygon.
func (b Box) ToPolygon() Polygon {
	return Polygon{Points: []Point{
		{b.P1.X, b.P1.Y},
		{b.P2.X, b.P1.Y},
		{b.P2.X, b.P2.Y},
		{b.P1.X, b.P2.Y},
	}}
}

// Polygon is a closed, possibly non-convex ring with no self-intersection.
// Holes are represented as additional rings in Polygon.Holes, each wound
// opposite the outer ring.
type Polygon struct {
	Points []Point
	Holes  [][]Point
}

// Edges returns the polygon's boundary edges (outer ring only; holes are
// walked by EdgesOf across the whole set).
func (p Polygon) Edges() []Edge {
	n := len(p.Points)
	if n < 2 {
		return nil
	}
	edges := make([]Edge, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, Edge{p.Points[i], p.Points[(i+1)%n]})
	}
	return edges
}

// BBox returns the polygon's bounding box.
func (p Polygon) BBox() Box {
	if len(p.Points) == 0 {
		return Box{}
	}
	b := Box{p.Points[0], p.Points[0]}
	for _, pt := range p.Points[1:] {
		if pt.X < b.P1.X {
			b.P1.X = pt.X
		}
		if pt.Y < b.P1.Y {
			b.P1.Y = pt.Y
		}
		if pt.X > b.P2.X {
			b.P2.X = pt.X
		}
		if pt.Y > b.P2.Y {
			b.P2.Y = pt.Y
		}
	}
	return b
}

// area2 returns twice the signed area of the outer ring (shoelace).
func (p Polygon) area2() int64 {
	var a int64
	n := len(p.Points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += p.Points[i].X*p.Points[j].Y - p.Points[j].X*p.Points[i].Y
	}
	return a
}

// Area returns the polygon's unsigned area (outer ring only; callers that
// need hole-aware area should subtract hole areas explicitly).
func (p Polygon) Area() float64 {
	a := p.area2()
	if a < 0 {
		a = -a
	}
	return float64(a) / 2
}

// Transform is a rigid 2D transform: mirror, rotation by 90-degree steps,
// then translation — the subset the collaborator's layout iterator exposes.
type Transform struct {
	Rot90   int  // number of 90-degree CCW rotations, mod 4
	MirrorX bool // mirror about the X axis before rotating
	DX, DY  int64
}

// Apply maps a point through the transform.
func (t Transform) Apply(p Point) Point {
	x, y := p.X, p.Y
	if t.MirrorX {
		y = -y
	}
	switch ((t.Rot90 % 4) + 4) % 4 {
	case 1:
		x, y = -y, x
	case 2:
		x, y = -x, -y
	case 3:
		x, y = y, -x
	}
	return Point{x + t.DX, y + t.DY}
}

// TransformPolygons applies t to every point of every polygon, returning new
// polygons (the input is left untouched).
func TransformPolygons(ps []Polygon, t Transform) []Polygon {
	out := make([]Polygon, len(ps))
	for i, p := range ps {
		pts := make([]Point, len(p.Points))
		for j, pt := range p.Points {
			pts[j] = t.Apply(pt)
		}
		holes := make([][]Point, len(p.Holes))
		for h, ring := range p.Holes {
			hr := make([]Point, len(ring))
			for j, pt := range ring {
				hr[j] = t.Apply(pt)
			}
			holes[h] = hr
		}
		out[i] = Polygon{Points: pts, Holes: holes}
	}
	return out
}

// BBox returns the bounding box of a list of polygons. Returns the zero Box
// if ps is empty.
func BBox(ps []Polygon) Box {
	if len(ps) == 0 {
		return Box{}
	}
	b := ps[0].BBox()
	for _, p := range ps[1:] {
		pb := p.BBox()
		if pb.P1.X < b.P1.X {
			b.P1.X = pb.P1.X
		}
		if pb.P1.Y < b.P1.Y {
			b.P1.Y = pb.P1.Y
		}
		if pb.P2.X > b.P2.X {
			b.P2.X = pb.P2.X
		}
		if pb.P2.Y > b.P2.Y {
			b.P2.Y = pb.P2.Y
		}
	}
	return b
}
