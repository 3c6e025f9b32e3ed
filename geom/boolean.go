package geom

import (
	"math"

	"github.com/akavel/polyclip-go"
)

// BoolMode selects a set operation for Boolean.
type BoolMode int

const (
	And    BoolMode = iota // intersection
	Or                      // union
	Xor                     // symmetric difference
	ASubB                   // A minus B
	BSubA                   // B minus A
)

// Boolean computes the named set operation over two polygon lists, each
// interpreted as the union of its members (spec.md §4.1). Empty-operand
// identities are handled directly; every other case is delegated to
// polyclip-go's Martinez-Rueda-Feito sweep, which clips the actual polygon
// boundaries rather than a derived coordinate grid, so non-rectilinear
// shapes (the round/octagon/tapered Minkowski kernels built in kernel.go)
// keep their real vertices through every union/intersection/difference on
// the way to produceGeom's returned body.
func Boolean(a, b []Polygon, mode BoolMode) []Polygon {
	switch mode {
	case And:
		if len(a) == 0 || len(b) == 0 {
			return nil
		}
	case Or:
		if len(a) == 0 {
			return clone(b)
		}
		if len(b) == 0 {
			return clone(a)
		}
	case ASubB:
		if len(b) == 0 {
			return clone(a)
		}
		if len(a) == 0 {
			return nil
		}
	case BSubA:
		if len(a) == 0 {
			return clone(b)
		}
		if len(b) == 0 {
			return nil
		}
	case Xor:
		if len(a) == 0 {
			return clone(b)
		}
		if len(b) == 0 {
			return clone(a)
		}
	}

	subj := toClipPolygon(a)
	clip := toClipPolygon(b)

	var result polyclip.Polygon
	switch mode {
	case And:
		result = subj.Construct(polyclip.INTERSECTION, clip)
	case Or:
		result = subj.Construct(polyclip.UNION, clip)
	case Xor:
		result = subj.Construct(polyclip.XOR, clip)
	case ASubB:
		result = subj.Construct(polyclip.DIFFERENCE, clip)
	case BSubA:
		result = clip.Construct(polyclip.DIFFERENCE, subj)
	}
	return fromClipPolygon(result)
}

func clone(ps []Polygon) []Polygon {
	out := make([]Polygon, len(ps))
	copy(out, ps)
	return out
}

// toClipPolygon flattens ps's outer rings and holes into one polyclip
// multi-contour polygon. polyclip tells outer rings from holes apart by
// winding (shoelace sign), which this package already guarantees: holes are
// wound opposite their outer ring.
func toClipPolygon(ps []Polygon) polyclip.Polygon {
	var poly polyclip.Polygon
	for _, p := range ps {
		poly = append(poly, toContour(p.Points))
		for _, h := range p.Holes {
			poly = append(poly, toContour(h))
		}
	}
	return poly
}

func toContour(pts []Point) polyclip.Contour {
	c := make(polyclip.Contour, len(pts))
	for i, p := range pts {
		c[i] = polyclip.Point{X: float64(p.X), Y: float64(p.Y)}
	}
	return c
}

// fromClipPolygon rounds a polyclip result back to dbu integers and regroups
// its contours into outer/hole pairs: a non-negative signed area starts a
// new outer Polygon, a negative signed area is a hole assigned to whichever
// outer ring contains one of its vertices.
func fromClipPolygon(poly polyclip.Polygon) []Polygon {
	var outers, holes [][]Point
	for _, c := range poly {
		if len(c) < 3 {
			continue
		}
		pts := make([]Point, len(c))
		for i, p := range c {
			pts[i] = Point{X: int64(math.Round(p.X)), Y: int64(math.Round(p.Y))}
		}
		if signedArea2(pts) >= 0 {
			outers = append(outers, pts)
		} else {
			holes = append(holes, pts)
		}
	}

	result := make([]Polygon, len(outers))
	for i, pts := range outers {
		result[i] = Polygon{Points: pts}
	}
	for _, h := range holes {
		assigned := false
		for i := range result {
			if pointInRing(result[i].Points, h[0]) {
				result[i].Holes = append(result[i].Holes, h)
				assigned = true
				break
			}
		}
		if !assigned && len(result) > 0 {
			result[0].Holes = append(result[0].Holes, h)
		}
	}
	return result
}

// signedArea2 returns twice the shoelace area of pts; its sign gives
// winding (positive CCW, negative CW) without a floating-point divide.
func signedArea2(pts []Point) int64 {
	var a int64
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return a
}
