package slice

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/gdsfactory/xsection-go/geom"
)

// parallelEps bounds the "is this edge parallel to the ruler" check.
// denom below is always a sum of products of int64-valued deltas cast to
// float64, hence exactly representable; this tolerance matches the exact
// denom==0 test while routing it through the floats.EqualWithinAbs helper.
const parallelEps = 1e-6

// crossPoint is one (z, sign) crossing recorded while sweeping a mask
// polygon's edges against the ruler.
type crossPoint struct {
	z int64
	s int64
}

// MaskPolygons converts a top-view MaskSet into the "mask polygons" of
// spec.md §4.4: rectangles spanning the full vertical processing window at
// every interval where the ruler crosses material.
//
// ruler is the ruler segment in the layout's own XY coordinates (dbu); its
// length must equal c.W.
func (c *Context) MaskPolygons(topView []geom.Polygon) []geom.Polygon {
	pts := c.crossings(topView)
	if len(pts) == 0 {
		return nil
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].z < pts[j].z })
	compressed := compress(pts)

	yLo := -(c.DepthDbu() + c.BelowDbu())
	yHi := c.HeightDbu()

	var out []geom.Polygon
	var sum int64
	var open bool
	var p1 int64
	for _, cp := range compressed {
		prev := sum
		sum += cp.s
		if prev <= 0 && sum > 0 {
			p1 = cp.z
			open = true
		} else if prev > 0 && sum <= 0 {
			if open {
				out = append(out, geom.NewBox(p1, yLo, cp.z, yHi).ToPolygon())
				open = false
			}
		}
	}
	return out
}

// crossings computes the raw (z, sign) points for every polygon edge that
// crosses the ruler with at least one endpoint on its positive side.
func (c *Context) crossings(topView []geom.Polygon) []crossPoint {
	ruler := c.Ruler
	L := r2.Sub(ruler.P2.Vec(), ruler.P1.Vec())
	denomBase := L.X*L.X + L.Y*L.Y
	if denomBase == 0 {
		return nil
	}
	W := float64(c.W)
	extend := float64(c.ExtendDbu())

	side := func(v r2.Vec) float64 { return L.X*v.Y - L.Y*v.X }

	var pts []crossPoint
	for _, poly := range topView {
		// The orientation sign is taken relative to the ring's winding, so
		// entering a polygon along the ruler raises the running sum whether
		// the ring is wound clockwise or counter-clockwise (geom.Box.ToPolygon
		// yields CCW rings).
		var area2 int64
		for i, p := range poly.Points {
			q := poly.Points[(i+1)%len(poly.Points)]
			area2 += p.X*q.Y - q.X*p.Y
		}
		for _, e := range poly.Edges() {
			ev := r2.Sub(e.P2.Vec(), e.P1.Vec())
			denom := side(ev)
			if floats.EqualWithinAbs(denom, 0, parallelEps) {
				continue // parallel to ruler
			}
			// u: param along e where it crosses the infinite line through L.
			p1 := r2.Sub(e.P1.Vec(), ruler.P1.Vec())
			u := (L.Y*p1.X - L.X*p1.Y) / denom
			if u < 0 || u > 1 {
				continue
			}
			// t: param along L (fraction of W) at the crossing.
			q := r2.Add(p1, r2.Scale(u, ev))
			t := (L.X*q.X + L.Y*q.Y) / denomBase

			s1 := side(p1)
			s2 := side(r2.Add(p1, ev))
			if !(s1 > 0 || s2 > 0) {
				continue
			}

			z := t * W
			if z < -extend {
				z = -extend
			}
			if z > W+extend {
				z = W + extend
			}

			sign := int64(1)
			if denom < 0 {
				sign = -1
			}
			if area2 > 0 {
				sign = -sign
			}
			pts = append(pts, crossPoint{z: int64(math.Round(z)), s: sign})
		}
	}
	return pts
}

// compress sums the signs of points sharing the same z; pts must already be
// sorted by z (the caller sorts them).
func compress(pts []crossPoint) []crossPoint {
	var out []crossPoint
	for _, p := range pts {
		if n := len(out); n > 0 && out[n-1].z == p.z {
			out[n-1].s += p.s
		} else {
			out = append(out, p)
		}
	}
	return out
}
