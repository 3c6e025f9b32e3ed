package geom

import "math"

// KernelMode selects the corner profile of a structured grow/etch.
type KernelMode int

const (
	KernelSquare KernelMode = iota
	KernelRound
	KernelOctagon
)

// ParseKernelMode maps a script-level mode name to a KernelMode.
func ParseKernelMode(name string) (KernelMode, bool) {
	switch name {
	case "square":
		return KernelSquare, true
	case "round":
		return KernelRound, true
	case "octagon":
		return KernelOctagon, true
	}
	return 0, false
}

// BuildKernel constructs the convex sweep kernel for a structured
// grow/etch (spec.md §4.4 step 6).
//
//   - taper && xyi>0: rhombus with vertices (-xyi,0),(0,zi),(xyi,0),(0,-zi).
//   - xyi<=0: degenerate vertical segment (0,-zi)->(0,zi).
//   - otherwise: square/round/octagon profile of half-extents (xyi, zi).
func BuildKernel(xyi, zi int64, mode KernelMode, taper bool) Polygon {
	if taper && xyi > 0 {
		return Polygon{Points: []Point{
			{-xyi, 0}, {0, zi}, {xyi, 0}, {0, -zi},
		}}
	}
	if xyi <= 0 {
		return NewBox(0, -zi, 0, zi).ToPolygon()
	}
	switch mode {
	case KernelRound:
		return ellipsePolygon(xyi, zi, 64)
	case KernelOctagon:
		return ellipsePolygon(xyi, zi, 8)
	default:
		return NewBox(-xyi, -zi, xyi, zi).ToPolygon()
	}
}

// ellipsePolygon returns a regular n-gon circumscribed about the ellipse of
// radii (rx, ry) — scaled by 1/cos(pi/n) so the polygon's edges, not its
// vertices, touch the ellipse (spec.md §4.4 step 6).
func ellipsePolygon(rx, ry int64, n int) Polygon {
	scale := 1 / math.Cos(math.Pi/float64(n))
	fx := float64(rx) * scale
	fy := float64(ry) * scale
	pts := make([]Point, n)
	for k := 0; k < n; k++ {
		theta := 2 * math.Pi * float64(k) / float64(n)
		pts[k] = Point{
			X: int64(math.Round(fx * math.Cos(theta))),
			Y: int64(math.Round(fy * math.Sin(theta))),
		}
	}
	return Polygon{Points: pts}
}
