// Package export implements ExportTech (spec.md §4.7, §6): it turns the
// polygon/slab records a process script hands to output() into the
// collaborator-facing forms spec.md §6 names — a line-oriented tech file,
// and raster/vector/solid previews for the rest of the retrieval pack's
// domain dependencies (SPEC_FULL.md §3).
package export

import "github.com/gdsfactory/xsection-go/geom"

// Color is an RGBA color in [0,1]; A is the tech file's "Filter" value.
type Color struct {
	R, G, B, A float64
}

// Valid reports whether every channel is within [0,1] (spec.md §4.7
// "colors must be in [0,1] and alpha in [0,1] else ConfigError").
func (c Color) Valid() bool {
	return inRange(c.R) && inRange(c.G) && inRange(c.B) && inRange(c.A)
}

func inRange(v float64) bool { return v >= 0 && v <= 1 }

// LayerRecord is one exported layer entry (spec.md §6 "Output"): a 2D
// record carries Polygon only; a 3D record additionally carries the slab's
// z-extent. Records sharing LayerNumber/Datatype are written as polygons
// of the same tech-file block.
type LayerRecord struct {
	LayerNumber int
	Datatype    int
	Name        string
	Polygon     geom.Polygon

	Is3D      bool
	ZBottom   int64
	Thickness int64

	// Color is nil when the script's output() call omitted one; Tech.Write
	// assigns a random color per instance in that case (SPEC_FULL.md §5.2).
	Color *Color
}

// ZTop returns ZBottom+Thickness for a 3D record.
func (r LayerRecord) ZTop() int64 { return r.ZBottom + r.Thickness }
