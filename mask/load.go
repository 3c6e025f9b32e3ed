package mask

import (
	"github.com/gdsfactory/xsection-go/geom"
	"github.com/gdsfactory/xsection-go/layer"
	"github.com/gdsfactory/xsection-go/perr"
)

// ShapeKind classifies a collaborator shape for conversion purposes.
type ShapeKind int

const (
	ShapeOther ShapeKind = iota
	ShapePolygon
	ShapePath
	ShapeBox
)

// Shape is one shape instance as the host layout iterator presents it.
// Kind selects how ToPolygon interprets the shape; ShapeOther shapes are
// skipped silently by Load per spec.md §4.3.
type Shape interface {
	Kind() ShapeKind
	// ToPolygon converts the shape to a polygon in its own local
	// coordinates; Load applies the iterator's instance transform.
	ToPolygon() geom.Polygon
}

// Instance pairs a shape with the instance transform the layout iterator
// carries alongside it (array/cell-reference placement).
type Instance struct {
	Shape     Shape
	Transform geom.Transform
}

// CellID identifies a cell in the host layout.
type CellID int

// LayerInfo is one declared (layer, datatype, name) entry of a layout.
type LayerInfo struct {
	Index    int
	Layer    int
	Datatype int
	Name     string
}

// Layout is the collaborator interface this module requires from the host
// layout application (spec.md §6 "Input mask layout"). Any equivalent
// layout-database binding satisfies it.
type Layout interface {
	Dbu() float64
	Layers() []LayerInfo
	// ShapesTouching returns every shape instance on layerIndex within
	// cell that touches box.
	ShapesTouching(cell CellID, layerIndex int, box geom.Box) []Instance
}

// Load resolves spec against the layout's declared layers, iterates every
// shape touching box on that layer, converts polygons/paths/boxes to
// polygons, and appends them to s. Shapes of other kinds are skipped
// silently. Returns a ConfigError if spec names a layer the layout never
// declared.
func (s *Set) Load(lay Layout, cell CellID, box geom.Box, spec layer.Spec) error {
	tbl := layer.NewTable()
	idxOf := map[[2]int]int{}
	for _, li := range lay.Layers() {
		tbl.Declare(li.Layer, li.Datatype, li.Name)
		idxOf[[2]int{li.Layer, li.Datatype}] = li.Index
	}

	resolved, err := tbl.Resolve(spec)
	if err != nil {
		return err
	}
	layerIndex, ok := idxOf[[2]int{resolved.Layer, resolved.Datatype}]
	if !ok {
		return perr.Newf(perr.Config, "mask.Load", "layer %s not declared in layout", resolved.String())
	}

	for _, inst := range lay.ShapesTouching(cell, layerIndex, box) {
		switch inst.Shape.Kind() {
		case ShapePolygon, ShapePath, ShapeBox:
			poly := inst.Shape.ToPolygon()
			s.Polys = append(s.Polys, geom.TransformPolygons([]geom.Polygon{poly}, inst.Transform)[0])
		default:
			// skipped silently
		}
	}
	return nil
}
