package export

import (
	"fmt"
	"io"

	"github.com/hpinc/go3mf"
)

// Write3MF extrudes each 3D output record's polygon flat between its
// slab's z_bottom and z_top and writes the resulting solid as a 3MF
// package via hpinc/go3mf (backed by qmuntal/opc's OPC container writer).
// This is the flat-extrusion preview mesh the spec's Non-goals call out as
// a visualization convenience, not a simulation mesh: triangulation is a
// fan from each ring's first vertex, which is exact only for convex
// cross-sections.
func Write3MF(w io.Writer, records []LayerRecord) error {
	model := &go3mf.Model{}
	var nextID uint32 = 1

	for _, r := range records {
		if !r.Is3D {
			continue
		}
		obj := extrudeObject(nextID, r)
		if obj == nil {
			continue
		}
		model.Resources.Objects = append(model.Resources.Objects, obj)
		model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: obj.ID})
		nextID++
	}
	if len(model.Resources.Objects) == 0 {
		return fmt.Errorf("export.Write3MF: no 3D records to extrude")
	}

	enc := go3mf.NewEncoder(w)
	return enc.Encode(model)
}

func extrudeObject(id uint32, r LayerRecord) *go3mf.Object {
	ring := r.Polygon.Points
	if len(ring) < 3 {
		return nil
	}
	mesh := &go3mf.Mesh{}

	addVertex := func(x, y float64, z int64) uint32 {
		idx := uint32(len(mesh.Vertices.Vertex))
		mesh.Vertices.Vertex = append(mesh.Vertices.Vertex, go3mf.Point3D{
			X: float32(x), Y: float32(y), Z: float32(z),
		})
		return idx
	}
	addTri := func(a, b, c uint32) {
		mesh.Triangles.Triangle = append(mesh.Triangles.Triangle, go3mf.Triangle{V1: a, V2: b, V3: c})
	}

	n := len(ring)
	bottom := make([]uint32, n)
	top := make([]uint32, n)
	for i, p := range ring {
		bottom[i] = addVertex(float64(p.X), float64(p.Y), r.ZBottom)
		top[i] = addVertex(float64(p.X), float64(p.Y), r.ZTop())
	}

	// Bottom and top caps, fan-triangulated from vertex 0.
	for i := 1; i+1 < n; i++ {
		addTri(bottom[0], bottom[i+1], bottom[i])
		addTri(top[0], top[i], top[i+1])
	}
	// Side walls, two triangles per edge.
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		addTri(bottom[i], bottom[j], top[j])
		addTri(bottom[i], top[j], top[i])
	}

	return &go3mf.Object{ID: id, Mesh: mesh}
}
