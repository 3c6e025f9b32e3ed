package export

import (
	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"

	"github.com/gdsfactory/xsection-go/geom"
)

// WriteDXF emits the 2D output records as one LWPOLYLINE per polygon ring
// on a per-exported-layer DXF layer, via yofu/dxf — a CAD-interchange
// alternative to PreviewSVG/PreviewPNG for collaborators that import the
// cross-section into a drawing tool. Coordinates are written in dbu; the
// caller is expected to scale the resulting file by dbu downstream if a
// metric drawing is wanted.
func WriteDXF(path string, records []LayerRecord) error {
	d := dxf.NewDrawing()
	seen := map[string]bool{}

	for _, r := range records {
		if r.Is3D {
			continue
		}
		layerName := layerDXFName(r.LayerNumber, r.Datatype)
		if !seen[layerName] {
			d.AddLayer(layerName, dxfcolor.White, dxf.DefaultLineType, true)
			seen[layerName] = true
		}
		d.ChangeLayer(layerName)

		writeRingDXF(d, r.Polygon.Points)
		for _, hole := range r.Polygon.Holes {
			writeRingDXF(d, hole)
		}
	}
	return d.SaveAs(path)
}

func writeRingDXF(d *dxf.Drawing, pts []geom.Point) {
	if len(pts) < 2 {
		return
	}
	coords := make([][]float64, len(pts))
	for i, p := range pts {
		coords[i] = []float64{float64(p.X), float64(p.Y)}
	}
	d.LwPolyline(true, coords)
}

func layerDXFName(layerNo, datatype int) string {
	return dxfLayerPrefix + itoaDXF(layerNo) + "_" + itoaDXF(datatype)
}

const dxfLayerPrefix = "L"

func itoaDXF(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [12]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
