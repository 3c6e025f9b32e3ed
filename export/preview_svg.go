package export

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/gdsfactory/xsection-go/geom"
)

// PreviewSVG renders the 2D output records as a flat vector cross-section
// using ajstarks/svgo, scaling dbu coordinates into a widthPx x heightPx
// canvas framed by box (the processing window in dbu). Holes are drawn as
// white-filled polygons layered on top of their outer ring — svgo has no
// even-odd fill-rule helper, so true hole cutouts are approximated
// (documented in DESIGN.md).
func PreviewSVG(w io.Writer, records []LayerRecord, box geom.Box, widthPx, heightPx int) error {
	width := float64(box.Width())
	height := float64(box.Height())
	if width <= 0 || height <= 0 {
		return fmt.Errorf("export.PreviewSVG: empty box")
	}
	sx := float64(widthPx) / width
	sy := float64(heightPx) / height

	toPx := func(p geom.Point) (int, int) {
		x := float64(p.X-box.P1.X) * sx
		y := float64(box.P2.Y-p.Y) * sy // flip Y: dbu up, SVG down
		return int(x), int(y)
	}

	canvas := svg.New(w)
	canvas.Start(widthPx, heightPx)
	canvas.Rect(0, 0, widthPx, heightPx, "fill:white")

	for _, r := range records {
		if r.Is3D {
			continue
		}
		col := Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
		if r.Color != nil {
			col = *r.Color
		}
		style := fmt.Sprintf("fill:%s;fill-opacity:%g;stroke:black;stroke-width:0.5", rgbString(col), col.A)

		xs, ys := ringCoords(r.Polygon.Points, toPx)
		canvas.Polygon(xs, ys, style)
		for _, hole := range r.Polygon.Holes {
			hxs, hys := ringCoords(hole, toPx)
			canvas.Polygon(hxs, hys, "fill:white")
		}
	}
	canvas.End()
	return nil
}

func ringCoords(pts []geom.Point, toPx func(geom.Point) (int, int)) ([]int, []int) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = toPx(p)
	}
	return xs, ys
}

func rgbString(c Color) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", clamp255(c.R), clamp255(c.G), clamp255(c.B))
}

func clamp255(v float64) int {
	n := int(v*255 + 0.5)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}
