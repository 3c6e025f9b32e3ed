package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/llgcode/draw2d/draw2dimg"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gdsfactory/xsection-go/geom"
)

// PreviewPNG rasterizes the 2D output records with llgcode/draw2d and
// labels the ruler axis with golang/freetype + golang.org/x/image's
// embedded Go font, giving a filled, antialiased alternative to
// PreviewSVG's vector output.
func PreviewPNG(w io.Writer, records []LayerRecord, box geom.Box, widthPx, heightPx int) error {
	width := float64(box.Width())
	height := float64(box.Height())
	if width <= 0 || height <= 0 {
		return fmt.Errorf("export.PreviewPNG: empty box")
	}
	sx := float64(widthPx) / width
	sy := float64(heightPx) / height

	img := image.NewRGBA(image.Rect(0, 0, widthPx, heightPx))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	gc := draw2dimg.NewGraphicContext(img)
	toPx := func(p geom.Point) (float64, float64) {
		x := float64(p.X-box.P1.X) * sx
		y := float64(box.P2.Y-p.Y) * sy
		return x, y
	}

	for _, r := range records {
		if r.Is3D {
			continue
		}
		col := Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
		if r.Color != nil {
			col = *r.Color
		}
		gc.SetFillColor(color.RGBA{R: toByte(col.R), G: toByte(col.G), B: toByte(col.B), A: toByte(col.A)})
		gc.SetStrokeColor(color.Black)
		gc.SetLineWidth(0.5)

		drawRing(gc, r.Polygon.Points, toPx)
		gc.FillStroke()
		for _, hole := range r.Polygon.Holes {
			gc.SetFillColor(color.White)
			drawRing(gc, hole, toPx)
			gc.Fill()
		}
	}

	if err := drawAxisLabels(img, box, widthPx, heightPx); err != nil {
		return err
	}
	return png.Encode(w, img)
}

func drawRing(gc *draw2dimg.GraphicContext, pts []geom.Point, toPx func(geom.Point) (float64, float64)) {
	if len(pts) == 0 {
		return
	}
	gc.BeginPath()
	x0, y0 := toPx(pts[0])
	gc.MoveTo(x0, y0)
	for _, p := range pts[1:] {
		x, y := toPx(p)
		gc.LineTo(x, y)
	}
	gc.Close()
}

func toByte(v float64) uint8 { return uint8(clamp255(v)) }

// drawAxisLabels stamps the box's X extent (in dbu) at the bottom of the
// image using the embedded Go Regular font.
func drawAxisLabels(img *image.RGBA, box geom.Box, widthPx, heightPx int) error {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("export.PreviewPNG: parse embedded font: %w", err)
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(10)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(color.Black))

	pt := freetype.Pt(4, heightPx-4)
	label := fmt.Sprintf("%d..%d dbu", box.P1.X, box.P2.X)
	if _, err := ctx.DrawString(label, pt); err != nil {
		return fmt.Errorf("export.PreviewPNG: draw axis label: %w", err)
	}
	return nil
}
