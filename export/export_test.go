package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdsfactory/xsection-go/geom"
)

func box(x1, y1, x2, y2 int64) geom.Polygon { return geom.NewBox(x1, y1, x2, y2).ToPolygon() }

func TestTechWriteTwoDLayer(t *testing.T) {
	records := []LayerRecord{
		{LayerNumber: 10, Datatype: 0, Name: "poly", Polygon: box(0, 0, 10, 10), Color: &Color{R: 1, G: 0, B: 0, A: 1}},
		{LayerNumber: 10, Datatype: 0, Name: "poly", Polygon: box(20, 0, 30, 10), Color: &Color{R: 1, G: 0, B: 0, A: 1}},
	}
	var buf bytes.Buffer
	tech := NewTech(1, "xsection-go")
	require.NoError(t, tech.Write(&buf, records, true))

	out := buf.String()
	assert.Contains(t, out, "LayerStart: poly (10)")
	assert.Contains(t, out, "Layer: 10")
	assert.Contains(t, out, "Show: 1")
	assert.Equal(t, 1, strings.Count(out, "LayerStart:"))
}

func TestTechWriteAssignsRandomColor(t *testing.T) {
	records := []LayerRecord{{LayerNumber: 1, Name: "a", Polygon: box(0, 0, 1, 1)}}
	var buf bytes.Buffer
	tech := NewTech(42, "xsection-go")
	require.NoError(t, tech.Write(&buf, records, false))
	assert.Contains(t, buf.String(), "Red:")
}

func TestTechWriteRejectsBadColor(t *testing.T) {
	records := []LayerRecord{{LayerNumber: 1, Name: "a", Polygon: box(0, 0, 1, 1), Color: &Color{R: 2, G: 0, B: 0, A: 1}}}
	var buf bytes.Buffer
	tech := NewTech(1, "xsection-go")
	require.Error(t, tech.Write(&buf, records, false))
}

func TestTechWriteThreeDSlab(t *testing.T) {
	records := []LayerRecord{
		{LayerNumber: 5, Name: "ox", Is3D: true, ZBottom: -100, Thickness: 50, Polygon: box(0, 0, 10, 10), Color: &Color{R: 0.2, G: 0.2, B: 0.2, A: 1}},
	}
	var buf bytes.Buffer
	tech := NewTech(1, "xsection-go")
	require.NoError(t, tech.Write(&buf, records, false))
	out := buf.String()
	assert.Contains(t, out, "Height: -100")
	assert.Contains(t, out, "Thickness: 50")
}

func TestPreviewSVGProducesPolygon(t *testing.T) {
	records := []LayerRecord{{LayerNumber: 1, Polygon: box(10, 10, 20, 20), Color: &Color{R: 0, G: 1, B: 0, A: 1}}}
	var buf bytes.Buffer
	require.NoError(t, PreviewSVG(&buf, records, geom.NewBox(0, 0, 100, 100), 200, 200))
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), "polygon")
}

func TestPreviewPNGEncodesImage(t *testing.T) {
	records := []LayerRecord{{LayerNumber: 1, Polygon: box(10, 10, 20, 20), Color: &Color{R: 0, G: 1, B: 0, A: 1}}}
	var buf bytes.Buffer
	require.NoError(t, PreviewPNG(&buf, records, geom.NewBox(0, 0, 100, 100), 64, 64))
	assert.True(t, buf.Len() > 0)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, buf.Bytes()[:4])
}

func TestWrite3MFExtrudesSlabs(t *testing.T) {
	records := []LayerRecord{
		{LayerNumber: 5, Is3D: true, ZBottom: 0, Thickness: 50, Polygon: box(0, 0, 10, 10)},
	}
	var buf bytes.Buffer
	require.NoError(t, Write3MF(&buf, records))
	assert.True(t, buf.Len() > 0)
}

func TestWrite3MFRequiresThreeDRecords(t *testing.T) {
	records := []LayerRecord{{LayerNumber: 5, Polygon: box(0, 0, 10, 10)}}
	var buf bytes.Buffer
	require.Error(t, Write3MF(&buf, records))
}

func TestWriteDXFProducesFile(t *testing.T) {
	records := []LayerRecord{
		{LayerNumber: 10, Datatype: 0, Polygon: box(0, 0, 10, 10)},
		{LayerNumber: 10, Datatype: 0, Polygon: box(20, 0, 30, 10)},
	}
	path := filepath.Join(t.TempDir(), "xsection.dxf")
	require.NoError(t, WriteDXF(path, records))
}
