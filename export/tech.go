package export

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"sort"

	"github.com/gdsfactory/xsection-go/perr"
)

// Tech writes the line-oriented ASCII tech file of spec.md §6. It owns a
// private *rand.Rand so repeated Write calls (and repeated process runs
// within one Go process) are reproducible only if the caller seeds the
// instance explicitly — no package-level randomness (SPEC_FULL.md §5.2,
// matching the teacher's avoidance of global mutable state).
type Tech struct {
	rng      *rand.Rand
	Producer string // identifies the producer in the file's opening comment
}

// NewTech returns a Tech seeded from seed.
func NewTech(seed int64, producer string) *Tech {
	return &Tech{rng: rand.New(rand.NewSource(seed)), Producer: producer}
}

func (t *Tech) colorFor(c *Color) Color {
	if c != nil {
		return *c
	}
	return Color{R: t.rng.Float64(), G: t.rng.Float64(), B: t.rng.Float64(), A: 1}
}

// layerBlock is one LayerStart..LayerEnd block's accumulated fields.
type layerBlock struct {
	layerNo  int
	datatype int
	name     string
	zBottom  int64
	thickness int64
	color    Color
	shortkey string
}

// Write emits one block per distinct (LayerNumber, Datatype) pair among
// records, ordered by layer number then datatype. showAll marks every
// block Show: 1; a caller wanting a subset can filter records beforehand.
func (t *Tech) Write(w io.Writer, records []LayerRecord, showAll bool) error {
	blocks := map[[2]int]*layerBlock{}
	var order [][2]int
	for _, r := range records {
		key := [2]int{r.LayerNumber, r.Datatype}
		b, ok := blocks[key]
		if !ok {
			b = &layerBlock{layerNo: r.LayerNumber, datatype: r.Datatype, name: r.Name, color: t.colorFor(r.Color)}
			if r.Is3D {
				b.zBottom = r.ZBottom
				b.thickness = r.Thickness
			}
			blocks[key] = b
			order = append(order, key)
		}
		if r.Is3D && r.Thickness > b.thickness {
			b.zBottom = r.ZBottom
			b.thickness = r.Thickness
		}
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i][0] != order[j][0] {
			return order[i][0] < order[j][0]
		}
		return order[i][1] < order[j][1]
	})

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# generated by %s\n", t.Producer)
	for _, key := range order {
		b := blocks[key]
		if !b.color.Valid() {
			return perr.Newf(perr.Config, "export.Tech.Write", "color out of [0,1] for layer %d/%d", b.layerNo, b.datatype)
		}
		fmt.Fprintln(bw)
		fmt.Fprintf(bw, "LayerStart: %s (%d)\n", b.name, b.layerNo)
		fmt.Fprintf(bw, "Layer: %d\n", b.layerNo)
		fmt.Fprintf(bw, "Height: %d\n", b.zBottom)
		fmt.Fprintf(bw, "Thickness: %d\n", b.thickness)
		fmt.Fprintf(bw, "Red: %g Green: %g Blue: %g Filter: %g\n", b.color.R, b.color.G, b.color.B, b.color.A)
		fmt.Fprintf(bw, "Metal: %d\n", 0)
		if b.shortkey != "" {
			fmt.Fprintf(bw, "Shortkey: %s\n", b.shortkey)
		}
		show := 0
		if showAll {
			show = 1
		}
		fmt.Fprintf(bw, "Show: %d\n", show)
		fmt.Fprintln(bw, "LayerEnd")
	}
	return bw.Flush()
}
