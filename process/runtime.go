package process

import (
	"github.com/gdsfactory/xsection-go/export"
	"github.com/gdsfactory/xsection-go/geom"
	"github.com/gdsfactory/xsection-go/layer"
	"github.com/gdsfactory/xsection-go/logging"
	"github.com/gdsfactory/xsection-go/mask"
	"github.com/gdsfactory/xsection-go/perr"
	"github.com/gdsfactory/xsection-go/slab"
	"github.com/gdsfactory/xsection-go/slice"
	"github.com/gdsfactory/xsection-go/stack"
	"github.com/gdsfactory/xsection-go/window"
)

// minExportSlabThickness is MIN_EXPORT_SLAB_THICKNESS (spec.md §4.7): a 3D
// slab thinner than this, in dbu, is dropped from output().
const minExportSlabThickness = 5

// Runtime is ProcessRuntime (spec.md §4.7): it binds a process script to
// either the 2D slice.Engine or the 3D stack.Engine and exposes the
// script-visible names layer/mask/all/air/bulk/deposit/grow/etch/
// planarize/flip/output/set_*.
type Runtime struct {
	Mode Mode
	Win  *window.Window
	Log  logging.Logger

	sliceCtx *slice.Context
	sliceEng *slice.Engine

	stackCtx *stack.Context
	stackEng *stack.Engine
	fullXY   []geom.Polygon

	Lay      mask.Layout
	Cell     mask.CellID
	layerTbl *layer.Table

	Outputs []export.LayerRecord
}

// NewRuntime2D builds a Runtime driving slice.Engine over the ruler
// segment (spec.md §4.4).
func NewRuntime2D(lay mask.Layout, cell mask.CellID, ruler geom.Edge, w *window.Window, log logging.Logger) *Runtime {
	if log == nil {
		log = logging.NopLogger{}
	}
	ctx := slice.NewContext(w, ruler)
	rt := &Runtime{
		Mode:     TwoD,
		Win:      w,
		Log:      log,
		sliceCtx: ctx,
		sliceEng: slice.NewEngine(ctx, log),
		Lay:      lay,
		Cell:     cell,
		layerTbl: tableFromLayout(lay),
	}
	return rt
}

// NewRuntime3D builds a Runtime driving stack.Engine over fullXY, the
// processing region's full top-view extent (spec.md §4.6).
func NewRuntime3D(lay mask.Layout, cell mask.CellID, fullXY []geom.Polygon, w *window.Window, log logging.Logger) *Runtime {
	if log == nil {
		log = logging.NopLogger{}
	}
	ctx := stack.NewContext(w)
	rt := &Runtime{
		Mode:     ThreeD,
		Win:      w,
		Log:      log,
		stackCtx: ctx,
		stackEng: stack.NewEngine(ctx, fullXY, log),
		fullXY:   fullXY,
		Lay:      lay,
		Cell:     cell,
		layerTbl: tableFromLayout(lay),
	}
	return rt
}

func tableFromLayout(lay mask.Layout) *layer.Table {
	t := layer.NewTable()
	if lay == nil {
		return t
	}
	for _, li := range lay.Layers() {
		t.Declare(li.Layer, li.Datatype, li.Name)
	}
	return t
}

// maskCtx3D adapts the window/fullXY pair to mask.Context for Layer() in
// 3D mode, where "background" is the processing region's full extent
// rather than a ruler-derived window box.
type maskCtx3D struct {
	w      *window.Window
	fullXY []geom.Polygon
}

func (c maskCtx3D) Dbu() float64               { return c.w.Dbu() }
func (c maskCtx3D) Background() []geom.Polygon { return c.fullXY }

func (rt *Runtime) maskContext() mask.Context {
	if rt.Mode == TwoD {
		return rt.sliceCtx
	}
	return maskCtx3D{w: rt.Win, fullXY: rt.fullXY}
}

func (rt *Runtime) queryBox() geom.Box {
	if rt.Mode == TwoD {
		return rt.sliceCtx.WindowBox()
	}
	return geom.BBox(rt.fullXY)
}

// Layer resolves spec against the host layout and returns the MaskSet of
// every shape on that layer touching the processing region (spec.md §4.2,
// §4.7 "layer(spec)→MaskSet").
func (rt *Runtime) Layer(spec string) (mask.Set, error) {
	ls, err := layer.Parse(spec, false)
	if err != nil {
		return mask.Set{}, err
	}
	set := mask.NewSet(rt.maskContext())
	if err := set.Load(rt.Lay, rt.Cell, rt.queryBox(), ls); err != nil {
		return mask.Set{}, err
	}
	return set, nil
}

// Mask turns a MaskSet into the seed a structured Grow/Etch sweeps from
// (spec.md §4.7 "mask(MaskSet)"), mirroring the original source's
// MaskData: 2D keeps the raw top-view polygons for the ruler sweep; 3D
// converts eagerly via MaskToSeed, matching mask()'s 3D semantics in the
// klayout_pyxs original (both mask() and all() route through
// _mask_to_seed_material there).
func (rt *Runtime) Mask(ms mask.Set) MaskSeed {
	if rt.Mode == TwoD {
		return MaskSeed{mode: TwoD, topView: ms.Polys}
	}
	return MaskSeed{mode: ThreeD, seed3: rt.stackEng.MaskToSeed(ms.Polys)}
}

// All returns the pseudo-mask covering the whole processing region (spec.md
// §4.7 "all()"), the seed deposit/grow/diffuse/etch implicitly grow from.
func (rt *Runtime) All() MaskSeed {
	if rt.Mode == TwoD {
		return MaskSeed{mode: TwoD, swept: rt.sliceCtx.AllMaskPolygons()}
	}
	return MaskSeed{mode: ThreeD, seed3: rt.stackEng.MaskToSeed(rt.fullXY)}
}

// Air returns the standing air region, aliasing the engine's own field
// (spec.md §3 "Standing regions"); mutations through it persist.
func (rt *Runtime) Air() *Material {
	if rt.Mode == TwoD {
		return &Material{mode: TwoD, d2: rt.sliceEng.ActiveAir()}
	}
	return &Material{mode: ThreeD, d3: rt.stackEng.ActiveAir()}
}

// Bulk returns the standing bulk region.
func (rt *Runtime) Bulk() *Material {
	if rt.Mode == TwoD {
		return &Material{mode: TwoD, d2: &rt.sliceEng.Bulk}
	}
	return &Material{mode: ThreeD, d3: &rt.stackEng.Bulk}
}

// Flip toggles the frontside/backside sense of air/air_below (spec.md §4.7
// "flip").
func (rt *Runtime) Flip() { rt.Win.Flip() }

func (rt *Runtime) SetDbu(v float64)            { rt.Win.SetDbu(v) }
func (rt *Runtime) SetHeight(v float64)         { rt.Win.SetHeight(v) }
func (rt *Runtime) SetDepth(v float64)          { rt.Win.SetDepth(v) }
func (rt *Runtime) SetBelow(v float64)          { rt.Win.SetBelow(v) }
func (rt *Runtime) SetExtend(v float64)         { rt.Win.SetExtend(v) }
func (rt *Runtime) SetDelta(v float64)          { rt.Win.SetDelta(v) }
func (rt *Runtime) SetThicknessScale(v float64) { rt.Win.SetThicknessScale(v) }

// GrowFrom runs a structured grow from seed (produced by Mask or All),
// mirroring MaskData.grow in the original source.
func (rt *Runtime) GrowFrom(seed MaskSeed, a GrowEtchArgs) (*Material, error) {
	if err := requireMode("grow", rt.Mode, seed.mode); err != nil {
		return nil, err
	}
	if rt.Mode == TwoD {
		sa := a.slice2D()
		var (
			result mask.Set
			err    error
		)
		if seed.swept != nil {
			result, err = rt.sliceEng.GrowMask(seed.swept, sa)
		} else {
			result, err = rt.sliceEng.Grow(seed.topView, sa)
		}
		if err != nil {
			return nil, err
		}
		return material2D(result), nil
	}
	sa, err := a.slice3D()
	if err != nil {
		return nil, err
	}
	result, err := rt.stackEng.Grow(seed.seed3, sa)
	if err != nil {
		return nil, err
	}
	return material3D(result), nil
}

// EtchFrom runs a structured etch from seed, mirroring MaskData.etch.
func (rt *Runtime) EtchFrom(seed MaskSeed, a GrowEtchArgs) (*Material, error) {
	if err := requireMode("etch", rt.Mode, seed.mode); err != nil {
		return nil, err
	}
	if rt.Mode == TwoD {
		sa := a.slice2D()
		var (
			result mask.Set
			err    error
		)
		if seed.swept != nil {
			result, err = rt.sliceEng.EtchMask(seed.swept, sa)
		} else {
			result, err = rt.sliceEng.Etch(seed.topView, sa)
		}
		if err != nil {
			return nil, err
		}
		return material2D(result), nil
	}
	sa, err := a.slice3D()
	if err != nil {
		return nil, err
	}
	result, err := rt.stackEng.Etch(seed.seed3, sa)
	if err != nil {
		return nil, err
	}
	return material3D(result), nil
}

func requireMode(op string, rtMode, seedMode Mode) error {
	if rtMode != seedMode {
		return perr.Newf(perr.Config, op, "seed was produced by a different Runtime mode")
	}
	return nil
}

// Deposit grows uniformly from All() (spec.md §4.7 "deposit=grow=diffuse=
// all().grow").
func (rt *Runtime) Deposit(a GrowEtchArgs) (*Material, error) { return rt.GrowFrom(rt.All(), a) }

// Grow is Deposit under its other script-visible name.
func (rt *Runtime) Grow(a GrowEtchArgs) (*Material, error) { return rt.Deposit(a) }

// Diffuse is Deposit under its other script-visible name.
func (rt *Runtime) Diffuse(a GrowEtchArgs) (*Material, error) { return rt.Deposit(a) }

// Etch etches uniformly from All() (spec.md §4.7 "etch=all().etch").
func (rt *Runtime) Etch(a GrowEtchArgs) (*Material, error) { return rt.EtchFrom(rt.All(), a) }

// PlanarizeArgs selects the cut plane for Planarize. Downto names material
// regions whose extreme top/bottom sets the cut level (spec.md §4.4); To is
// an absolute cut level in um.
type PlanarizeArgs struct {
	Into   []*Material
	Downto []*Material
	To     *float64
	Less   float64
}

// Planarize truncates every region in Into at the cut plane, exposing the
// removed material back to air (spec.md §4.4, §4.6 "planarize").
func (rt *Runtime) Planarize(a PlanarizeArgs) error {
	if rt.Mode == TwoD {
		return rt.sliceEng.Planarize(slice.PlanarizeArgs{
			Into: toMaskPtrs(a.Into), Downto: toMaskPtrs(a.Downto), To: a.To, Less: a.Less,
		})
	}
	return rt.stackEng.Planarize(stack.PlanarizeArgs{
		Into: toStackPtrs(a.Into), Downto: toStackPtrs(a.Downto), To: a.To, Less: a.Less, FullXY: rt.fullXY,
	})
}

// Output clips region to the processing region's roi, resolves spec into a
// layer/datatype/name triple, and records one export.LayerRecord per
// clipped polygon (2D) or per mask polygon of every slab at least
// minExportSlabThickness dbu thick (3D; the records of one slab share its
// layer number), per spec.md §4.7 "Output". color may be omitted (a random
// opaque color is assigned), given as (r,g,b), or (r,g,b,a); any other
// length, or any channel outside [0,1], is a ConfigError.
func (rt *Runtime) Output(spec string, m *Material, color ...float64) error {
	ls, err := layer.Parse(spec, false)
	if err != nil {
		return err
	}
	resolved, _ := rt.layerTbl.Resolve(ls)
	if !resolved.HasLayer {
		return perr.Newf(perr.Config, "output", "layer spec %q has no layer number", spec)
	}

	c, err := resolveColor(color)
	if err != nil {
		return err
	}

	if rt.Mode == TwoD {
		clipped := geom.Boolean(m.d2.Polys, rt.sliceEng.ROI.Polys, geom.And)
		for _, p := range clipped {
			rt.Outputs = append(rt.Outputs, export.LayerRecord{
				LayerNumber: resolved.Layer, Datatype: resolved.Datatype, Name: resolved.Name,
				Polygon: p, Color: c,
			})
		}
		return nil
	}

	roi := slab.Stack{Slabs: []slab.Slab{{Mask: rt.fullXY, ZBottom: -(rt.Win.DepthDbu() + rt.Win.BelowDbu()), Thickness: rt.Win.DepthDbu() + rt.Win.BelowDbu() + rt.Win.HeightDbu()}}}
	clipped := slab.Boolean(*m.d3, roi, slab.And)
	idx := 0
	for _, s := range clipped.Slabs {
		if s.Thickness < minExportSlabThickness {
			continue
		}
		for _, p := range s.Mask {
			rt.Outputs = append(rt.Outputs, export.LayerRecord{
				LayerNumber: resolved.Layer + idx, Datatype: resolved.Datatype,
				Name:      slabLayerName(resolved.Name, s.ZBottom, s.ZTop()),
				Polygon:   p,
				Is3D:      true,
				ZBottom:   s.ZBottom,
				Thickness: s.Thickness,
				Color:     c,
			})
		}
		idx++
	}
	return nil
}

func slabLayerName(name string, zBottom, zTop int64) string {
	if name == "" {
		return ""
	}
	return name + " (" + itoa(zBottom) + "-" + itoa(zTop) + ")"
}

func itoa(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	if v == 0 {
		return "0"
	}
	var buf [20]byte
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

// resolveColor validates an explicit color and returns nil when color is
// empty, leaving the random default to export.Tech.Write (SPEC_FULL.md
// §5.2: the random draw lives on the exporter instance, not the core).
func resolveColor(color []float64) (*export.Color, error) {
	var c export.Color
	switch len(color) {
	case 0:
		return nil, nil
	case 3:
		c = export.Color{R: color[0], G: color[1], B: color[2], A: 1}
	case 4:
		c = export.Color{R: color[0], G: color[1], B: color[2], A: color[3]}
	default:
		return nil, perr.Newf(perr.Config, "output", "color must have 0, 3, or 4 components, got %d", len(color))
	}
	if !c.Valid() {
		return nil, perr.Newf(perr.Config, "output", "color channel out of [0,1]")
	}
	return &c, nil
}
