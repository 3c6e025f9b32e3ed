package stack

import (
	"github.com/gdsfactory/xsection-go/geom"
	"github.com/gdsfactory/xsection-go/logging"
	"github.com/gdsfactory/xsection-go/perr"
	"github.com/gdsfactory/xsection-go/slab"
)

// Engine is the 3D cross-section core: it owns the standing air/bulk slab
// stacks and drives grow/etch/planarize against them (spec.md §4.6).
type Engine struct {
	Ctx      *Context
	Air      slab.Stack
	AirBelow slab.Stack
	Bulk     slab.Stack
	Log      logging.Logger
}

// NewEngine builds an Engine, seeding air at the full window above the
// wafer surface and air_below beneath it, mirroring slice.NewEngine.
func NewEngine(ctx *Context, fullXY []geom.Polygon, log logging.Logger) *Engine {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &Engine{
		Ctx:      ctx,
		Air:      slab.Stack{Slabs: []slab.Slab{{Mask: fullXY, ZBottom: 0, Thickness: ctx.HeightDbu()}}},
		AirBelow: slab.Stack{Slabs: []slab.Slab{{Mask: fullXY, ZBottom: -(ctx.DepthDbu() + ctx.BelowDbu()), Thickness: ctx.DepthDbu() + ctx.BelowDbu()}}},
		Bulk:     slab.Stack{},
		Log:      log,
	}
}

func (e *Engine) activeAir() *slab.Stack {
	if e.Ctx.Flipped() {
		return &e.AirBelow
	}
	return &e.Air
}

// ActiveAir exports activeAir for process.Runtime's air() capability.
func (e *Engine) ActiveAir() *slab.Stack { return e.activeAir() }

// GrowEtchArgs mirrors slice.GrowEtchArgs at slab granularity; it has no
// taper field, octagon mode is rejected, and round mode reuses the square
// extrusion in 3D (spec.md §9 open questions).
type GrowEtchArgs struct {
	Z       float64
	XY      float64
	Into    []*slab.Stack
	Through []*slab.Stack
	On      []*slab.Stack
	Mode    string
	Bias    float64
	Buried  float64
}

func unionStacks(op string, ss []*slab.Stack) slab.Stack {
	out := slab.Stack{}
	for _, s := range ss {
		out = slab.Boolean(out, *s, slab.Or)
	}
	return out
}

func validate3D(op string, a GrowEtchArgs, requireInto bool) error {
	if len(a.On) > 0 && (len(a.Into) > 0 || len(a.Through) > 0) {
		return perr.Newf(perr.Config, op, "on excludes into/through")
	}
	switch a.Mode {
	case "square":
	case "round":
	case "octagon":
		return perr.Newf(perr.Config, op, "octagon mode is not supported in 3D")
	default:
		return perr.Newf(perr.Config, op, "unknown mode %q", a.Mode)
	}
	if requireInto && len(a.Into) == 0 {
		return perr.Newf(perr.Config, op, "etch requires a non-empty into")
	}
	return nil
}

// produceGeom mirrors spec.md §4.4's produce_geom at slab granularity
// (spec.md §4.6): when on/through/into is given, the seed stack is first
// z-sized by the window's delta (DeltaDbu, never less than 1 dbu) to
// guarantee overlap and constrained to on/through/into via a slab-level
// AND, and that offset is taken off zi; then a directional
// size(seed, xyi, xyi, zi) extrudes the body; through is subtracted; into
// is intersected.
func (e *Engine) produceGeom(seed slab.Stack, a GrowEtchArgs) (slab.Stack, error) {
	if err := validate3D("produce_geom", a, false); err != nil {
		return slab.Stack{}, err
	}

	prebias := a.Bias
	xy := a.XY
	if xy < 0 {
		xy = -xy
		prebias += xy
	}

	air := *e.activeAir()
	intoStack := air
	if len(a.Into) > 0 {
		intoStack = unionStacks("grow", a.Into)
	}
	var throughStack slab.Stack
	if len(a.Through) > 0 {
		throughStack = unionStacks("grow", a.Through)
	}
	var onStack slab.Stack
	if len(a.On) > 0 {
		onStack = unionStacks("grow", a.On)
	}

	layers := seed
	offset := e.Ctx.DeltaDbu()
	if len(a.Into) > 0 || len(a.Through) > 0 || len(a.On) > 0 {
		if offset == 0 {
			offset = e.Ctx.DeltaDbu() / 2
			if offset == 0 {
				offset = 1
			}
		}
		layers = slab.Size(layers, 0, 0, offset)
		switch {
		case len(a.On) > 0:
			layers = slab.Boolean(layers, onStack, slab.And)
		case len(a.Through) > 0:
			layers = slab.Boolean(layers, throughStack, slab.And)
		default:
			layers = slab.Boolean(layers, intoStack, slab.And)
		}
	} else {
		offset = 0
	}

	pi := e.Ctx.Round(prebias)
	switch {
	case pi < 0:
		layers = slab.Size(layers, -pi, -pi, 0)
	case pi > 0:
		return slab.Stack{}, perr.Newf(perr.Config, "produce_geom", "positive prebias is not supported in 3D")
	}

	xyi := e.Ctx.Round(xy)
	zi := e.Ctx.Round(a.Z) - offset

	if xyi <= 0 {
		layers = slab.Size(layers, 0, 0, zi)
	} else {
		// square and round (round reuses the square kernel in 3D; see
		// DESIGN.md) both extrude directionally by (xyi, xyi, zi).
		layers = slab.Size(layers, xyi, xyi, zi)
	}

	if len(a.Through) > 0 {
		layers = slab.Boolean(layers, throughStack, slab.ASubB)
	}
	layers = slab.Boolean(layers, intoStack, slab.And)
	return layers, nil
}

// Grow mirrors slice.Engine.Grow at slab granularity.
func (e *Engine) Grow(seed slab.Stack, a GrowEtchArgs) (slab.Stack, error) {
	if err := validate3D("grow", a, false); err != nil {
		return slab.Stack{}, err
	}
	result, err := e.produceGeom(seed, a)
	if err != nil {
		return slab.Stack{}, err
	}
	e.Log.Step(1, "grow3d z=%g xy=%g mode=%s", a.Z, a.XY, a.Mode)
	if len(a.Into) == 0 {
		air := e.activeAir()
		*air = slab.Boolean(*air, result, slab.ASubB)
		return result, nil
	}
	for _, m := range a.Into {
		*m = slab.Boolean(*m, result, slab.ASubB)
	}
	return result, nil
}

// Etch mirrors slice.Engine.Etch at slab granularity.
func (e *Engine) Etch(seed slab.Stack, a GrowEtchArgs) (slab.Stack, error) {
	if err := validate3D("etch", a, true); err != nil {
		return slab.Stack{}, err
	}
	result, err := e.produceGeom(seed, a)
	if err != nil {
		return slab.Stack{}, err
	}
	e.Log.Step(1, "etch3d z=%g xy=%g mode=%s", a.Z, a.XY, a.Mode)
	air := e.activeAir()
	for _, m := range a.Into {
		exposed := slab.Boolean(*m, result, slab.And)
		*m = slab.Boolean(*m, result, slab.ASubB)
		*air = slab.Boolean(*air, exposed, slab.Or)
	}
	return result, nil
}

// PlanarizeArgs selects the cut plane for Planarize in z, mirroring
// slice.PlanarizeArgs. Downto is accepted for signature symmetry with the
// 2D engine but, like pyxs3D_lib.py's planarize, has no implementation here
// (NotImplementedError upstream): only an explicit To is supported in 3D.
type PlanarizeArgs struct {
	Into   []*slab.Stack
	Downto []*slab.Stack
	To     *float64
	Less   float64
	FullXY []geom.Polygon // XY extent of the removal slab
}

// Planarize truncates every stack in into at the cut z-plane, exposing the
// removed material back to air.
func (e *Engine) Planarize(a PlanarizeArgs) error {
	if len(a.Into) == 0 {
		return perr.Newf(perr.Config, "planarize", "into must not be empty")
	}
	if len(a.Downto) > 0 {
		return perr.Newf(perr.Config, "planarize", "downto is not supported in 3D")
	}
	if a.To == nil {
		return perr.Newf(perr.Config, "planarize", "3D planarize requires an explicit to (no into-top default in 3D)")
	}
	cutZ := e.Ctx.Round(*a.To)
	lessDbu := e.Ctx.Round(a.Less)
	if e.Ctx.Flipped() {
		cutZ += lessDbu
	} else {
		cutZ -= lessDbu
	}

	var removal slab.Stack
	if e.Ctx.Flipped() {
		bottom := -(e.Ctx.DepthDbu() + e.Ctx.BelowDbu())
		removal = slab.Stack{Slabs: []slab.Slab{{Mask: a.FullXY, ZBottom: bottom, Thickness: cutZ - bottom}}}
	} else {
		top := e.Ctx.HeightDbu()
		removal = slab.Stack{Slabs: []slab.Slab{{Mask: a.FullXY, ZBottom: cutZ, Thickness: top - cutZ}}}
	}

	e.Log.Step(1, "planarize3d z=%d", cutZ)
	air := e.activeAir()
	for _, m := range a.Into {
		exposed := slab.Boolean(*m, removal, slab.And)
		*m = slab.Boolean(*m, removal, slab.ASubB)
		*air = slab.Boolean(*air, exposed, slab.Or)
	}
	return nil
}
