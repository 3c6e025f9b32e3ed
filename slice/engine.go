package slice

import (
	"math"

	"github.com/gdsfactory/xsection-go/geom"
	"github.com/gdsfactory/xsection-go/logging"
	"github.com/gdsfactory/xsection-go/mask"
	"github.com/gdsfactory/xsection-go/perr"
)

// Engine is the 2D cross-section core: it owns the standing regions
// (air, air_below, bulk, roi) and drives grow/etch/planarize against them
// (spec.md §4.4).
type Engine struct {
	Ctx      *Context
	Air      mask.Set
	AirBelow mask.Set
	Bulk     mask.Set
	ROI      mask.Set
	Log      logging.Logger
}

// NewEngine builds an Engine for ctx, seeding air at the full window above
// the wafer surface (spec.md §8 scenario S1).
func NewEngine(ctx *Context, log logging.Logger) *Engine {
	if log == nil {
		log = logging.NopLogger{}
	}
	yHi := ctx.HeightDbu()
	ext := ctx.ExtendDbu()
	air := []geom.Polygon{geom.NewBox(-ext, 0, ctx.W+ext, yHi).ToPolygon()}
	airBelow := []geom.Polygon{geom.NewBox(-ext, -(ctx.DepthDbu() + ctx.BelowDbu()), ctx.W+ext, 0).ToPolygon()}
	return &Engine{
		Ctx:      ctx,
		Air:      mask.FromPolygons(ctx, air),
		AirBelow: mask.FromPolygons(ctx, airBelow),
		Bulk:     mask.NewSet(ctx),
		ROI:      mask.FromPolygons(ctx, []geom.Polygon{ctx.ROIBox().ToPolygon()}),
		Log:      log,
	}
}

// activeAir returns air or air_below depending on the flipped flag.
func (e *Engine) activeAir() *mask.Set {
	if e.Ctx.Flipped() {
		return &e.AirBelow
	}
	return &e.Air
}

// ActiveAir exports activeAir for process.Runtime's air() capability
// (spec.md §4.7): whichever of Air/AirBelow currently faces "above" given
// the flipped flag.
func (e *Engine) ActiveAir() *mask.Set { return e.activeAir() }

// GrowEtchArgs are the shared arguments of grow and etch (spec.md §4.4).
type GrowEtchArgs struct {
	Z       float64 // um, > 0
	XY      float64 // um
	Into    []*mask.Set
	Through []*mask.Set
	On      []*mask.Set
	Mode    string // "square" | "round" | "octagon"
	Taper   float64 // degrees, 0 = none
	Bias    float64 // um
	Buried  float64 // um
}

func unionOf(sets []*mask.Set) []geom.Polygon {
	var out []geom.Polygon
	for _, s := range sets {
		out = geom.Boolean(out, s.Polys, geom.Or)
	}
	return out
}

func validate(op string, a GrowEtchArgs, requireInto bool) (geom.KernelMode, error) {
	if len(a.On) > 0 && (len(a.Into) > 0 || len(a.Through) > 0) {
		return 0, perr.Newf(perr.Config, op, "on excludes into/through")
	}
	kmode, ok := geom.ParseKernelMode(a.Mode)
	if !ok {
		return 0, perr.Newf(perr.Config, op, "unknown mode %q", a.Mode)
	}
	if requireInto && len(a.Into) == 0 {
		return 0, perr.Newf(perr.Config, op, "etch requires a non-empty into")
	}
	return kmode, nil
}

// produceGeom builds the swept body of new material per spec.md §4.4
// "Structured grow/etch" steps 1-9. topView is the current layer's
// top-view polygons (the mask() result the script is growing/etching).
func (e *Engine) produceGeom(topView []geom.Polygon, a GrowEtchArgs, kmode geom.KernelMode) ([]geom.Polygon, error) {
	return e.produceGeomFromMask(e.Ctx.MaskPolygons(topView), a, kmode)
}

// produceGeomFromMask is produceGeom's body starting from an
// already-swept mask-polygon set, letting all() (spec.md §4.7) supply the
// full-width window rectangle directly instead of a topView that must be
// swept against the ruler first.
func (e *Engine) produceGeomFromMask(maskPolys []geom.Polygon, a GrowEtchArgs, kmode geom.KernelMode) ([]geom.Polygon, error) {
	prebias := a.Bias
	xy := a.XY
	if xy < 0 {
		xy = -xy
		prebias += xy
	}
	taper := a.Taper != 0
	if taper {
		d := a.Z * math.Tan(math.Pi*a.Taper/180)
		prebias += d - xy
		xy = d
	}

	intoSet := e.activeAir().Polys
	if len(a.Into) > 0 {
		intoSet = unionOf(a.Into)
	}
	var throughSet []geom.Polygon
	if len(a.Through) > 0 {
		throughSet = unionOf(a.Through)
	}
	var onSet []geom.Polygon
	if len(a.On) > 0 {
		onSet = unionOf(a.On)
	}

	pi := e.Ctx.Round(prebias)
	xyi := e.Ctx.Round(xy)
	zi := e.Ctx.Round(a.Z)

	pi, xyi = clampBias(maskPolys, pi, xyi)

	mp := geom.Size(maskPolys, -pi, 0, geom.SquareCorner)
	airMaskEdges := geom.EdgesOf(geom.Boolean(e.activeAir().Polys, mp, geom.And))
	mpEdges := geom.EdgesOf(mp)
	me := geom.EdgesDiff(airMaskEdges, mpEdges)

	switch {
	case len(a.On) > 0:
		me = geom.EdgesAndEdges(me, geom.EdgesOf(onSet))
	case len(a.Through) > 0:
		me = geom.EdgesAndEdges(me, geom.EdgesOf(throughSet))
	case len(a.Into) > 0:
		me = geom.EdgesAndEdges(me, geom.EdgesOf(intoSet))
	}

	kernel := geom.BuildKernel(xyi, zi, kmode, taper)
	body := geom.ParallelMinkowskiSumAll(kernel, me, 10)

	if a.Buried != 0 {
		body = geom.TransformPolygons(body, geom.Transform{DY: -e.Ctx.Round(a.Buried)})
	}

	// through_set only constrains the swept body when through was given
	// explicitly — it is not subtracted merely because it defaults to air.
	if len(a.Through) > 0 {
		body = geom.Boolean(body, throughSet, geom.ASubB)
	}
	body = geom.Boolean(body, intoSet, geom.And)
	return body, nil
}

// clampBias reduces pi (and xyi by the same delta) so that no mask polygon
// has width <= 2*pi (spec.md §4.4 step 4).
func clampBias(maskPolys []geom.Polygon, pi, xyi int64) (int64, int64) {
	if pi <= 0 || len(maskPolys) == 0 {
		return pi, xyi
	}
	minHalf := int64(1) << 60
	for _, p := range maskPolys {
		b := p.BBox()
		half := b.Width()/2 - 1
		if half < minHalf {
			minHalf = half
		}
	}
	if minHalf < pi {
		delta := pi - minHalf
		pi = minHalf
		xyi -= delta
		if xyi < 0 {
			xyi = 0
		}
	}
	if pi < 0 {
		pi = 0
	}
	return pi, xyi
}

// Grow deposits new material swept from topView's edges, consuming the void
// regions named by args.Into (or air, if Into is empty), per spec.md §4.4
// "Effect on air/into": for each m in into, m.Sub(R); if into is empty,
// air.Sub(R). The returned Set is the new MaterialRegion R, for the caller to
// bind to a named layer.
func (e *Engine) Grow(topView []geom.Polygon, a GrowEtchArgs) (mask.Set, error) {
	kmode, err := validate("grow", a, false)
	if err != nil {
		return mask.Set{}, err
	}
	body, err := e.produceGeom(topView, a, kmode)
	if err != nil {
		return mask.Set{}, err
	}
	return e.finishGrow(body, a), nil
}

// GrowMask is Grow for a mask-polygon set that has already been swept
// against the ruler (spec.md §4.7 "all()", the pseudo-mask covering the
// whole wafer that deposit/grow/diffuse implicitly grow from).
func (e *Engine) GrowMask(maskPolys []geom.Polygon, a GrowEtchArgs) (mask.Set, error) {
	kmode, err := validate("grow", a, false)
	if err != nil {
		return mask.Set{}, err
	}
	body, err := e.produceGeomFromMask(maskPolys, a, kmode)
	if err != nil {
		return mask.Set{}, err
	}
	return e.finishGrow(body, a), nil
}

func (e *Engine) finishGrow(body []geom.Polygon, a GrowEtchArgs) mask.Set {
	e.Log.Step(1, "grow z=%g xy=%g mode=%s", a.Z, a.XY, a.Mode)
	bodySet := e.wrap(body)
	if len(a.Into) == 0 {
		e.activeAir().Sub(bodySet)
		return bodySet
	}
	for _, m := range a.Into {
		m.Sub(bodySet)
	}
	return bodySet
}

// Etch removes material from the sets named by args.Into, exposing it back
// to air: for each m in into, J = m ∩ R; m.Sub(R); air.Add(J). The returned
// Set is the swept removal body R.
func (e *Engine) Etch(topView []geom.Polygon, a GrowEtchArgs) (mask.Set, error) {
	kmode, err := validate("etch", a, true)
	if err != nil {
		return mask.Set{}, err
	}
	body, err := e.produceGeom(topView, a, kmode)
	if err != nil {
		return mask.Set{}, err
	}
	return e.finishEtch(body, a), nil
}

// EtchMask is Etch for an already-swept mask-polygon set (see GrowMask).
func (e *Engine) EtchMask(maskPolys []geom.Polygon, a GrowEtchArgs) (mask.Set, error) {
	kmode, err := validate("etch", a, true)
	if err != nil {
		return mask.Set{}, err
	}
	body, err := e.produceGeomFromMask(maskPolys, a, kmode)
	if err != nil {
		return mask.Set{}, err
	}
	return e.finishEtch(body, a), nil
}

func (e *Engine) finishEtch(body []geom.Polygon, a GrowEtchArgs) mask.Set {
	e.Log.Step(1, "etch z=%g xy=%g mode=%s", a.Z, a.XY, a.Mode)
	bodySet := e.wrap(body)
	air := e.activeAir()
	for _, m := range a.Into {
		exposed := e.wrap(geom.Boolean(m.Polys, body, geom.And))
		m.Sub(bodySet)
		air.Add(exposed)
	}
	return bodySet
}

// wrap binds a bare polygon list to the engine's mask.Context.
func (e *Engine) wrap(ps []geom.Polygon) mask.Set { return mask.FromPolygons(e.Ctx, ps) }

// PlanarizeArgs selects the cut plane for Planarize (spec.md §4.4
// "planarize"). Downto names material regions whose extreme top
// (frontside) or bottom (backside) sets the cut level; To is an absolute
// cut level in um. If neither is given, the cut defaults to the extreme
// top/bottom of Into itself, mirroring pyxs_lib.py's planarize ("elif into
// and not to: ... to = max/min([to, yt, yb])"). Less trims an extra margin
// (um) off the cut: it shifts the cut down on the frontside, up on the
// backside.
type PlanarizeArgs struct {
	Into   []*mask.Set
	Downto []*mask.Set
	To     *float64
	Less   float64
}

// Planarize truncates every set in into at the cut plane, exposing the
// removed material back to air.
func (e *Engine) Planarize(a PlanarizeArgs) error {
	if len(a.Into) == 0 {
		return perr.Newf(perr.Config, "planarize", "into must not be empty")
	}
	flipped := e.Ctx.Flipped()

	var (
		to   int64
		have bool
	)
	if a.To != nil {
		to = e.Ctx.Round(*a.To)
		have = true
	}
	switch {
	case len(a.Downto) > 0:
		to, have = extremeY(a.Downto, flipped, to, have)
	case !have:
		to, have = extremeY(a.Into, flipped, to, have)
	}
	if !have {
		// No geometry to cut against (empty into/downto and no explicit
		// to): the original silently no-ops here too.
		return nil
	}

	lessDbu := e.Ctx.Round(a.Less)
	box := e.Ctx.WindowBox()
	var removal []geom.Polygon
	if flipped {
		removal = []geom.Polygon{geom.NewBox(box.P1.X, box.P1.Y, box.P2.X, to+lessDbu).ToPolygon()}
	} else {
		removal = []geom.Polygon{geom.NewBox(box.P1.X, to-lessDbu, box.P2.X, box.P2.Y).ToPolygon()}
	}

	e.Log.Step(1, "planarize y=%d", to)
	removalSet := e.wrap(removal)
	air := e.activeAir()
	for _, m := range a.Into {
		exposed := e.wrap(geom.Boolean(m.Polys, removal, geom.And))
		m.Sub(removalSet)
		air.Add(exposed)
	}
	return nil
}

// extremeY folds the top/bottom bbox extents of sets' polygons into (to,
// have): frontside takes the max over {to, top, bottom} of every polygon,
// backside the min, matching pyxs_lib.py's "to = min/max([to, yt, yb])"
// fold over downto/into data (spec.md §4.4 "the extreme top/bottom of
// downto polygons").
func extremeY(sets []*mask.Set, flipped bool, seed int64, haveSeed bool) (int64, bool) {
	to, have := seed, haveSeed
	for _, m := range sets {
		if m == nil {
			continue
		}
		for _, p := range m.Polys {
			b := p.BBox()
			yt, yb := b.P2.Y, b.P1.Y
			if !have {
				to, have = yt, true
			}
			if flipped {
				to = minI64(to, minI64(yt, yb))
			} else {
				to = maxI64(to, maxI64(yt, yb))
			}
		}
	}
	return to, have
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
