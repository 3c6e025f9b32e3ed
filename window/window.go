// Package window holds the per-engine processing-window parameters shared
// by the 2D and 3D cores (spec.md §3 "Processing window"): height, depth,
// below, extend, delta, dbu, and the flipped (backside) flag.
//
// All Set* mutators take micrometre values, matching the script surface of
// spec.md §4.7 (set_dbu/height/depth/below/extend/delta); the Dbu-suffixed
// accessors return the dbu-rounded integer a geometry operation needs.
package window

import "math"

// Window is a process engine's processing-window configuration.
type Window struct {
	dbu            float64
	height         float64
	depth          float64
	below          float64
	extend         float64
	delta          float64
	thicknessScale float64
	flipped        bool
}

// New returns a Window with the conventional defaults used across the
// klayout_pyxs original source: dbu=0.001um, thickness_scale=1.
func New() *Window {
	return &Window{dbu: 0.001, thicknessScale: 1}
}

// Round converts a micrometre length to dbu via floor(x/dbu+0.5).
func (w *Window) Round(x float64) int64 {
	return int64(math.Floor(x/w.dbu + 0.5))
}

func (w *Window) Dbu() float64            { return w.dbu }
func (w *Window) Height() float64         { return w.height }
func (w *Window) Depth() float64          { return w.depth }
func (w *Window) Below() float64          { return w.below }
func (w *Window) Extend() float64         { return w.extend }
func (w *Window) Delta() float64          { return w.delta }
func (w *Window) ThicknessScale() float64 { return w.thicknessScale }
func (w *Window) Flipped() bool           { return w.flipped }

func (w *Window) HeightDbu() int64 { return w.Round(w.height) }
func (w *Window) DepthDbu() int64  { return w.Round(w.depth) }
func (w *Window) BelowDbu() int64  { return w.Round(w.below) }
func (w *Window) ExtendDbu() int64 { return w.Round(w.extend) }
func (w *Window) DeltaDbu() int64 {
	d := w.Round(w.delta)
	if d == 0 {
		d = 1
	}
	return d
}

func (w *Window) SetDbu(v float64)    { w.dbu = v }
func (w *Window) SetHeight(v float64) { w.height = v }
func (w *Window) SetDepth(v float64)  { w.depth = v }
func (w *Window) SetBelow(v float64)  { w.below = v }
func (w *Window) SetExtend(v float64) { w.extend = v }
func (w *Window) SetDelta(v float64)  { w.delta = v }
func (w *Window) SetThicknessScale(v float64) { w.thicknessScale = v }
func (w *Window) Flip()               { w.flipped = !w.flipped }

// Clone returns a value copy of w.
func (w *Window) Clone() *Window {
	cp := *w
	return &cp
}
