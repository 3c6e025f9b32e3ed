// Package slice implements SliceEngine: the 2D cross-section core that
// converts a ruler segment and a mask layer into a time-ordered stack of
// polygonal material regions (spec.md §4.4).
package slice

import (
	"math"

	"github.com/gdsfactory/xsection-go/geom"
	"github.com/gdsfactory/xsection-go/mask"
	"github.com/gdsfactory/xsection-go/window"
)

// Context adapts a *window.Window plus the active ruler length into a
// mask.Context, so mask.Set operations (Inverted in particular) can resolve
// the engine's background region without a back-reference to the engine
// itself (spec.md §9 "cyclic ownership").
type Context struct {
	*window.Window
	W      int64     // ruler length in dbu
	Ruler  geom.Edge // ruler segment in the layout's own XY coordinates (dbu)
}

// NewContext builds a Context for a ruler segment, deriving W from its
// length.
func NewContext(w *window.Window, ruler geom.Edge) *Context {
	return &Context{Window: w, Ruler: ruler, W: rulerLength(ruler)}
}

func rulerLength(e geom.Edge) int64 {
	dx, dy := float64(e.DX()), float64(e.DY())
	return int64(math.Round(math.Sqrt(dx*dx + dy*dy)))
}

// Background returns the full processing window as a single rectangle:
// [-(depth+below), height] in Y and [-extend, W+extend] in X.
func (c *Context) Background() []geom.Polygon {
	return []geom.Polygon{c.WindowBox().ToPolygon()}
}

// WindowBox returns the processing window's box.
func (c *Context) WindowBox() geom.Box {
	yLo := -(c.DepthDbu() + c.BelowDbu())
	return geom.NewBox(-c.ExtendDbu(), yLo, c.W+c.ExtendDbu(), c.HeightDbu())
}

// AllMaskPolygons returns the pseudo-mask "covering the whole wafer" that
// spec.md §4.7's all() exposes: a single rectangle spanning the full ruler
// width (plus the extend margin), equivalent to sweeping a mask that is
// entered at z=-extend and left at z=W+extend.
func (c *Context) AllMaskPolygons() []geom.Polygon {
	return []geom.Polygon{c.WindowBox().ToPolygon()}
}

// ROIBox returns the ruler box (no extend margin): [0,W] x [-(depth+below),height].
func (c *Context) ROIBox() geom.Box {
	yLo := -(c.DepthDbu() + c.BelowDbu())
	return geom.NewBox(0, yLo, c.W, c.HeightDbu())
}

var _ mask.Context = (*Context)(nil)
