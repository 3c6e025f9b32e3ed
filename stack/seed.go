package stack

import (
	"github.com/gdsfactory/xsection-go/geom"
	"github.com/gdsfactory/xsection-go/slab"
)

// MaskToSeed converts a top-view mask into a thin seed SlabStack at the
// current air/material interface (spec.md §4.6 "mask_to_seed"): a
// full-height slab carrying the mask, intersected with the border strip
// obtained by growing the air stack by delta in z and subtracting the
// original air.
func (e *Engine) MaskToSeed(mask []geom.Polygon) slab.Stack {
	zBottom := -(e.Ctx.DepthDbu() + e.Ctx.BelowDbu())
	thickness := e.Ctx.DepthDbu() + e.Ctx.BelowDbu() + e.Ctx.HeightDbu()
	maskStack := slab.Stack{Slabs: []slab.Slab{{Mask: mask, ZBottom: zBottom, Thickness: thickness}}}

	air := e.activeAir()
	delta := e.Ctx.DeltaDbu()
	airSized := slab.Size(*air, 0, 0, delta)
	airBorder := slab.Boolean(airSized, *air, slab.ASubB)
	return slab.Boolean(airBorder, maskStack, slab.And)
}
