package process

import (
	"github.com/gdsfactory/xsection-go/mask"
	"github.com/gdsfactory/xsection-go/perr"
	"github.com/gdsfactory/xsection-go/slab"
	"github.com/gdsfactory/xsection-go/slice"
	"github.com/gdsfactory/xsection-go/stack"
)

// GrowEtchArgs are the script-level grow/etch/deposit/diffuse/etch
// arguments (spec.md §4.4, §4.6): Into/Through/On name standing or
// previously grown Materials, which Grow/Etch mutate in place.
type GrowEtchArgs struct {
	Z, XY, Bias, Buried, Taper float64
	Mode                       string
	Into, Through, On          []*Material
}

func toMaskPtrs(ms []*Material) []*mask.Set {
	out := make([]*mask.Set, len(ms))
	for i, m := range ms {
		out[i] = m.d2
	}
	return out
}

func toStackPtrs(ms []*Material) []*slab.Stack {
	out := make([]*slab.Stack, len(ms))
	for i, m := range ms {
		out[i] = m.d3
	}
	return out
}

func (a GrowEtchArgs) slice2D() slice.GrowEtchArgs {
	return slice.GrowEtchArgs{
		Z: a.Z, XY: a.XY,
		Into: toMaskPtrs(a.Into), Through: toMaskPtrs(a.Through), On: toMaskPtrs(a.On),
		Mode: a.Mode, Taper: a.Taper, Bias: a.Bias, Buried: a.Buried,
	}
}

// slice3D converts to stack.GrowEtchArgs, rejecting a tapered 3D grow with
// ConfigError (spec.md §9 open question: tapered 3D grow is not supported,
// since stack.GrowEtchArgs has no taper field to express it).
func (a GrowEtchArgs) slice3D() (stack.GrowEtchArgs, error) {
	if a.Taper != 0 {
		return stack.GrowEtchArgs{}, perr.Newf(perr.Config, "grow", "tapered grow is not supported in 3D")
	}
	return stack.GrowEtchArgs{
		Z: a.Z, XY: a.XY,
		Into: toStackPtrs(a.Into), Through: toStackPtrs(a.Through), On: toStackPtrs(a.On),
		Mode: a.Mode, Bias: a.Bias, Buried: a.Buried,
	}, nil
}
