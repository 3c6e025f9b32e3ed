package process

import (
	"github.com/gdsfactory/xsection-go/mask"
	"github.com/gdsfactory/xsection-go/perr"
)

// Capabilities is the script-visible namespace of spec.md §4.7, bound to
// one Runtime: a struct of function fields rather than a dynamic
// dispatch table, since this module has no embedded interpreter to inject
// names into (SPEC_FULL.md §10 "Dynamic script dispatch"). A process
// script is an ordinary Go function of type Script, and Run builds the
// Capabilities value it receives.
type Capabilities struct {
	Layer    func(spec string) (mask.Set, error)
	Mask     func(ms mask.Set) MaskSeed
	All      func() MaskSeed
	Air      func() *Material
	Bulk     func() *Material
	Deposit  func(GrowEtchArgs) (*Material, error)
	Grow     func(GrowEtchArgs) (*Material, error)
	Diffuse  func(GrowEtchArgs) (*Material, error)
	Etch     func(GrowEtchArgs) (*Material, error)
	GrowFrom func(MaskSeed, GrowEtchArgs) (*Material, error)
	EtchFrom func(MaskSeed, GrowEtchArgs) (*Material, error)
	Planarize func(PlanarizeArgs) error
	Flip      func()
	Output    func(spec string, m *Material, color ...float64) error

	SetDbu            func(float64)
	SetHeight         func(float64)
	SetDepth          func(float64)
	SetBelow          func(float64)
	SetExtend         func(float64)
	SetDelta          func(float64)
	SetThicknessScale func(float64)
}

// Capabilities builds the script-visible namespace bound to rt.
func (rt *Runtime) Capabilities() Capabilities {
	return Capabilities{
		Layer:             rt.Layer,
		Mask:              rt.Mask,
		All:               rt.All,
		Air:               rt.Air,
		Bulk:              rt.Bulk,
		Deposit:           rt.Deposit,
		Grow:              rt.Grow,
		Diffuse:           rt.Diffuse,
		Etch:              rt.Etch,
		GrowFrom:          rt.GrowFrom,
		EtchFrom:          rt.EtchFrom,
		Planarize:         rt.Planarize,
		Flip:              rt.Flip,
		Output:            rt.Output,
		SetDbu:            rt.SetDbu,
		SetHeight:         rt.SetHeight,
		SetDepth:          rt.SetDepth,
		SetBelow:          rt.SetBelow,
		SetExtend:         rt.SetExtend,
		SetDelta:          rt.SetDelta,
		SetThicknessScale: rt.SetThicknessScale,
	}
}

// Script is a process script: a plain Go function receiving the
// capabilities bound to one Runtime.
type Script func(c Capabilities) error

// Run evaluates script against rt, recovering any panic raised during
// evaluation and converting it to a ScriptError (spec.md §4.7 "Errors
// raised during script execution are surfaced to the collaborator as a
// single user-visible failure"; SPEC_FULL.md §8 "exceptions as control
// flow").
func (rt *Runtime) Run(script Script) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = perr.Newf(perr.Script, "run", "panic: %v", r)
		}
	}()
	if scriptErr := script(rt.Capabilities()); scriptErr != nil {
		if _, ok := scriptErr.(*perr.Error); ok {
			return scriptErr
		}
		return perr.New(perr.Script, "run", scriptErr)
	}
	return nil
}
