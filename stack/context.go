// Package stack implements StackEngine: the 3D analogue of SliceEngine —
// it converts a top-view mask into a seed SlabStack and drives 3D
// grow/etch/planarize over the air/bulk slab stacks (spec.md §4.6).
package stack

import (
	"github.com/gdsfactory/xsection-go/window"
)

// Context carries the processing-window configuration a StackEngine needs;
// unlike slice.Context it has no ruler (3D operates on the full top-view
// mask, not a projected cross-section).
type Context struct {
	*window.Window
}

// NewContext wraps w.
func NewContext(w *window.Window) *Context { return &Context{Window: w} }
